package bench

import (
	"math/rand/v2"

	"github.com/btree-query-bench/blocktree/dbms/index"
)

type WorkloadType string

const (
	OLTP  WorkloadType = "OLTP (90/10)"
	OLAP  WorkloadType = "OLAP (10/90)"
	Churn WorkloadType = "Churn (add/remove/find)"
)

// Workloads lists every mix in report order.
var Workloads = []WorkloadType{OLTP, OLAP, Churn}

// ExecuteWorkload runs a mixed distribution of ops over keys in [0, keySpace).
func ExecuteWorkload(rng *rand.Rand, s index.SSet[int64], wType WorkloadType, ops, keySpace int) {
	for i := 0; i < ops; i++ {
		choice := rng.IntN(100)
		key := int64(rng.IntN(keySpace))

		switch wType {
		case OLTP:
			if choice < 90 {
				s.Find(key)
			} else {
				s.Add(key)
			}
		case OLAP:
			if choice < 10 {
				s.Find(key)
			} else {
				s.Add(key)
			}
		case Churn:
			switch {
			case choice < 33:
				s.Add(key)
			case choice < 66:
				s.Remove(key)
			default:
				s.Find(key)
			}
		}
	}
}
