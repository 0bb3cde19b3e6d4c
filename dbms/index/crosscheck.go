package index

import (
	"math/rand/v2"
	"strconv"

	"github.com/cockroachdb/errors"
)

// CrossCheckConfig shapes a randomized comparison run.
type CrossCheckConfig struct {
	Rounds   int // add/find/remove/find cycles
	Ops      int // operations per phase
	KeySpace int // keys are drawn from [0, KeySpace)
}

// DefaultCrossCheck mirrors the textbook test: 5 rounds of 200 ops over 5n keys.
var DefaultCrossCheck = CrossCheckConfig{Rounds: 5, Ops: 200, KeySpace: 1000}

// CrossCheck drives identical random operation sequences through ref and sut
// and returns an error describing the first step at which they disagree.
func CrossCheck(rng *rand.Rand, cfg CrossCheckConfig, ref, sut SSet[int64]) error {
	if cfg.Ops <= 0 || cfg.KeySpace <= 0 {
		return errors.Newf("crosscheck: invalid config %+v", cfg)
	}
	step := 0
	key := func() int64 { return int64(rng.IntN(cfg.KeySpace)) }

	find := func() error {
		for i := 0; i < cfg.Ops; i++ {
			step++
			x := key()
			y1, ok1 := ref.Find(x)
			y2, ok2 := sut.Find(x)
			if ok1 != ok2 || (ok1 && y1 != y2) {
				return errors.Errorf("crosscheck: step %d: find(%d) = %s, want %s",
					step, x, fmtOpt(y2, ok2), fmtOpt(y1, ok1))
			}
		}
		return nil
	}

	for r := 0; r < cfg.Rounds; r++ {
		for i := 0; i < cfg.Ops; i++ {
			step++
			x := key()
			if a, b := ref.Add(x), sut.Add(x); a != b {
				return errors.Errorf("crosscheck: step %d: add(%d) = %t, want %t", step, x, b, a)
			}
			if err := sameSize(step, ref, sut); err != nil {
				return err
			}
		}
		if err := find(); err != nil {
			return err
		}
		for i := 0; i < cfg.Ops; i++ {
			step++
			x := key()
			y1, ok1 := ref.Remove(x)
			y2, ok2 := sut.Remove(x)
			if ok1 != ok2 || (ok1 && y1 != y2) {
				return errors.Errorf("crosscheck: step %d: remove(%d) = %s, want %s",
					step, x, fmtOpt(y2, ok2), fmtOpt(y1, ok1))
			}
			if err := sameSize(step, ref, sut); err != nil {
				return err
			}
		}
		if err := find(); err != nil {
			return err
		}
	}
	return nil
}

func sameSize(step int, ref, sut SSet[int64]) error {
	if a, b := ref.Size(), sut.Size(); a != b {
		return errors.Errorf("crosscheck: step %d: size = %d, want %d", step, b, a)
	}
	return nil
}

func fmtOpt(v int64, ok bool) string {
	if !ok {
		return "absent"
	}
	return strconv.FormatInt(v, 10)
}
