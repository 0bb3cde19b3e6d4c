package bench

import (
	"encoding/csv"
	"io"
	"runtime"
	"strconv"

	"github.com/cockroachdb/errors"
)

// BenchResult is one row of the report.
type BenchResult struct {
	Name      string
	Config    string
	Operation string
	LatencyNs int64
	MemMB     uint64
	Objects   uint64
}

type MemoryStats struct {
	AllocMB      uint64
	TotalAllocMB uint64
	HeapObjects  uint64
}

// GetDetailedMem samples the heap after a forced GC so only live data counts.
func GetDetailedMem() MemoryStats {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocMB:      m.Alloc / 1024 / 1024,
		TotalAllocMB: m.TotalAlloc / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
	}
}

var csvHeader = []string{"Structure", "Config", "TestType", "LatencyNs", "MemMB", "HeapObjects"}

// Record writes res as one CSV row.
func Record(w *csv.Writer, res BenchResult) error {
	return w.Write([]string{
		res.Name,
		res.Config,
		res.Operation,
		strconv.FormatInt(res.LatencyNs, 10),
		strconv.FormatUint(res.MemMB, 10),
		strconv.FormatUint(res.Objects, 10),
	})
}

// WriteCSV writes a header followed by every result.
func WriteCSV(out io.Writer, results []BenchResult) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return errors.Wrap(err, "bench: write csv header")
	}
	for _, res := range results {
		if err := Record(w, res); err != nil {
			return errors.Wrapf(err, "bench: write %s/%s", res.Name, res.Operation)
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "bench: flush csv")
}
