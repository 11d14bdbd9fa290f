// Package parallel splits index ranges across goroutines for the matrix
// engine. Callers own the partitioning contract: every index is visited
// exactly once and no two workers write the same output.
package parallel

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum indices per goroutine.
	MinWork      int  // Minimum total work (n * cost) before going parallel.
}

// DefaultConfig sizes the worker pool from the physical core count, falling
// back to runtime.NumCPU when cpuid cannot detect it.
func DefaultConfig() Config {
	n := cpuid.CPU.PhysicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 8,
		MinWork:      1 << 16,
	}
}

// Sequential returns a Config that never spawns goroutines.
func Sequential() Config {
	return Config{NumWorkers: 1, MinChunkSize: 1}
}

// WithWorkers returns a copy of cfg using n workers. n == 1 disables
// parallelism; n <= 0 returns cfg unchanged.
func (cfg Config) WithWorkers(n int) Config {
	switch {
	case n <= 0:
		return cfg
	case n == 1:
		cfg.Enabled = false
	default:
		cfg.Enabled = true
	}
	cfg.NumWorkers = n
	return cfg
}

// For executes f(i) for i in [0, n).
func For(n int, f func(i int), cfg Config) {
	Range(n, 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	}, cfg)
}

// Range calls f on disjoint half-open chunks [lo, hi) covering [0, n).
// cost is the approximate work per index; the range runs on the calling
// goroutine when n*cost is below cfg.MinWork.
func Range(n, cost int, f func(lo, hi int), cfg Config) {
	if n <= 0 {
		return
	}
	workers := cfg.NumWorkers
	if !cfg.Enabled || workers <= 1 || n*cost < cfg.MinWork || n < 2*max(cfg.MinChunkSize, 1) {
		f(0, n)
		return
	}

	chunk := max((n+workers-1)/workers, cfg.MinChunkSize, 1)

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
