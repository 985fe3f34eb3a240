package extractor

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one question is processed at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrency; question blocks are small and the
	// pipeline is CPU-bound, so more buys nothing.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for the rest of the process.
	cpuDivisor = 2
)

// DefaultWorkers returns the worker count used when none is configured:
// half the CPUs, clamped to [MinWorkers, MaxWorkers].
func DefaultWorkers() int {
	n := runtime.NumCPU() / cpuDivisor
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
