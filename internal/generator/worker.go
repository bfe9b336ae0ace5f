package generator

import "runtime"

// GetWorkerCount resolves the worker count: 0 auto-detects CPUs, anything
// else is used as-is.
func GetWorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

// partitionRange splits [0, total) into at most workers contiguous
// [start, end) slices of near-equal size.
func partitionRange(total, workers int) [][2]int {
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}
	parts := make([][2]int, 0, workers)
	base := total / workers
	extra := total % workers
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < extra {
			size++
		}
		parts = append(parts, [2]int{start, start + size})
		start += size
	}
	return parts
}
