package parallel

import (
	"runtime"
	"sync"
)

// Execute processes n iterations in parallel, splitting the range evenly across
// CPUs, and waits for completion. work receives a half-open [start, end) range.
func Execute(n int, work func(start, end int)) {
	nbTasks := runtime.NumCPU()
	if nbTasks > n {
		nbTasks = n
	}
	if nbTasks <= 1 {
		work(0, n)
		return
	}

	var wg sync.WaitGroup
	nbIterationsPerCpus := n / nbTasks
	extraTasks := n - nbTasks*nbIterationsPerCpus
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		start := i*nbIterationsPerCpus + extraTasksOffset
		end := start + nbIterationsPerCpus
		if extraTasks > 0 {
			end++
			extraTasks--
			extraTasksOffset++
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			work(start, end)
		}()
	}

	wg.Wait()
}
