package executor

// Strategy identifies how per-file detection tasks are executed.
type Strategy int

const (
	// StrategySequential runs tasks inline on the caller goroutine.
	StrategySequential Strategy = iota
	// StrategyPool runs tasks on a bounded in-process worker pool.
	StrategyPool
	// StrategyProcess fans tasks out to isolated worker processes.
	StrategyProcess
	// StrategyProcessWide is the high fan-out process pool for very
	// large workloads.
	StrategyProcessWide
)

func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyPool:
		return "pool"
	case StrategyProcess:
		return "process"
	case StrategyProcessWide:
		return "process-wide"
	default:
		return "unknown"
	}
}

// Workload thresholds and worker bounds. Below maxSequentialFiles pool
// setup costs more than the parallel gain; between the pool and process
// thresholds shared-memory workers avoid process-spawn cost; beyond that
// process isolation bounds per-task memory growth. The platform cap of 61
// matches the lowest common process-pool limit across supported systems.
const (
	maxSequentialFiles = 10
	maxPoolFiles       = 50
	maxProcessFiles    = 500

	poolWorkerCap          = 16
	processWorkerCap       = 48
	processWideWorkerCap   = 128
	processPoolPlatformCap = 61
)

// Select picks the execution strategy and worker bound for a workload of
// n files given the configured worker hint. It is a pure function so the
// choice is testable independent of the backends.
func Select(n, workers int) (Strategy, int) {
	if n <= maxSequentialFiles || workers <= 1 {
		return StrategySequential, 1
	}
	switch {
	case n <= maxPoolFiles:
		return StrategyPool, min(workers, poolWorkerCap)
	case n <= maxProcessFiles:
		return StrategyProcess, min(workers*2, processWorkerCap, processPoolPlatformCap)
	default:
		return StrategyProcessWide, min(workers*4, processWideWorkerCap, processPoolPlatformCap)
	}
}
