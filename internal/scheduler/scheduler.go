package scheduler

import (
	"sync"
	"time"

	"github.com/vantol/PackForge_Go/internal/worker"
)

// Scheduler runs registered jobs at fixed intervals by handing them to a
// worker pool on each tick. The poll loop registers here so a slow cycle
// never blocks the ticker goroutine; overlap protection is the job's
// responsibility.
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a scheduler backed by the given pool
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. The goroutine
// starts immediately; the first run happens one interval from now.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Non-blocking: if the queue is full the tick is dropped
				// and the next one retries
				s.workerPool.TryEnqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts all scheduled tickers and waits for them to exit. Jobs
// already handed to the pool still finish under the pool's own Stop.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
