package worker

import (
	"sync"

	"github.com/jungmin-dev/coffee-order-backend/internal/metrics"
)

type task func()

// Pool is a fixed-size worker pool backing fire-and-forget work, e.g. the
// data-collection notification after an order commits.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

// Stop closes the queue and waits for queued jobs to finish.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
