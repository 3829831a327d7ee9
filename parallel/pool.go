package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted functions on a fixed set of workers. With a single
// worker every function runs inline in Go.
type Pool struct {
	work    chan func()
	workers sync.WaitGroup
	pending sync.WaitGroup
	close   func()
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		close: func() {},
	}

	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range pool.work {
					f()
					pool.pending.Done()
				}
			})
		}

		pool.close = sync.OnceFunc(func() { close(pool.work) })
	}

	return pool
}

// Go schedules f. It must not be called after Close.
func (p *Pool) Go(f func()) {
	if p.work == nil {
		f()
		return
	}

	p.pending.Add(1)
	p.work <- f
}

// Flush waits for every function scheduled so far. The pool stays usable.
func (p *Pool) Flush() {
	p.pending.Wait()
}

// Close stops the workers once queued work is done.
func (p *Pool) Close() {
	p.close()
	p.workers.Wait()
}
