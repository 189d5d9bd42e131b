package pipeline

import "sync"

// pool is a fixed set of goroutines consuming the queue of accepted connections.
type pool[C any] struct {
	tasks chan C
	wg    sync.WaitGroup
}

func newPool[C any](workers, queueSize int, fn func(C)) *pool[C] {
	p := &pool[C]{
		tasks: make(chan C, queueSize),
	}

	p.wg.Add(workers)
	for range workers {
		go func() {
			defer p.wg.Done()

			for task := range p.tasks {
				fn(task)
			}
		}()
	}

	return p
}

// Submit blocks while the queue is full.
func (p *pool[C]) Submit(task C) {
	p.tasks <- task
}

// Close stops accepting new tasks and waits until the queued ones are done.
func (p *pool[C]) Close() {
	close(p.tasks)
	p.wg.Wait()
}
