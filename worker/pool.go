package worker

import (
	"context"
	"image"
	"log"
	"runtime"
	"sync"
)

// PersistFunc writes a flattened screenshot somewhere (disk, clipboard) and
// returns the saved path when applicable.
type PersistFunc func(ctx context.Context, img image.Image) (string, error)

// ResultCallback is invoked on completion (from a worker goroutine).
// The event loop should pass a closure that posts back into the event loop safely.
type ResultCallback func(path string, err error)

// Pool is a fixed-size persist worker pool with a 1-slot input queue
// (strict back-pressure). Saving is I/O bound but quick; one pending job at a
// time keeps rapid re-saves from piling up.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ctx     context.Context
	img     image.Image
	persist PersistFunc
	cb      ResultCallback
}

// New creates a worker pool. Size defaults to NumCPU when size<=0. Queue is 1 slot.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				b := j.img.Bounds()
				log.Printf("Worker: persisting %dx%d image", b.Dx(), b.Dy())
				path, err := persistWithContext(j.ctx, j.img, j.persist)
				log.Printf("Worker: persist completed, path=%q, err=%v", path, err)
				j.cb(path, err)
			}
		}()
	}
}

// Submit enqueues a persist job if the single-slot queue is free. Returns false if dropped.
func (p *Pool) Submit(ctx context.Context, img image.Image, persist PersistFunc, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, img: img, persist: persist, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

// persistWithContext runs persist with a deadline-aware path.
func persistWithContext(ctx context.Context, img image.Image, persist PersistFunc) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		return persist(ctx, img)
	}
	resCh := make(chan struct {
		path string
		err  error
	}, 1)
	go func() {
		path, err := persist(ctx, img)
		resCh <- struct {
			path string
			err  error
		}{path, err}
	}()
	select {
	case r := <-resCh:
		return r.path, r.err
	case <-ctx.Done():
		// Underlying write may still finish in the background
		return "", ctx.Err()
	}
}
