package software

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum row count worth dispatching to workers.
const parallelThreshold = 16

// rowChunk is a range of image rows for one worker.
type rowChunk struct {
	start, end int
}

// rowPool runs a row function over an image with persistent workers.
type rowPool struct {
	numWorkers int
	fn         func(y0, y1 int)

	workChan chan rowChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newRowPool() *rowPool {
	return &rowPool{numWorkers: runtime.GOMAXPROCS(0)}
}

// start launches the worker goroutines.
func (p *rowPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *rowPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *rowPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.fn(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run calls fn over [0, rows) split into one chunk per worker and waits.
// fn must only write rows inside its chunk.
func (p *rowPool) run(rows int, fn func(y0, y1 int)) {
	if rows < parallelThreshold || p.numWorkers < 2 {
		fn(0, rows)
		return
	}
	p.fn = fn
	p.start()

	chunkSize := (rows + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > rows {
			end = rows
		}
		if start >= end {
			continue
		}
		p.workChan <- rowChunk{start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
