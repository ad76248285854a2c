package batch

import (
	"runtime"
	"sync"
)

// maxWorkers caps the pool size when the caller asks for the default.
const maxWorkers = 32

// WorkerPool distributes jobs across a fixed number of goroutines and
// collects their results.
type WorkerPool[Job any, Result any] struct {
	numWorkers int
	jobs       chan Job
	results    chan Result
	wg         sync.WaitGroup
}

// NewWorkerPool creates a pool sized for numJobs jobs. A numWorkers of 0 or
// less means one worker per CPU, up to maxWorkers. The pool never starts
// more workers than there are jobs.
func NewWorkerPool[Job any, Result any](numWorkers, numJobs int) *WorkerPool[Job, Result] {
	if numWorkers <= 0 {
		numWorkers = min(runtime.NumCPU(), maxWorkers)
	}
	if numJobs > 0 {
		numWorkers = min(numWorkers, numJobs)
	}

	return &WorkerPool[Job, Result]{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numJobs),
		results:    make(chan Result, numJobs),
	}
}

// Workers returns the number of workers Start launches.
func (p *WorkerPool[Job, Result]) Workers() int {
	return p.numWorkers
}

// Start launches the workers; each job is passed to workerFn.
func (p *WorkerPool[Job, Result]) Start(workerFn func(Job) Result) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- workerFn(job)
			}
		}()
	}
}

// Submit queues a job.
func (p *WorkerPool[Job, Result]) Submit(job Job) {
	p.jobs <- job
}

// Close stops accepting jobs. The results channel is closed once every
// worker has finished.
func (p *WorkerPool[Job, Result]) Close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

// Results returns the results channel.
func (p *WorkerPool[Job, Result]) Results() <-chan Result {
	return p.results
}
