package workers

// Workers runs a set of background workers as one unit.
type Workers struct {
	workers []Worker
}

// New aggregates the given workers. Order is preserved: Run launches
// them in the order they were passed.
func New(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker in order. Workers that block are expected to
// spawn their own goroutines; Run itself does not.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
