// Package workers runs the periodic background jobs of the daemon on a
// gocron scheduler.
//
// Jobs never touch daemon state directly: a Worker posts into the reactor
// or calls a component that is safe for concurrent use.
package workers

// Worker is one periodic job. Run is called on every tick and must return
// before the next one is due.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run() {
//	    // one tick of background processing
//	}
type Worker interface {
	Run()
}

// WorkerFunc adapts a function to Worker.
type WorkerFunc func()

func (f WorkerFunc) Run() { f() }
