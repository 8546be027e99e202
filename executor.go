package fastpair

import "context"

// Executor is a single-threaded cooperative driver: every task submitted
// to it runs strictly after the previous one finishes, on one goroutine.
// The broker, its pairers, and their handshakes all own and
// submit work through one Executor so that mutation of device records is
// never concurrent.
type Executor struct {
	tasks  chan func()
	done   chan struct{}
	cancel context.CancelFunc
}

// NewExecutor starts the executor's backing goroutine. queueDepth bounds
// how many pending tasks may be buffered before Submit blocks.
func NewExecutor(queueDepth int) *Executor {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor{
		tasks:  make(chan func(), queueDepth),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go e.run(ctx)
	return e
}

func (e *Executor) run(ctx context.Context) {
	defer close(e.done)
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-e.tasks:
			task()
		}
	}
}

// Submit enqueues task to run on the executor goroutine, blocking if the
// queue is full.
func (e *Executor) Submit(task func()) {
	e.tasks <- task
}

// TrySubmit enqueues task without blocking, reporting whether it was
// accepted.
func (e *Executor) TrySubmit(task func()) bool {
	select {
	case e.tasks <- task:
		return true
	default:
		return false
	}
}

// Shutdown stops the executor goroutine and waits for it to exit after its
// current task. Tasks still queued are not run; Submit after Shutdown still
// enqueues (and blocks once the queue is full), but nothing runs them.
func (e *Executor) Shutdown() {
	e.cancel()
	<-e.done
}

// CancelFlag is a shared, concurrency-safe cancellation signal. No type in
// this package checks it: the GATT client, the classic-pairing calls and
// the repository calls run without it, and Pairer tracks its own
// cancellation.
type CancelFlag struct {
	ch chan struct{}
}

// NewCancelFlag returns an unset flag.
func NewCancelFlag() *CancelFlag {
	return &CancelFlag{ch: make(chan struct{})}
}

// Cancel sets the flag. Safe to call more than once.
func (f *CancelFlag) Cancel() {
	select {
	case <-f.ch:
	default:
		close(f.ch)
	}
}

// Cancelled reports whether Cancel has been called.
func (f *CancelFlag) Cancelled() bool {
	select {
	case <-f.ch:
		return true
	default:
		return false
	}
}

// Done returns a channel that closes when the flag is cancelled, for use
// in select statements alongside timers and I/O.
func (f *CancelFlag) Done() <-chan struct{} {
	return f.ch
}
