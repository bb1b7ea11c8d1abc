package ai

// Request is sent to the Worker to start a new provider stream.
type Request struct {
	Prompt    string
	RequestID RequestID
	Cancel    *CancelToken
}

// Response carries one demultiplexed event back to the event loop,
// tagged with the request id it belongs to (spec.md §4.3's four response
// variants).
type Response struct {
	RequestID RequestID
	Event     Event
}

// Worker is the single long-lived task that dispatches one provider
// stream at a time, grounded on services/llm/multi_model_manager.go's
// single-flight dispatch loop (one active model call at a time, new
// requests queueing behind it) generalized from model-switch requests to
// AI suggestion requests.
type Worker struct {
	provider Provider
	requests chan Request
	out      chan Response
}

// NewWorker starts the worker's dispatch goroutine, reading from an
// internally owned request channel and writing demultiplexed Responses to
// out.
func NewWorker(provider Provider, out chan Response) *Worker {
	w := &Worker{
		provider: provider,
		requests: make(chan Request, 1),
		out:      out,
	}
	go w.loop()
	return w
}

// Submit enqueues a request. The event loop is responsible for having
// already cancelled any prior in-flight request (State.BeginRequest does
// this) before calling Submit, so the worker never needs to juggle more
// than one active stream.
func (w *Worker) Submit(req Request) {
	w.requests <- req
}

func (w *Worker) loop() {
	for req := range w.requests {
		w.run(req)
	}
}

func (w *Worker) run(req Request) {
	defer func() {
		if r := recover(); r != nil {
			// AWS SDK credential discovery is known to panic; every
			// provider call runs under this recover so a worker crash
			// never reaches the render loop (spec.md §4.3 failure
			// handling, §9's "panic-based control flow" note).
			w.out <- Response{RequestID: req.RequestID, Event: Event{
				Kind: EventError,
				Err:  "worker crashed during provider call",
			}}
		}
	}()

	events := make(chan Event, 8)
	done := make(chan error, 1)
	panicked := make(chan any, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked <- r
				done <- nil
			}
		}()
		done <- w.provider.Stream(req.Prompt, req.Cancel, events)
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			w.out <- Response{RequestID: req.RequestID, Event: ev}
			if ev.Kind == EventComplete || ev.Kind == EventCancelled || ev.Kind == EventError {
				drainProviderExit(done)
				return
			}
		case err := <-done:
			select {
			case r := <-panicked:
				// Re-raised on this goroutine so the recover above reports it.
				panic(r)
			default:
			}
			if err != nil {
				w.out <- Response{RequestID: req.RequestID, Event: Event{Kind: EventError, Err: err.Error()}}
			}
			drainRemainingEvents(events, req.RequestID, w.out)
			return
		}
	}
}

func drainProviderExit(done <-chan error) {
	<-done
}

func drainRemainingEvents(events <-chan Event, reqID RequestID, out chan<- Response) {
	if events == nil {
		return
	}
	for ev := range events {
		out <- Response{RequestID: reqID, Event: ev}
	}
}
