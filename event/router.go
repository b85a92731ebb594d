package event

// Handler receives routed events
type Handler interface {
	// EventTypes returns the event types this handler processes
	EventTypes() []EventType

	// HandleEvent is called synchronously during dispatch
	HandleEvent(ev GameEvent)
}

// Router dispatches queued events to registered handlers
// Single-threaded dispatch; handlers for one type run in registration order
type Router struct {
	handlers map[EventType][]Handler
	queue    *Queue
}

// NewRouter creates a router draining queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes pending events and routes them in FIFO order
// Returns the number of events consumed
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers registered for t
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
