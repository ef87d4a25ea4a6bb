package stream

// Handlers holds the three callback slots a subscriber provides.
// Nil slots are tolerated; the corresponding events are dropped.
type Handlers[T any] struct {
	// OnValue receives each emitted value in delivery order.
	OnValue func(v T)

	// OnError receives the terminal error, if the stream fails.
	OnError func(err error)

	// OnComplete is invoked once if the stream ends normally.
	OnComplete func()
}

// value dispatches v, tolerating a nil slot.
func (h Handlers[T]) value(v T) {
	if h.OnValue != nil {
		h.OnValue(v)
	}
}

// fail dispatches err, tolerating a nil slot.
func (h Handlers[T]) fail(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

// complete dispatches completion, tolerating a nil slot.
func (h Handlers[T]) complete() {
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

// CancelFunc detaches a subscriber from its stream. Calling it once after the
// subscriber is done with the stream must be safe; events delivered after
// cancellation are dropped.
type CancelFunc func()

// Stream is a push-based producer of values terminated by completion or error.
//
// Implementations in this repository support a single active subscription;
// Subscribe may invoke handlers synchronously, before it returns.
type Stream[T any] interface {
	Subscribe(h Handlers[T]) CancelFunc
}

// Func adapts a plain subscribe function to the Stream interface.
type Func[T any] func(h Handlers[T]) CancelFunc

// Subscribe implements Stream.
func (f Func[T]) Subscribe(h Handlers[T]) CancelFunc {
	return f(h)
}
