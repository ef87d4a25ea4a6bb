package stream

// Of returns a stream that synchronously emits values in order, then
// completes, all before Subscribe returns.
func Of[T any](values ...T) Stream[T] {
	return Func[T](func(h Handlers[T]) CancelFunc {
		canceled := false
		for _, v := range values {
			if canceled {
				break
			}
			h.value(v)
		}
		if !canceled {
			h.complete()
		}
		return func() { canceled = true }
	})
}

// Faulty returns a stream that synchronously emits values in order, then
// terminates with err.
func Faulty[T any](values []T, err error) Stream[T] {
	return Func[T](func(h Handlers[T]) CancelFunc {
		canceled := false
		for _, v := range values {
			if canceled {
				break
			}
			h.value(v)
		}
		if !canceled {
			h.fail(err)
		}
		return func() { canceled = true }
	})
}

// Never returns a stream that emits nothing and never terminates.
func Never[T any]() Stream[T] {
	return Func[T](func(h Handlers[T]) CancelFunc {
		return func() {}
	})
}

// Go returns a stream whose producer runs on its own goroutine against a
// fresh Emitter, started on Subscribe. Delivery is therefore asynchronous
// with respect to the Subscribe call.
func Go[T any](producer func(e *Emitter[T])) Stream[T] {
	return Func[T](func(h Handlers[T]) CancelFunc {
		e := NewEmitter[T]()
		cancel := e.Subscribe(h)
		go producer(e)
		return cancel
	})
}
