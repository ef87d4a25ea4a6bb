package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect subscribes a recording handler set and returns the sinks.
func collect[T any](s Stream[T]) (*[]T, *[]error, *int, CancelFunc) {
	values := &[]T{}
	errs := &[]error{}
	completions := new(int)
	cancel := s.Subscribe(Handlers[T]{
		OnValue:    func(v T) { *values = append(*values, v) },
		OnError:    func(err error) { *errs = append(*errs, err) },
		OnComplete: func() { *completions++ },
	})
	return values, errs, completions, cancel
}

func TestEmitter_DeliversInOrder(t *testing.T) {
	e := NewEmitter[int]()
	values, _, completions, _ := collect[int](e)

	e.Next(1)
	e.Next(2)
	e.Complete()

	assert.Equal(t, []int{1, 2}, *values)
	assert.Equal(t, 1, *completions)
}

func TestEmitter_BuffersBeforeSubscribe(t *testing.T) {
	e := NewEmitter[string]()
	e.Next("a")
	e.Next("b")
	e.Complete()

	// Buffered events flush synchronously inside Subscribe.
	values, _, completions, _ := collect[string](e)

	assert.Equal(t, []string{"a", "b"}, *values)
	assert.Equal(t, 1, *completions)
}

func TestEmitter_DropsAfterTerminal(t *testing.T) {
	e := NewEmitter[int]()
	values, errs, completions, _ := collect[int](e)

	e.Fail(errors.New("boom"))
	e.Next(1)
	e.Complete()
	e.Fail(errors.New("again"))

	assert.Empty(t, *values)
	require.Len(t, *errs, 1)
	assert.Equal(t, 0, *completions)
}

func TestEmitter_CancelStopsDelivery(t *testing.T) {
	e := NewEmitter[int]()
	values, _, completions, cancel := collect[int](e)

	e.Next(1)
	cancel()
	e.Next(2)
	e.Complete()

	assert.Equal(t, []int{1}, *values)
	assert.Equal(t, 0, *completions)
}

func TestEmitter_SecondActiveSubscribePanics(t *testing.T) {
	e := NewEmitter[int]()
	e.Subscribe(Handlers[int]{})

	assert.Panics(t, func() {
		e.Subscribe(Handlers[int]{})
	})
}

func TestEmitter_ResubscribeAfterCancel(t *testing.T) {
	e := NewEmitter[int]()
	_, _, _, cancel := collect[int](e)
	cancel()

	values, _, _, _ := collect[int](e)
	e.Next(7)

	assert.Equal(t, []int{7}, *values)
}

func TestHandlers_NilSlotsTolerated(t *testing.T) {
	e := NewEmitter[int]()
	e.Subscribe(Handlers[int]{})

	assert.NotPanics(t, func() {
		e.Next(1)
		e.Complete()
	})
}
