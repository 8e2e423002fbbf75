package util

import (
	"context"
	"time"
)

// DebounceEvent contains the last event fired to the input channel
type DebounceEvent struct {
	Counter int64
	Data    interface{}
}

// Debounce returns two channels for input and output. An event is emitted on
// clean once nothing arrived on noisy for wait; Counter tells how many inputs
// were folded into it.
func Debounce(haltCtx context.Context, wait time.Duration) (chan<- interface{}, <-chan DebounceEvent) {
	noisy := make(chan interface{})
	clean := make(chan DebounceEvent, 1) // do not block our goroutine

	go func() {
		timer := time.NewTimer(wait)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		var counter int64
		var data interface{}

		for {
			select {
			case data = <-noisy:
				counter++
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(wait)
			case <-timer.C:
				select {
				case clean <- DebounceEvent{Counter: counter, Data: data}:
				case <-haltCtx.Done():
					return
				}
				counter = 0
				data = nil
			case <-haltCtx.Done():
				return
			}
		}
	}()

	return noisy, clean
}
