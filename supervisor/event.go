package supervisor

import (
	"log"

	"github.com/thejerf/suture/v4"
)

// EventHook logs supervisor events and counts crashed services
type EventHook struct {
	Crashes int
}

func (e *EventHook) Event(evt suture.Event) {
	log.Printf("[supervisor] event: %+v\n", evt)
	defer func() {
		if err := recover(); err != nil {
			log.Printf("[supervisor] event hook panic: %+v\n", err)
		}
	}()
	m := evt.Map()
	switch evt.Type() {
	case suture.EventTypeServiceTerminate, suture.EventTypeServicePanic:
		e.Crashes++
		log.Printf("[supervisor] %s stopped unexpectedly\n", m["service_name"])
	}
}
