package fs

import (
	"sync"
	"time"

	"github.com/aretw0/peat/pkg/core"
)

// debouncer coalesces bursts of events for the same slug. Editors commonly
// emit several writes per save; only the last one within the window fires.
type debouncer struct {
	window time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
	closed bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire for the event, resetting any pending timer for the
// same slug and event type.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	key := event.Slug + "|" + string(event.Type)
	if timer, ok := d.timers[key]; ok {
		if timer.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		delete(d.timers, key)
		closed := d.closed
		d.mu.Unlock()

		if closed {
			return
		}
		fire(event)
	})
}

// stopAndWait rejects new events and waits for in-flight timers, up to the
// given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.closed = true
	for key, timer := range d.timers {
		if timer.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
