package cache

import "sync"

// call is one in-flight load. Waiters block on done and then read val/err.
type call struct {
	done chan struct{}
	val  any
	err  error
}

// FlightGroup de-duplicates concurrent loads for the same key: the first
// caller runs fn, every concurrent caller for that key waits on the same
// in-flight result instead of starting its own load.
type FlightGroup struct {
	mu    sync.Mutex
	calls map[string]*call
}

func NewFlightGroup() *FlightGroup {
	return &FlightGroup{calls: make(map[string]*call)}
}

// Do runs fn for key unless a load for key is already in flight, in which
// case it waits for that load and returns its result.
func (g *FlightGroup) Do(key string, fn func() (any, error)) (any, error) {
	g.mu.Lock()
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err
	}
	c := &call{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(c.done)

	return c.val, c.err
}
