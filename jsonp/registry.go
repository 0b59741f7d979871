package jsonp

import (
	"sync"

	"github.com/zishang520/engine.io/events"
)

// CallbackRegistry maps callback names to the handlers a fetched script
// may invoke. Each manager owns one, so independent managers never share
// callback namespace.
type CallbackRegistry struct {
	callbacks map[string]events.Listener
	mu        sync.RWMutex
}

func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{
		callbacks: map[string]events.Listener{},
	}
}

func (c *CallbackRegistry) Register(name string, listener events.Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.callbacks[name] = listener
}

func (c *CallbackRegistry) Deregister(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.callbacks[name]; !ok {
		return false
	}
	delete(c.callbacks, name)
	return true
}

func (c *CallbackRegistry) Get(name string) (events.Listener, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	listener, ok := c.callbacks[name]
	return listener, ok
}

func (c *CallbackRegistry) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.callbacks[name]
	return ok
}

// All returns a snapshot of the registered callbacks.
func (c *CallbackRegistry) All() map[string]events.Listener {
	c.mu.RLock()
	defer c.mu.RUnlock()

	callbacks := make(map[string]events.Listener, len(c.callbacks))
	for name, listener := range c.callbacks {
		callbacks[name] = listener
	}
	return callbacks
}

func (c *CallbackRegistry) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.callbacks)
}
