package jsonp

import (
	"sync"
	"time"
)

// RequestOptions is the configuration snapshot a request was issued with.
// Immutable for the life of the request.
type RequestOptions struct {
	Url           string
	Cache         bool
	Sync          bool
	CallbackKey   string
	CallbackValue string
}

// Request represents one in-flight or completed fetch attempt. It owns its
// script handle exclusively until cleanup releases it.
type Request struct {
	options  *RequestOptions
	issuedAt time.Time

	script    ScriptHandle
	mu_script sync.RWMutex

	_loading   bool
	mu_loading sync.RWMutex
}

// Request constructor
func NewRequest(options *RequestOptions) *Request {
	r := &Request{}

	r.options = options
	r.issuedAt = time.Now()
	r._loading = true

	return r
}

func (r *Request) Options() *RequestOptions {
	return r.options
}

func (r *Request) IssuedAt() time.Time {
	return r.issuedAt
}

func (r *Request) Script() ScriptHandle {
	r.mu_script.RLock()
	defer r.mu_script.RUnlock()

	return r.script
}

func (r *Request) setScript(script ScriptHandle) {
	r.mu_script.Lock()
	defer r.mu_script.Unlock()

	r.script = script
}

// releaseScript detaches and forgets the script handle.
func (r *Request) releaseScript() {
	r.mu_script.Lock()
	defer r.mu_script.Unlock()

	if r.script != nil {
		r.script.Dispose()
		r.script = nil
	}
}

func (r *Request) Loading() bool {
	r.mu_loading.RLock()
	defer r.mu_loading.RUnlock()

	return r._loading
}

func (r *Request) setLoading(loading bool) {
	r.mu_loading.Lock()
	defer r.mu_loading.Unlock()

	r._loading = loading
}
