package jsonp

import (
	"net/http"
	"sync"

	"github.com/dop251/goja"
	"github.com/zishang520/engine.io/events"
	"github.com/zishang520/engine.io/log"
	"github.com/zishang520/jsonp-client/errors"
	_http "github.com/zishang520/jsonp-client/http"
)

var client_loader_log = log.NewLog("jsonp-client:loader")

// ScriptLoader is the default ResourceLoader. It fetches the target url
// and evaluates the returned script in a javascript runtime where the
// registry's callbacks are reachable as globals, which is what a browser
// script element would do with the process-wide namespace.
type ScriptLoader struct {
	registry *CallbackRegistry
	options  *_http.Options
}

// ScriptLoader constructor.
func NewScriptLoader(registry *CallbackRegistry) *ScriptLoader {
	l := &ScriptLoader{}

	l.registry = registry

	return l
}

// SetRequestOptions overrides the transport options used for fetches
// (timeout, headers, compression, tls).
func (l *ScriptLoader) SetRequestOptions(options *_http.Options) {
	l.options = options
}

func (l *ScriptLoader) CreateScript(src string, async bool) ScriptHandle {
	s := &loaderScript{}

	s.EventEmitter = events.New()
	s.loader = l
	s.src = src
	s.async = async

	return s
}

type loaderScript struct {
	events.EventEmitter

	loader *ScriptLoader
	src    string
	async  bool

	_disposed   bool
	mu_disposed sync.RWMutex
}

func (s *loaderScript) Src() string {
	return s.src
}

func (s *loaderScript) Attach() {
	if s.async {
		go s.run()
	} else {
		s.run()
	}
}

func (s *loaderScript) Dispose() {
	s.mu_disposed.Lock()
	defer s.mu_disposed.Unlock()

	s._disposed = true
}

func (s *loaderScript) disposed() bool {
	s.mu_disposed.RLock()
	defer s.mu_disposed.RUnlock()

	return s._disposed
}

func (s *loaderScript) run() {
	res, err := _http.NewRequest(s.src, s.loader.options)
	if err != nil {
		s.emitError(errors.NewTransportError("script load error", err).Err())
		return
	}
	if res.StatusCode != http.StatusOK {
		s.emitError(errors.NewTransportError("script load error: "+res.Status, nil).Err())
		return
	}
	if s.disposed() {
		return
	}
	// the load event only means the resource arrived, the payload callback
	// may still never run
	s.Emit("load")
	if res.BodyBuffer == nil {
		return
	}
	s.execute(res.BodyBuffer.String())
}

func (s *loaderScript) emitError(err error) {
	if s.disposed() {
		return
	}
	s.Emit("error", err)
}

// execute runs the fetched body with every registered callback bound as a
// global function.
func (s *loaderScript) execute(body string) {
	vm := goja.New()
	for name, listener := range s.loader.registry.All() {
		callback := listener
		if err := vm.Set(name, func(args ...any) {
			if s.disposed() {
				return
			}
			callback(args...)
		}); err != nil {
			client_loader_log.Debug("script callback bind error: %s", err.Error())
		}
	}
	if _, err := vm.RunString(body); err != nil {
		// a script that throws still loaded, mirror the browser and move on
		client_loader_log.Debug("script execute error: %s", err.Error())
	}
}
