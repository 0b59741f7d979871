package jsonp

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io/events"
	"github.com/zishang520/engine.io/log"
	"github.com/zishang520/engine.io/utils"
	"github.com/zishang520/jsonp-client/config"
	"github.com/zishang520/jsonp-client/errors"
)

var client_manager_log = log.NewLog("jsonp-client:manager")

// Manager drives the script-injection fetch lifecycle. It builds request
// urls from the current configuration, tracks in-flight requests, owns the
// callback registry and debounces automatic requests on configuration
// change.
//
// Events:
//
//	"sent"     — a request is about to be issued (*Request)
//	"load"     — a script resource arrived (*Request)
//	"error"    — a script failed to load (error)
//	"response" — the payload callback ran (decoded payload)
//	"complete" — a request finished, success or error (*Request);
//	             never emitted for aborted requests
type Manager struct {
	events.EventEmitter

	opts     config.JsonpOptionsInterface
	loader   ResourceLoader
	registry *CallbackRegistry
	metrics  *MetricsCollector

	// issuance order; the last element is the most recent request
	activeRequests []*Request
	mu_requests    sync.RWMutex

	lastRequest  *Request
	lastResponse any
	lastError    error
	lastLoad     *Request
	mu_state     sync.RWMutex

	_lastAborted   bool
	mu_lastAborted sync.RWMutex

	_loading   bool
	mu_loading sync.RWMutex

	debounceTimer *utils.Timer
	mu_timer      sync.Mutex
}

// Manager constructor. A nil opts starts from defaults; a nil loader uses
// the registered "script" loader.
func NewManager(opts config.JsonpOptionsInterface, loader ResourceLoader) *Manager {
	m := &Manager{}

	m.EventEmitter = events.New()
	if opts == nil {
		opts = config.DefaultJsonpOptions()
	}
	m.opts = opts
	m.registry = NewCallbackRegistry()
	if loader == nil {
		loader = Loaders()["script"].New(m.registry)
	}
	m.loader = loader
	m.activeRequests = []*Request{}

	return m
}

func (m *Manager) Options() config.JsonpOptionsInterface {
	return m.opts
}

func (m *Manager) Registry() *CallbackRegistry {
	return m.registry
}

// SetMetrics attaches an optional prometheus collector.
func (m *Manager) SetMetrics(metrics *MetricsCollector) {
	m.metrics = metrics
}

// SetUrl updates the target url and schedules an automatic request.
func (m *Manager) SetUrl(url string) {
	m.opts.SetUrl(url)
	m.optionsChanged()
}

// SetQuery replaces the configured parameters and schedules an automatic
// request.
func (m *Manager) SetQuery(query *utils.ParameterBag) {
	m.opts.SetQuery(query)
	m.optionsChanged()
}

// SetParams replaces the configured parameters from a plain map. Numbers
// and other scalars are formatted with their default representation.
func (m *Manager) SetParams(params map[string]any) {
	query := utils.NewParameterBag(nil)
	for key, value := range params {
		query.Set(key, fmt.Sprint(value))
	}
	m.opts.SetQuery(query)
	m.optionsChanged()
}

// SetParam sets a single parameter and schedules an automatic request.
func (m *Manager) SetParam(key string, value string) {
	query := m.opts.GetRawQuery()
	if query == nil {
		query = utils.NewParameterBag(nil)
		m.opts.SetQuery(query)
	}
	query.Set(key, value)
	m.optionsChanged()
}

func (m *Manager) SetCallbackKey(callbackKey string) {
	m.opts.SetCallbackKey(callbackKey)
	m.optionsChanged()
}

func (m *Manager) SetCallbackValue(callbackValue string) {
	m.opts.SetCallbackValue(callbackValue)
	m.optionsChanged()
}

func (m *Manager) SetCache(cache bool) {
	m.opts.SetCache(cache)
	m.optionsChanged()
}

func (m *Manager) SetSync(sync bool) {
	m.opts.SetSync(sync)
	m.optionsChanged()
}

func (m *Manager) SetAuto(auto bool) {
	m.opts.SetAuto(auto)
	m.optionsChanged()
}

func (m *Manager) SetDebounce(debounce time.Duration) {
	m.opts.SetDebounce(debounce)
	m.optionsChanged()
}

// optionsChanged restarts the debounce timer. Each change supersedes the
// pending automatic request, so a burst of changes fires at most once.
func (m *Manager) optionsChanged() {
	m.mu_timer.Lock()
	defer m.mu_timer.Unlock()

	if m.debounceTimer != nil {
		utils.ClearTimeout(m.debounceTimer)
	}
	m.debounceTimer = utils.SetTimeOut(func() {
		// auto is read at fire time, not at schedule time
		if !m.opts.Auto() {
			return
		}
		if _, err := m.GenerateRequest(); err != nil {
			client_manager_log.Debug("auto request skipped: %s", err.Error())
		}
	}, m.opts.Debounce())
}

// GenerateRequest issues a request against the current configuration and
// returns its handle. Configuration errors are returned synchronously,
// before any script side effects; everything later arrives as events.
func (m *Manager) GenerateRequest() (*Request, error) {
	rawUrl := m.opts.Url()
	if rawUrl == "" {
		return nil, errors.NewConfigError("url must not be empty").Err()
	}
	callbackValue := m.opts.CallbackValue()
	if m.opts.Cache() && !isStableCallbackValue(callbackValue) {
		// caching keys on the full url, so the wrapper name has to be stable
		return nil, errors.NewConfigError("cache requires a stable callbackValue").Err()
	}
	if callbackValue == "" {
		callbackValue = generateToken()
	}
	uri, err := m.buildUrl(rawUrl, callbackValue)
	if err != nil {
		return nil, errors.NewConfigError("invalid url: "+err.Error()).Err()
	}

	request := NewRequest(&RequestOptions{
		Url:           uri,
		Cache:         m.opts.Cache(),
		Sync:          m.opts.Sync(),
		CallbackKey:   m.opts.CallbackKey(),
		CallbackValue: callbackValue,
	})

	// the callback has to exist before the script can possibly run
	m.registry.Register(callbackValue, func(args ...any) {
		var payload any
		if len(args) > 0 {
			payload = args[0]
		}
		m.handleResponse(request, payload)
	})

	script := m.loader.CreateScript(uri, !m.opts.Sync())
	request.setScript(script)
	script.On("load", func(...any) {
		m.handleLoad(request)
	})
	script.On("error", func(errs ...any) {
		var err error
		if len(errs) > 0 {
			err, _ = errs[0].(error)
		}
		m.handleError(request, err)
	})

	m.mu_requests.Lock()
	m.activeRequests = append(m.activeRequests, request)
	m.setLoading(true)
	m.mu_requests.Unlock()

	m.setLastAborted(false)
	m.mu_state.Lock()
	m.lastRequest = request
	m.mu_state.Unlock()

	if m.metrics != nil {
		m.metrics.RecordSent()
	}
	m.Emit("sent", request)

	script.Attach()
	return request, nil
}

// buildUrl appends the configured parameters, the callback pair and,
// unless caching is enabled, a cache-busting token.
func (m *Manager) buildUrl(rawUrl string, callbackValue string) (string, error) {
	_url, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	query := _url.Query()
	if bag := m.opts.GetRawQuery(); bag != nil {
		for key, values := range bag.All() {
			query.Del(key)
			for _, value := range values {
				query.Add(key, value)
			}
		}
	}
	if callbackKey := m.opts.CallbackKey(); callbackKey != "" {
		query.Set(callbackKey, callbackValue)
	}
	if !m.opts.Cache() {
		query.Set("_", generateToken())
	}
	_url.RawQuery = query.Encode()
	return _url.String(), nil
}

// AbortRequest cancels an in-flight request without a complete event. A
// nil request targets the most recently issued active request; no-op when
// nothing is active.
func (m *Manager) AbortRequest(request *Request) {
	m.mu_requests.RLock()
	var last *Request
	if len(m.activeRequests) > 0 {
		last = m.activeRequests[len(m.activeRequests)-1]
	}
	m.mu_requests.RUnlock()

	if request == nil {
		request = last
	}
	if request == nil {
		return
	}
	if request == last {
		m.setLastAborted(true)
	}
	if m.cleanup(request) && m.metrics != nil {
		m.metrics.RecordAbort()
	}
}

// cleanup is shared by the completion and abort paths. Safe to call twice
// for the same request; the second call reports false and does nothing.
func (m *Manager) cleanup(request *Request) bool {
	m.mu_requests.Lock()
	index := -1
	for i, active := range m.activeRequests {
		if active == request {
			index = i
			break
		}
	}
	if index == -1 {
		m.mu_requests.Unlock()
		return false
	}
	request.setLoading(false)
	m.activeRequests = append(m.activeRequests[:index], m.activeRequests[index+1:]...)
	loading := false
	for _, active := range m.activeRequests {
		if active.Loading() {
			loading = true
			break
		}
	}
	// the aggregate flag has to change while the set is still locked, or a
	// concurrent issuance can observe loading=false with a request active
	m.setLoading(loading)
	m.mu_requests.Unlock()

	m.registry.Deregister(request.Options().CallbackValue)
	request.releaseScript()
	return true
}

// discardRequest removes the request and emits "complete" exactly once.
func (m *Manager) discardRequest(request *Request, outcome string) {
	if !m.cleanup(request) {
		return
	}
	if m.metrics != nil {
		m.metrics.RecordComplete(outcome, time.Since(request.IssuedAt()))
	}
	m.Emit("complete", request)
}

func (m *Manager) handleResponse(request *Request, payload any) {
	m.mu_state.Lock()
	m.lastResponse = payload
	m.lastError = nil
	m.mu_state.Unlock()

	m.Emit("response", payload)
	m.discardRequest(request, "success")
}

func (m *Manager) handleError(request *Request, err error) {
	if err == nil {
		err = errors.NewTransportError("script load error", nil).Err()
	}
	m.mu_state.Lock()
	m.lastResponse = nil
	m.lastError = err
	m.mu_state.Unlock()

	m.Emit("error", err)
	m.discardRequest(request, "error")
}

func (m *Manager) handleLoad(request *Request) {
	m.mu_state.Lock()
	m.lastLoad = request
	m.mu_state.Unlock()

	m.Emit("load", request)
}

// ActiveRequests returns a snapshot of the in-flight requests in issuance
// order.
func (m *Manager) ActiveRequests() []*Request {
	m.mu_requests.RLock()
	defer m.mu_requests.RUnlock()

	requests := make([]*Request, len(m.activeRequests))
	copy(requests, m.activeRequests)
	return requests
}

func (m *Manager) LastRequest() *Request {
	m.mu_state.RLock()
	defer m.mu_state.RUnlock()

	return m.lastRequest
}

func (m *Manager) LastResponse() any {
	m.mu_state.RLock()
	defer m.mu_state.RUnlock()

	return m.lastResponse
}

func (m *Manager) LastError() error {
	m.mu_state.RLock()
	defer m.mu_state.RUnlock()

	return m.lastError
}

func (m *Manager) LastLoad() *Request {
	m.mu_state.RLock()
	defer m.mu_state.RUnlock()

	return m.lastLoad
}

func (m *Manager) Loading() bool {
	m.mu_loading.RLock()
	defer m.mu_loading.RUnlock()

	return m._loading
}

func (m *Manager) setLoading(loading bool) {
	m.mu_loading.Lock()
	defer m.mu_loading.Unlock()

	m._loading = loading
}

func (m *Manager) LastAborted() bool {
	m.mu_lastAborted.RLock()
	defer m.mu_lastAborted.RUnlock()

	return m._lastAborted
}

func (m *Manager) setLastAborted(lastAborted bool) {
	m.mu_lastAborted.Lock()
	defer m.mu_lastAborted.Unlock()

	m._lastAborted = lastAborted
}
