package jsonp

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zishang520/jsonp-client/config"
	"github.com/zishang520/jsonp-client/errors"
)

// jsonpServer wraps its response in whatever function name the callback
// query parameter asks for, like a real JSONP endpoint.
func jsonpServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callback := r.URL.Query().Get("callback")
		if callback == "" {
			http.Error(w, "missing callback", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprintf(w, "%s(%s);", callback, body)
	}))
}

func TestScriptLoaderInvokesCallback(t *testing.T) {
	server := jsonpServer(t, `{"value": 42, "tags": ["a", "b"]}`)
	defer server.Close()

	registry := NewCallbackRegistry()
	loader := NewScriptLoader(registry)

	var payload any
	registry.Register("cb", func(args ...any) {
		if len(args) > 0 {
			payload = args[0]
		}
	})

	loaded := false
	script := loader.CreateScript(server.URL+"?callback=cb", false)
	script.On("load", func(...any) {
		loaded = true
	})
	script.On("error", func(errs ...any) {
		t.Errorf("unexpected error event: %v", errs)
	})
	script.Attach()

	if !loaded {
		t.Error("load should fire for a fetched script")
	}
	decoded, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type = %T, want map", payload)
	}
	if fmt.Sprint(decoded["value"]) != "42" {
		t.Errorf("value = %v, want 42", decoded["value"])
	}
}

func TestScriptLoaderErrorOnStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	loader := NewScriptLoader(NewCallbackRegistry())

	var loadErr error
	script := loader.CreateScript(server.URL, false)
	script.On("error", func(errs ...any) {
		loadErr, _ = errs[0].(error)
	})
	script.Attach()

	if loadErr == nil {
		t.Fatal("error should fire for a non-success status")
	}
	if _, ok := loadErr.(*errors.TransportError); !ok {
		t.Errorf("error type = %T, want *errors.TransportError", loadErr)
	}
}

func TestScriptLoaderErrorOnUnreachable(t *testing.T) {
	loader := NewScriptLoader(NewCallbackRegistry())

	var loadErr error
	script := loader.CreateScript("http://127.0.0.1:1/denied", false)
	script.On("error", func(errs ...any) {
		loadErr, _ = errs[0].(error)
	})
	script.Attach()

	if loadErr == nil {
		t.Fatal("error should fire for an unreachable host")
	}
}

func TestScriptLoaderDisposedScriptStaysSilent(t *testing.T) {
	server := jsonpServer(t, `{}`)
	defer server.Close()

	registry := NewCallbackRegistry()
	loader := NewScriptLoader(registry)
	registry.Register("cb", func(...any) {
		t.Error("disposed script must not invoke callbacks")
	})

	script := loader.CreateScript(server.URL+"?callback=cb", false)
	script.On("load", func(...any) {
		t.Error("disposed script must not emit load")
	})
	script.Dispose()
	script.Attach()
}

func TestScriptLoaderIgnoresBrokenScript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not javascript ((")
	}))
	defer server.Close()

	loader := NewScriptLoader(NewCallbackRegistry())

	loaded := false
	script := loader.CreateScript(server.URL, false)
	script.On("load", func(...any) {
		loaded = true
	})
	script.On("error", func(errs ...any) {
		t.Errorf("unexpected error event: %v", errs)
	})
	script.Attach()

	// the resource arrived, a runtime error is the server's problem
	if !loaded {
		t.Error("load should fire even when the script throws")
	}
}

func TestManagerWithScriptLoader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callback := r.URL.Query().Get("callback")
		if got := r.URL.Query().Get("q"); got != "x" {
			t.Errorf("q = %q, want %q", got, "x")
		}
		fmt.Fprintf(w, `%s({"ok": true});`, callback)
	}))
	defer server.Close()

	opts := config.DefaultJsonpOptions()
	opts.SetUrl(server.URL)
	opts.SetSync(true)
	m := NewManager(opts, nil)
	m.SetParam("q", "x")

	completes := 0
	m.On("complete", func(...any) {
		completes++
	})

	request, err := m.GenerateRequest()
	if err != nil {
		t.Fatalf("GenerateRequest() error = %v", err)
	}

	// sync requests finish before GenerateRequest returns
	response, ok := m.LastResponse().(map[string]any)
	if !ok {
		t.Fatalf("LastResponse() type = %T, want map", m.LastResponse())
	}
	if response["ok"] != true {
		t.Errorf("ok = %v, want true", response["ok"])
	}
	if completes != 1 {
		t.Errorf("complete emitted %d times, want 1", completes)
	}
	if len(m.ActiveRequests()) != 0 {
		t.Error("request should leave the active set")
	}
	if request.Loading() {
		t.Error("request loading flag should be cleared")
	}
}
