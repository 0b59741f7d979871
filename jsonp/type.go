package jsonp

import (
	"github.com/zishang520/engine.io/events"
)

// ScriptHandle is the injected script-element stand-in. Events:
//
//	"load"  — the resource was fetched; fires whether or not the payload
//	          callback ran, so it does not imply a response.
//	"error" — the resource could not be fetched.
//
// A handle is inert until Attach is called, which is the appendChild
// moment: wire listeners first, then attach. Dispose detaches the script;
// no events are delivered afterwards.
type ScriptHandle interface {
	events.EventEmitter

	// Src returns the url the script was created with.
	Src() string
	// Attach starts loading. Blocks until done for synchronous scripts.
	Attach()
	// Dispose detaches the script and suppresses any later event.
	Dispose()
}

// ResourceLoader creates script handles, keeping the lifecycle logic free
// of any real document environment.
type ResourceLoader interface {
	CreateScript(src string, async bool) ScriptHandle
}
