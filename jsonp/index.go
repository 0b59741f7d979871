package jsonp

type loaders struct {
	New func(registry *CallbackRegistry) ResourceLoader
}

var _loaders map[string]*loaders = map[string]*loaders{
	"script": &loaders{
		// ScriptLoader polymorphic New.
		New: func(registry *CallbackRegistry) ResourceLoader {
			return NewScriptLoader(registry)
		},
	},
}

func Loaders() map[string]*loaders {
	return _loaders
}
