package config

import (
	"time"

	"github.com/zishang520/engine.io/utils"
)

type JsonpOptions struct {

	// The url the script request is issued against. Required before a
	// request can be generated.
	url *string

	// Query parameters appended to the url on every request.
	query *utils.ParameterBag

	// The query parameter name telling the server which function to wrap
	// its response in.
	// Defaults to 'callback'; set to the empty string to omit the pair
	// entirely (for APIs with a fixed wrapper name).
	callbackKey *string

	// The function name the server wraps its response in. When empty a
	// unique name is generated per request. Must be set to a stable value
	// when cache is enabled.
	callbackValue *string

	// Whether the response may be served from the browser-style cache.
	// Requires a stable callbackValue, and disables the cache-busting
	// query parameter.
	// @default false
	cache *bool

	// Whether the script is loaded synchronously.
	// @default false
	sync *bool

	// Whether a request fires automatically after each configuration
	// change, once the debounce window has elapsed.
	// @default false
	auto *bool

	// The quiet period after a configuration change before an automatic
	// request fires.
	// @default 0
	debounce *time.Duration
}

func DefaultJsonpOptions() *JsonpOptions {
	return &JsonpOptions{}
}

func (j *JsonpOptions) Assign(data JsonpOptionsInterface) JsonpOptionsInterface {
	if data == nil {
		return j
	}

	if data.GetRawUrl() != nil {
		j.SetUrl(data.Url())
	}
	if data.GetRawQuery() != nil {
		j.SetQuery(data.GetRawQuery())
	}
	if data.GetRawCallbackKey() != nil {
		j.SetCallbackKey(data.CallbackKey())
	}
	if data.GetRawCallbackValue() != nil {
		j.SetCallbackValue(data.CallbackValue())
	}
	if data.GetRawCache() != nil {
		j.SetCache(data.Cache())
	}
	if data.GetRawSync() != nil {
		j.SetSync(data.Sync())
	}
	if data.GetRawAuto() != nil {
		j.SetAuto(data.Auto())
	}
	if data.GetRawDebounce() != nil {
		j.SetDebounce(data.Debounce())
	}

	return j
}

func (j *JsonpOptions) Url() string {
	if j.url == nil {
		return ""
	}
	return *j.url
}
func (j *JsonpOptions) GetRawUrl() *string {
	return j.url
}
func (j *JsonpOptions) SetUrl(url string) {
	j.url = &url
}

func (j *JsonpOptions) Query() *utils.ParameterBag {
	if j.query == nil {
		return utils.NewParameterBag(nil)
	}
	return j.query
}
func (j *JsonpOptions) GetRawQuery() *utils.ParameterBag {
	return j.query
}
func (j *JsonpOptions) SetQuery(query *utils.ParameterBag) {
	j.query = query
}

func (j *JsonpOptions) CallbackKey() string {
	if j.callbackKey == nil {
		return "callback"
	}
	return *j.callbackKey
}
func (j *JsonpOptions) GetRawCallbackKey() *string {
	return j.callbackKey
}
func (j *JsonpOptions) SetCallbackKey(callbackKey string) {
	j.callbackKey = &callbackKey
}

func (j *JsonpOptions) CallbackValue() string {
	if j.callbackValue == nil {
		return ""
	}
	return *j.callbackValue
}
func (j *JsonpOptions) GetRawCallbackValue() *string {
	return j.callbackValue
}
func (j *JsonpOptions) SetCallbackValue(callbackValue string) {
	j.callbackValue = &callbackValue
}

func (j *JsonpOptions) Cache() bool {
	if j.cache == nil {
		return false
	}
	return *j.cache
}
func (j *JsonpOptions) GetRawCache() *bool {
	return j.cache
}
func (j *JsonpOptions) SetCache(cache bool) {
	j.cache = &cache
}

func (j *JsonpOptions) Sync() bool {
	if j.sync == nil {
		return false
	}
	return *j.sync
}
func (j *JsonpOptions) GetRawSync() *bool {
	return j.sync
}
func (j *JsonpOptions) SetSync(sync bool) {
	j.sync = &sync
}

func (j *JsonpOptions) Auto() bool {
	if j.auto == nil {
		return false
	}
	return *j.auto
}
func (j *JsonpOptions) GetRawAuto() *bool {
	return j.auto
}
func (j *JsonpOptions) SetAuto(auto bool) {
	j.auto = &auto
}

func (j *JsonpOptions) Debounce() time.Duration {
	if j.debounce == nil {
		return 0
	}
	return *j.debounce
}
func (j *JsonpOptions) GetRawDebounce() *time.Duration {
	return j.debounce
}
func (j *JsonpOptions) SetDebounce(debounce time.Duration) {
	j.debounce = &debounce
}
