package config

import (
	"time"

	"github.com/zishang520/engine.io/utils"
)

type JsonpOptionsInterface interface {
	Url() string
	GetRawUrl() *string
	SetUrl(string)

	Query() *utils.ParameterBag
	GetRawQuery() *utils.ParameterBag
	SetQuery(*utils.ParameterBag)

	CallbackKey() string
	GetRawCallbackKey() *string
	SetCallbackKey(string)

	CallbackValue() string
	GetRawCallbackValue() *string
	SetCallbackValue(string)

	Cache() bool
	GetRawCache() *bool
	SetCache(bool)

	Sync() bool
	GetRawSync() *bool
	SetSync(bool)

	Auto() bool
	GetRawAuto() *bool
	SetAuto(bool)

	Debounce() time.Duration
	GetRawDebounce() *time.Duration
	SetDebounce(time.Duration)
}
