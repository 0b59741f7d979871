package jsonp

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// autoTokenPattern matches the compact form produced by generateToken. A
// caller-supplied callbackValue matching it is treated as unstable too, so
// it cannot satisfy the cache guard.
var autoTokenPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

var (
	tokenRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	mu_token  sync.Mutex
)

// generateToken returns a fresh 128-bit identifier in compact hex form.
// Collision odds are all callers need, so a non-cryptographic source is
// fine; never use these tokens as secrets.
func generateToken() string {
	mu_token.Lock()
	defer mu_token.Unlock()

	token, err := uuid.NewRandomFromReader(tokenRand)
	if err != nil {
		token = uuid.New()
	}
	return strings.ReplaceAll(token.String(), "-", "")
}

// isStableCallbackValue reports whether the value can key the browser
// cache across requests.
func isStableCallbackValue(value string) bool {
	return value != "" && !autoTokenPattern.MatchString(value)
}
