package jsonp

import (
	"testing"
)

func TestGenerateTokenFormat(t *testing.T) {
	token := generateToken()
	if !autoTokenPattern.MatchString(token) {
		t.Errorf("token %q does not match the generated form", token)
	}
}

func TestGenerateTokenDistinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		token := generateToken()
		if seen[token] {
			t.Fatalf("token %q repeated after %d generations", token, i)
		}
		seen[token] = true
	}
}

func TestIsStableCallbackValue(t *testing.T) {
	for _, tt := range []struct {
		value string
		want  bool
	}{
		{"", false},
		{"myCallback", true},
		{"handle_response", true},
		{generateToken(), false},
		// short hex strings are fine, only the full token form is rejected
		{"deadbeef", true},
	} {
		if got := isStableCallbackValue(tt.value); got != tt.want {
			t.Errorf("isStableCallbackValue(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
