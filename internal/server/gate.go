package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Gate decides whether a request comes from an authorized user.
type Gate interface {
	LoggedIn(r *http.Request) bool
}

// TokenGate authorizes requests carrying "Authorization: Bearer <Token>".
// An empty Token authorizes everyone (single-user mode).
type TokenGate struct {
	Token string
}

func (g TokenGate) LoggedIn(r *http.Request) bool {
	if g.Token == "" {
		return true
	}
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(tok)), []byte(g.Token)) == 1
}
