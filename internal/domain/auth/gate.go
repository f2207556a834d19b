// Package auth implements the credential gate for task endpoints.
// Credentials are opaque strings loaded once at startup; there is no
// expiry, scoping, or per-key identity. An empty valid set fails closed:
// the gateway keeps serving and rejects every task request.
package auth

import (
	"crypto/subtle"
	"errors"
	"log"
)

// ErrUnauthorized is returned for a missing or unknown credential.
var ErrUnauthorized = errors.New("unauthorized")

// Gate validates presented credentials against the immutable valid set.
// Safe for concurrent use: the set is never mutated after construction.
type Gate struct {
	keys [][]byte
}

// NewGate builds a Gate from the configured key list. An empty list is a
// valid fail-closed configuration; it logs one startup warning and then
// rejects everything.
func NewGate(keys []string) *Gate {
	g := &Gate{keys: make([][]byte, 0, len(keys))}
	for _, k := range keys {
		if k != "" {
			g.keys = append(g.keys, []byte(k))
		}
	}
	if len(g.keys) == 0 {
		log.Printf("auth: no API keys configured — all task requests will be rejected")
	}
	return g
}

// Authenticate checks the presented credential for membership in the valid
// set. All valid credentials are equivalent; no identity is carried on
// success. Comparison is constant-time per key so timing does not reveal
// prefixes of configured keys.
func (g *Gate) Authenticate(presented string) error {
	if presented == "" || len(g.keys) == 0 {
		return ErrUnauthorized
	}

	p := []byte(presented)
	authorized := false
	for _, k := range g.keys {
		if subtle.ConstantTimeCompare(p, k) == 1 {
			authorized = true
		}
	}
	if !authorized {
		return ErrUnauthorized
	}
	return nil
}

// KeyCount returns how many credentials are configured. Used by the health
// reporter; never exposes key material.
func (g *Gate) KeyCount() int {
	return len(g.keys)
}
