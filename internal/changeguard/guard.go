// Package changeguard gates snapshot writes on a content digest so a
// save pass that runs on every interaction only touches the remote
// store when something actually changed.
package changeguard

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
)

// Digest returns the hex SHA-256 of the payload's canonical JSON form.
// The payload is round-tripped through encoding/json first so that
// structurally equal values digest identically: object keys come out
// sorted, whitespace is dropped and 3 and 3.0 collapse to the same
// number literal.
func Digest(payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	var norm any
	if err := json.Unmarshal(b, &norm); err != nil {
		return "", fmt.Errorf("normalize payload: %w", err)
	}
	canon, err := json.Marshal(norm)
	if err != nil {
		return "", fmt.Errorf("canonicalize payload: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

// Guard remembers the digest of the last confirmed write per label.
type Guard struct {
	mu   sync.Mutex
	seen map[string]string
}

func New() *Guard {
	return &Guard{seen: make(map[string]string)}
}

// ShouldPersist reports whether the payload differs from the last
// committed write under label, and returns the digest to commit after
// the write succeeds. A label with no prior digest always persists.
func (g *Guard) ShouldPersist(label string, payload any) (bool, string, error) {
	digest, err := Digest(payload)
	if err != nil {
		return false, "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen[label] == digest {
		return false, digest, nil
	}
	return true, digest, nil
}

// Commit records the digest for label. Call only after the write has
// been confirmed, otherwise a failed write would be skipped forever.
func (g *Guard) Commit(label, digest string) {
	g.mu.Lock()
	g.seen[label] = digest
	g.mu.Unlock()
}
