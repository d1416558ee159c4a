// Package ledger provides the idempotency key for planned time entries.
// The durable ledger itself lives in the sqlite adapter; this package keeps
// the fingerprint a dependency-free pure function.
package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// fingerprintPayload serializes with lexically ordered keys; the field order
// here must stay sorted so the hash is stable across versions.
type fingerprintPayload struct {
	Description string `json:"description"`
	Start       string `json:"start"`
	Stop        string `json:"stop"`
}

// Fingerprint returns the deterministic idempotency key for a time entry:
// sha256 over the compact JSON of (description, start, stop). Identical
// triples hash identically across processes and runs.
func Fingerprint(start, stop, description string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a fixed struct cannot fail.
	_ = enc.Encode(fingerprintPayload{Description: description, Start: start, Stop: stop})
	sum := sha256.Sum256(bytes.TrimRight(buf.Bytes(), "\n"))
	return hex.EncodeToString(sum[:])
}
