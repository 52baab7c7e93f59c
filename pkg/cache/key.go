package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Key computes the cache identity for a request: the SHA-256 hex digest of
// the absolute URL joined with the canonical query encoding. url.Values
// encodes sorted by key, so the order parameters were added in never changes
// the digest.
//
// Credentials must not be part of params; the identity of a request is the
// same authenticated or not.
func Key(rawURL string, params url.Values) string {
	return Hash([]byte(rawURL + "?" + params.Encode()))
}

// Family maps an endpoint path to its cache grouping. The first two path
// segments are joined with an underscore; a single-segment endpoint stands
// alone:
//
//	"matches/271145478"    -> "matches_271145478"
//	"players/123/matches"  -> "players_123"
//	"heroes"               -> "heroes"
func Family(endpoint string) string {
	parts := strings.Split(strings.Trim(endpoint, "/"), "/")
	if len(parts) > 1 {
		return parts[0] + "_" + parts[1]
	}
	return parts[0]
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
