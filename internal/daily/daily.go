// internal/daily/daily.go
//
// Deterministic daily puzzle seeding. Every player gets the same grid for a
// given UTC date; the salt keeps the sequence unguessable.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the grid seed for the date: the first 8 bytes of
// HMAC-SHA256(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) uint64 {
	return SeedForKey(DateKey(date), salt)
}

// SeedForKey is Seed for an already formatted date key.
func SeedForKey(dateKey, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
