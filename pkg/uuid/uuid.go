// Package uuid provides UUID v7 generation.
// UUID v7 is sortable by timestamp, which keeps the SQLite usage and memory
// tables insert-ordered without a separate sequence column.
package uuid

import (
	"crypto/rand"
	"fmt"
	"time"
)

// UUID represents a UUID v7 identifier.
type UUID [16]byte

// NewV7 generates a new UUID v7 (draft-ietf-uuidrev-rfc4122bis):
//   - 48 bits: UNIX timestamp in milliseconds
//   - 4 bits: version (0111)
//   - 12 + 62 bits: random
//   - 2 bits: variant (10)
func NewV7() UUID {
	var u UUID

	ms := uint64(time.Now().UnixMilli())
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)

	// Fill bytes 6-15 with random data, then stamp version and variant bits.
	_, _ = rand.Read(u[6:])
	u[6] = 0x70 | (u[6] & 0x0f)
	u[7] = 0x80 | (u[7] & 0x3f)

	return u
}

// String returns the UUID in standard form: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4],
		u[4:6],
		u[6:8],
		u[8:10],
		u[10:16],
	)
}
