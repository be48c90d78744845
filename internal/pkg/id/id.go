package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time and collision-free, which makes them safe correlation
// ids to hand out to both the client and the messaging channel.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
