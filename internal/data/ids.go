package data

import "github.com/google/uuid"

// Identifier prefixes for tabs and sections.
const (
	TabPrefix     = "t"
	SectionPrefix = "s"
)

// IDFunc produces a fresh identifier carrying the given prefix.
type IDFunc func(prefix string) string

// MakeID returns "<prefix>-<uuid v7>". The UUID carries a millisecond
// timestamp followed by random bits. Collisions are not checked.
func MakeID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
