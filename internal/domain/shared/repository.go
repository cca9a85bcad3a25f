package shared

import (
	"context"

	"github.com/google/uuid"
)

// Lister returns every stored record of T. Listing is intentionally unfiltered.
type Lister[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
}

// ParseIDs converts string identifiers to UUIDs, dropping duplicates while
// keeping first-seen order. The second return holds the inputs that did not
// parse.
func ParseIDs(raw []string) ([]uuid.UUID, []string) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	var invalid []string
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, invalid
}
