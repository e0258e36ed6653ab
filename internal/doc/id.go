package doc

import "github.com/google/uuid"

// NewID returns a new unique entity id.
func NewID() string {
	return uuid.NewString()
}
