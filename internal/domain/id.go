package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID creates an entity id from a base-36 millisecond timestamp and a
// random suffix. Nothing relies on the format, only on uniqueness.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return ts + "-" + uuid.NewString()[:8]
}
