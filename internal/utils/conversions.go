package utils

import (
	"strconv"

	"github.com/jrsteele09/go-blog-server/internal/errors"
)

// ParseID converts a string identifier from a request argument into the
// numeric form used by storage. Non-numeric input maps to ErrBadArgument.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrBadArgument, "invalid id %q", raw)
	}
	return id, nil
}
