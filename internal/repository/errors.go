package repository

import (
	"errors"

	"github.com/nikolayk812/subsync/internal/domain"
)

var (
	ErrNotFound   = domain.ErrNotFound
	ErrStaleOrder = errors.New("order was modified concurrently")
)

// expectOne turns a zero row count into ErrNotFound.
func expectOne(rows int64) error {
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
