package commands

import (
	"errors"

	"loadboard/internal/pkg/errs"
)

// optional turns a NotFoundError into a nil result. Other errors pass through.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
