// Package pgerr translates PostgreSQL driver failures into the engine's error
// kinds. Unique violations become ConflictError; everything else the store
// reports is a retryable StoreError.
package pgerr

import (
	"errors"
	"fmt"

	"loadboard/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

var constraintReasons = map[string]string{
	"bids_pkey":                    "bid number already exists",
	"awards_active_bid_number_key": "bid already has an active award",
	"carrier_bids_bid_carrier_key": "carrier already bid on this bid",
	"assignments_offer_id_key":     "offer already has an assignment",
	"assignments_load_ref_key":     "load already has an assignment",
}

// Map wraps err for the operation op. Errors already classified by the engine
// pass through unchanged.
func Map(op string, err error) error {
	if err == nil {
		return nil
	}

	if isClassified(err) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errs.NewConflictErrorWithCause(reason(pqErr.Constraint), err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause(op, err)
	}

	return errs.NewStoreError(op, err)
}

// IsUniqueViolation reports whether err is a unique constraint failure on constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == constraint
}

func isClassified(err error) bool {
	return errs.IsValidation(err) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrStore)
}

func reason(constraint string) string {
	if r, ok := constraintReasons[constraint]; ok {
		return r
	}
	return fmt.Sprintf("unique constraint %s violated", constraint)
}
