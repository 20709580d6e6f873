package kernel

import (
	"strings"

	"loadboard/internal/pkg/errs"
)

const maxActorIDLength = 200

// ActorID is the identity-service id of an admin or carrier. The engine treats it
// as opaque: the route layer has already verified who the caller is.
type ActorID struct {
	value string
}

// NewActorID validates a non-empty identity of at most 200 characters.
// name is the parameter name used in the validation error (winner_id, admin_id, ...).
func NewActorID(name, raw string) (ActorID, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ActorID{}, errs.NewValueIsRequiredError(name)
	}
	if len(v) > maxActorIDLength {
		return ActorID{}, errs.NewValueIsOutOfRangeError(name+" length", len(v), 1, maxActorIDLength)
	}
	return ActorID{value: v}, nil
}

// MustNewActorID panics on invalid input. Tests and fixtures only.
func MustNewActorID(raw string) ActorID {
	a, err := NewActorID("actor_id", raw)
	if err != nil {
		panic(err)
	}
	return a
}

func (a ActorID) String() string {
	return a.value
}

func (a ActorID) IsEqual(other ActorID) bool {
	return a.value == other.value
}

func (a ActorID) IsZero() bool {
	return a.value == ""
}
