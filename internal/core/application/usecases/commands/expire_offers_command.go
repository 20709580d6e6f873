package commands

import (
	"errors"

	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

var ErrExpireOffersCommandIsNotConstructed = errors.New(
	"ExpireOffersCommand must be created via NewExpireOffersCommand constructor",
)

const maxExpireBatch = 1000

// ExpireOffersCommand expires up to batchSize pending offers that are past
// their expiration. It is issued by the offer expiration job.
type ExpireOffersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireOffersCommand(batchSize int) (ExpireOffersCommand, error) {
	if batchSize <= 0 || batchSize > maxExpireBatch {
		return ExpireOffersCommand{}, errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, maxExpireBatch)
	}

	return ExpireOffersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireOffersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOffersCommandIsNotConstructed)
}

func (c ExpireOffersCommand) BatchSize() int {
	return c.batchSize
}
