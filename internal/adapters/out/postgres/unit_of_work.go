// Package postgres provides the GORM-based Unit of Work that binds every
// repository of the marketplace to one database transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	bid, err := uow.BidRepository().GetForUpdate(ctx, number)
//	if err != nil {
//	    return err
//	}
//	// mutate the bid, write the award
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - Each UnitOfWork instance owns one transaction; goroutines never share one.
//   - Every state change on a bid locks its row first (GetForUpdate), which
//     serializes awards, no-contest and completion on that bid.
//   - Accepting an offer locks the offer row before the bid row. No path locks
//     in the other order, so the two never deadlock.
//   - Unique indexes back up the locks: a second active award or a second
//     assignment for a load fails with ConflictError even if a lock is missed.
package postgres

import (
	"context"

	"loadboard/internal/adapters/out/postgres/bidrepo"
	"loadboard/internal/adapters/out/postgres/ledgerrepo"
	"loadboard/internal/adapters/out/postgres/offerrepo"
	"loadboard/internal/adapters/out/postgres/pgerr"
	"loadboard/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the bid, award,
// carrier bid, offer, assignment, offer event and ledger repositories.
//
// Repositories obtained before Begin run against the pool directly.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Map("begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit makes the transaction's writes durable. A deferred constraint
// violation surfaces as ConflictError; any other failure as StoreError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Map("commit transaction", err)
}

// Rollback discards the transaction. After Commit it returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) BidRepository() ports.BidRepository {
	return bidrepo.NewGormBidRepository(uow.conn())
}

func (uow *GormUnitOfWork) AwardRepository() ports.AwardRepository {
	return bidrepo.NewGormAwardRepository(uow.conn())
}

func (uow *GormUnitOfWork) CarrierBidRepository() ports.CarrierBidRepository {
	return bidrepo.NewGormCarrierBidRepository(uow.conn())
}

func (uow *GormUnitOfWork) OfferRepository() ports.OfferRepository {
	return offerrepo.NewGormOfferRepository(uow.conn())
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return offerrepo.NewGormAssignmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) OfferEventRepository() ports.OfferEventRepository {
	return offerrepo.NewGormOfferEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) LifecycleEventRepository() ports.LifecycleEventRepository {
	return ledgerrepo.NewGormLifecycleEventRepository(uow.conn())
}
