package queries

import (
	"context"
	"database/sql"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/retry"

	"gorm.io/gorm"
)

// GetBidStatusQueryHandler derives a bid's status from its markers and active
// award in a single statement.
type GetBidStatusQueryHandler struct {
	db     *gorm.DB
	policy retry.Policy
}

func NewGetBidStatusQueryHandler(db *gorm.DB) GetBidStatusQueryHandler {
	return GetBidStatusQueryHandler{db: db, policy: retry.DefaultPolicy()}
}

func (h GetBidStatusQueryHandler) Handle(ctx context.Context, query GetBidStatusQuery) (GetBidStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBidStatusQueryResponse{}, err
	}

	number := query.BidNumber()
	return retry.Read(ctx, h.policy, func(ctx context.Context) (GetBidStatusQueryResponse, error) {
		rows, err := h.db.WithContext(ctx).Raw(`
			SELECT b.completed_at IS NOT NULL, b.no_contest_at IS NOT NULL, a.winner_id
			FROM bids b
			LEFT JOIN awards a ON a.bid_number = b.bid_number AND a.removed = false
			WHERE b.bid_number = ?
		`, number.String()).Rows()
		if err != nil {
			return GetBidStatusQueryResponse{}, storeError("select bid status", err)
		}
		defer rows.Close()

		if !rows.Next() {
			if err = rows.Err(); err != nil {
				return GetBidStatusQueryResponse{}, storeError("select bid status", err)
			}
			return GetBidStatusQueryResponse{}, errs.NewObjectNotFoundError("bid", number.String())
		}

		var (
			completed, noContest bool
			winner               sql.NullString
		)
		if err = rows.Scan(&completed, &noContest, &winner); err != nil {
			return GetBidStatusQueryResponse{}, storeError("scan bid status", err)
		}

		return GetBidStatusQueryResponse{
			BidNumber: number.String(),
			Status:    auction.DeriveStatus(completed, noContest, winner.Valid),
			WinnerID:  stringPtr(winner),
		}, nil
	})
}
