package queries

import (
	"context"
	"database/sql"
	"strings"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/pkg/retry"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// ListBidsQueryHandler builds the bid board query with squirrel. Status is
// derived in SQL with the same precedence the aggregate uses.
type ListBidsQueryHandler struct {
	db     *gorm.DB
	policy retry.Policy
}

func NewListBidsQueryHandler(db *gorm.DB) ListBidsQueryHandler {
	return ListBidsQueryHandler{db: db, policy: retry.DefaultPolicy()}
}

// gorm rewrites ? placeholders for the postgres dialect itself.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func (h ListBidsQueryHandler) Handle(ctx context.Context, query ListBidsQuery) (ListBidsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListBidsQueryResponse{}, err
	}

	filter := listBidsFilter(query)

	countSQL, countArgs, err := psql.Select("count(*)").
		From("bids b").
		LeftJoin("awards a ON a.bid_number = b.bid_number AND a.removed = false").
		Where(filter).
		ToSql()
	if err != nil {
		return ListBidsQueryResponse{}, err
	}

	pageSQL, pageArgs, err := psql.Select(
		"b.bid_number", "b.origin", "b.destination", "b.distance_miles", "b.pickup_at", "b.tag",
		"b.expires_at", "b.created_at",
		"b.completed_at IS NOT NULL", "b.no_contest_at IS NOT NULL",
		"a.winner_id", "a.amount_cents",
		"(SELECT count(*) FROM carrier_bids cb WHERE cb.bid_number = b.bid_number)",
		"(SELECT min(cb.amount_cents) FROM carrier_bids cb WHERE cb.bid_number = b.bid_number)",
	).
		From("bids b").
		LeftJoin("awards a ON a.bid_number = b.bid_number AND a.removed = false").
		Where(filter).
		OrderBy("b.created_at DESC", "b.bid_number").
		Limit(uint64(query.Limit())).
		Offset(uint64(query.Offset())).
		ToSql()
	if err != nil {
		return ListBidsQueryResponse{}, err
	}

	return retry.Read(ctx, h.policy, func(ctx context.Context) (ListBidsQueryResponse, error) {
		var resp ListBidsQueryResponse
		err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var total int64
			if err := tx.Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
				return storeError("count bids", err)
			}
			resp.Total = int(total)

			items, err := scanBidList(tx, pageSQL, pageArgs)
			resp.Items = items
			return err
		}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
		return resp, storeError("list bids", err)
	})
}

func listBidsFilter(query ListBidsQuery) squirrel.And {
	filter := squirrel.And{}

	switch query.Status() {
	case auction.Completed:
		filter = append(filter, squirrel.Expr("b.completed_at IS NOT NULL"))
	case auction.NoContest:
		filter = append(filter, squirrel.Expr("b.completed_at IS NULL AND b.no_contest_at IS NOT NULL"))
	case auction.Awarded:
		filter = append(filter, squirrel.Expr("b.completed_at IS NULL AND b.no_contest_at IS NULL AND a.id IS NOT NULL"))
	case auction.Open:
		filter = append(filter, squirrel.Expr("b.completed_at IS NULL AND b.no_contest_at IS NULL AND a.id IS NULL"))
	}

	if query.Search() != "" {
		pattern := "%" + escapeLike(query.Search()) + "%"
		filter = append(filter, squirrel.Or{
			squirrel.ILike{"b.bid_number": pattern},
			squirrel.ILike{"b.origin": pattern},
			squirrel.ILike{"b.destination": pattern},
		})
	}

	return filter
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanBidList(tx *gorm.DB, query string, args []any) ([]BidListItem, error) {
	rows, err := tx.Raw(query, args...).Rows()
	if err != nil {
		return nil, storeError("select bids", err)
	}
	defer rows.Close()

	items := make([]BidListItem, 0)
	for rows.Next() {
		var (
			item                 BidListItem
			pickupAt             sql.NullTime
			completed, noContest bool
			winner               sql.NullString
			winnerAmount, lowest sql.NullInt64
			count                int64
		)
		if err = rows.Scan(
			&item.BidNumber, &item.Origin, &item.Destination, &item.DistanceMiles, &pickupAt, &item.Tag,
			&item.ExpiresAt, &item.CreatedAt,
			&completed, &noContest,
			&winner, &winnerAmount,
			&count, &lowest,
		); err != nil {
			return nil, storeError("scan bid", err)
		}

		item.PickupAt = timePtr(pickupAt)
		item.ExpiresAt = item.ExpiresAt.UTC()
		item.CreatedAt = item.CreatedAt.UTC()
		item.Status = auction.DeriveStatus(completed, noContest, winner.Valid)
		item.WinnerID = stringPtr(winner)
		item.WinnerAmount = moneyPtr(winnerAmount)
		item.BidCount = int(count)
		item.LowestAmount = moneyPtr(lowest)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("read bids", err)
	}
	return items, nil
}
