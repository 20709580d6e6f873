package auction_test

import (
	"testing"
	"time"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newOpenBid(t *testing.T, number string) *auction.Bid {
	t.Helper()
	meta, err := auction.NewMetadata("Dallas, TX", "Denver, CO", []string{"Amarillo, TX"}, 780, nil, nil, "DAL")
	require.NoError(t, err)
	bid, err := auction.NewBid(kernel.MustNewBidNumber(number), meta, baseTime.Add(25*time.Minute), baseTime)
	require.NoError(t, err)
	return bid
}

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewPositiveMoney("amount", cents)
	require.NoError(t, err)
	return m
}

func awardTo(t *testing.T, bid *auction.Bid, winner string, cents int64) (*auction.Award, error) {
	t.Helper()
	return bid.Award(kernel.NewUUID(), kernel.MustNewActorID(winner), money(t, cents),
		kernel.MoneyFromCents(0), "", kernel.MustNewActorID("admin-1"), baseTime.Add(time.Minute))
}

func TestNewBid(t *testing.T) {
	t.Run("new bid is open", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		assert.Equal(t, auction.Open, bid.Status())
		assert.Nil(t, bid.ActiveAward())
		require.NoError(t, bid.Validate())
	})

	t.Run("expiration must follow creation", func(t *testing.T) {
		meta, err := auction.NewMetadata("A", "B", nil, 0, nil, nil, "")
		require.NoError(t, err)
		_, err = auction.NewBid(kernel.MustNewBidNumber("9002"), meta, baseTime, baseTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var bid auction.Bid
		require.ErrorIs(t, bid.Validate(), auction.ErrBidIsNotConstructed)
	})
}

func TestBid_Award(t *testing.T) {
	t.Run("awards an open bid", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		award, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)

		assert.Equal(t, auction.Awarded, bid.Status())
		assert.Same(t, award, bid.ActiveAward())
		assert.Equal(t, "C2", award.WinnerID().String())
		assert.Equal(t, int64(200000), award.Amount().Cents())
		assert.False(t, award.IsRemoved())
	})

	t.Run("second award conflicts", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)

		_, err = awardTo(t, bid, "C3", 210000)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "C2", bid.ActiveAward().WinnerID().String())
	})

	t.Run("non-positive amount is a validation error", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, err := bid.Award(kernel.NewUUID(), kernel.MustNewActorID("C2"), kernel.MoneyFromCents(0),
			kernel.MoneyFromCents(0), "", kernel.MustNewActorID("admin-1"), baseTime)
		require.True(t, errs.IsValidation(err))
		assert.Equal(t, auction.Open, bid.Status())
	})

	t.Run("no contest bid cannot be awarded", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, _, err := bid.MarkNoContest(kernel.MustNewActorID("admin-1"), "", baseTime)
		require.NoError(t, err)

		_, err = awardTo(t, bid, "C2", 200000)
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestBid_RemoveAward(t *testing.T) {
	t.Run("remove then award again", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		first, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)

		removed, err := bid.RemoveAward(kernel.MustNewActorID("admin-1"), baseTime.Add(2*time.Minute))
		require.NoError(t, err)
		assert.Same(t, first, removed)
		assert.True(t, removed.IsRemoved())
		require.NotNil(t, removed.RemovedAt())
		assert.Equal(t, "admin-1", removed.RemovedBy().String())
		assert.Equal(t, auction.Open, bid.Status())

		second, err := awardTo(t, bid, "C3", 210000)
		require.NoError(t, err)
		assert.Equal(t, "C3", second.WinnerID().String())
		assert.True(t, first.IsRemoved())
	})

	t.Run("no active award is not found", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, err := bid.RemoveAward(kernel.MustNewActorID("admin-1"), baseTime)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("completed bid conflicts", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)
		require.NoError(t, bid.Complete(kernel.MustNewActorID("admin-1"), true, baseTime.Add(time.Hour)))

		_, err = bid.RemoveAward(kernel.MustNewActorID("admin-1"), baseTime)
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestBid_MarkNoContest(t *testing.T) {
	admin := kernel.MustNewActorID("admin-1")

	t.Run("is idempotent", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		changed, removed, err := bid.MarkNoContest(admin, "shipper cancelled", baseTime)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Nil(t, removed)
		assert.Equal(t, auction.NoContest, bid.Status())
		assert.Equal(t, "shipper cancelled", bid.NoContest().Notes)

		changed, removed, err = bid.MarkNoContest(admin, "again", baseTime.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Nil(t, removed)
		assert.Equal(t, "shipper cancelled", bid.NoContest().Notes)
	})

	t.Run("soft-removes the active award", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		award, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)

		changed, removed, err := bid.MarkNoContest(admin, "", baseTime.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Same(t, award, removed)
		assert.True(t, award.IsRemoved())
		assert.Nil(t, bid.ActiveAward())
		assert.Equal(t, auction.NoContest, bid.Status())
	})

	t.Run("completed bid conflicts", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)
		require.NoError(t, bid.Complete(admin, true, baseTime.Add(time.Hour)))

		_, _, err = bid.MarkNoContest(admin, "", baseTime.Add(2*time.Hour))
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, auction.Completed, bid.Status())
	})
}

func TestBid_Complete(t *testing.T) {
	admin := kernel.MustNewActorID("admin-1")

	t.Run("requires a delivery", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)

		require.ErrorIs(t, bid.Complete(admin, false, baseTime), errs.ErrConflict)
		assert.Equal(t, auction.Awarded, bid.Status())
	})

	t.Run("open bid cannot complete", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		require.ErrorIs(t, bid.Complete(admin, true, baseTime), errs.ErrConflict)
	})

	t.Run("completed keeps the award and accepts lifecycle events", func(t *testing.T) {
		bid := newOpenBid(t, "9001")
		_, err := awardTo(t, bid, "C2", 200000)
		require.NoError(t, err)
		require.NoError(t, bid.Complete(admin, true, baseTime))

		assert.Equal(t, auction.Completed, bid.Status())
		assert.NotNil(t, bid.ActiveAward())
		require.NoError(t, bid.EnsureAcceptsLifecycleEvents())
	})
}

func TestBid_EnsureAcceptsLifecycleEvents(t *testing.T) {
	bid := newOpenBid(t, "9001")
	require.ErrorIs(t, bid.EnsureAcceptsLifecycleEvents(), errs.ErrConflict)

	_, err := awardTo(t, bid, "C2", 200000)
	require.NoError(t, err)
	require.NoError(t, bid.EnsureAcceptsLifecycleEvents())
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name                          string
		completed, noContest, awarded bool
		want                          auction.Status
	}{
		{"nothing", false, false, false, auction.Open},
		{"active award", false, false, true, auction.Awarded},
		{"no contest", false, true, false, auction.NoContest},
		{"completed wins", true, true, true, auction.Completed},
		{"completed with award", true, false, true, auction.Completed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auction.DeriveStatus(tt.completed, tt.noContest, tt.awarded))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := auction.ParseStatus("no_contest")
	require.NoError(t, err)
	assert.Equal(t, auction.NoContest, s)
	assert.Equal(t, "no_contest", s.String())

	_, err = auction.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
