package services_test

import (
	"testing"
	"time"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/core/domain/services"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func openBid(t *testing.T) *auction.Bid {
	t.Helper()
	meta, err := auction.NewMetadata("Dallas, TX", "Denver, CO", nil, 780, nil, nil, "")
	require.NoError(t, err)
	bid, err := auction.NewBid(kernel.MustNewBidNumber("L100"), meta, now.Add(time.Hour), now)
	require.NoError(t, err)
	return bid
}

func pendingOffer(t *testing.T, carrier string) *offer.Offer {
	t.Helper()
	o, _, err := offer.NewOffer(kernel.NewUUID(), kernel.MustNewBidNumber("L100"),
		kernel.MustNewActorID(carrier), kernel.MoneyFromCents(150000), "", nil, now)
	require.NoError(t, err)
	return o
}

func acceptedAssignment(t *testing.T, carrier string) *offer.Assignment {
	t.Helper()
	a, _, err := pendingOffer(t, carrier).Accept(kernel.NewUUID(), kernel.MustNewActorID("admin-1"), nil, "", now)
	require.NoError(t, err)
	return a
}

func awardBid(t *testing.T, bid *auction.Bid, winner string) {
	t.Helper()
	_, err := bid.Award(kernel.NewUUID(), kernel.MustNewActorID(winner), kernel.MoneyFromCents(200000),
		kernel.MoneyFromCents(0), "", kernel.MustNewActorID("admin-1"), now)
	require.NoError(t, err)
}

func TestLoadHoldPolicy_EnsureCanAward(t *testing.T) {
	policy := services.NewLoadHoldPolicy()

	t.Run("no assignment", func(t *testing.T) {
		require.NoError(t, policy.EnsureCanAward(openBid(t), kernel.MustNewActorID("C2"), nil))
	})

	t.Run("assignment to the winner", func(t *testing.T) {
		require.NoError(t, policy.EnsureCanAward(openBid(t), kernel.MustNewActorID("C1"), acceptedAssignment(t, "C1")))
	})

	t.Run("assignment to another carrier", func(t *testing.T) {
		err := policy.EnsureCanAward(openBid(t), kernel.MustNewActorID("C2"), acceptedAssignment(t, "C1"))
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestLoadHoldPolicy_EnsureCanAccept(t *testing.T) {
	policy := services.NewLoadHoldPolicy()

	t.Run("load without bid", func(t *testing.T) {
		require.NoError(t, policy.EnsureCanAccept(nil, pendingOffer(t, "C1"), nil))
	})

	t.Run("open bid", func(t *testing.T) {
		require.NoError(t, policy.EnsureCanAccept(openBid(t), pendingOffer(t, "C1"), nil))
	})

	t.Run("already assigned", func(t *testing.T) {
		err := policy.EnsureCanAccept(nil, pendingOffer(t, "C1"), acceptedAssignment(t, "C3"))
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("awarded to the same carrier", func(t *testing.T) {
		bid := openBid(t)
		awardBid(t, bid, "C1")
		require.NoError(t, policy.EnsureCanAccept(bid, pendingOffer(t, "C1"), nil))
	})

	t.Run("awarded to another carrier", func(t *testing.T) {
		bid := openBid(t)
		awardBid(t, bid, "C2")
		require.ErrorIs(t, policy.EnsureCanAccept(bid, pendingOffer(t, "C1"), nil), errs.ErrConflict)
	})

	t.Run("no contest bid", func(t *testing.T) {
		bid := openBid(t)
		_, _, err := bid.MarkNoContest(kernel.MustNewActorID("admin-1"), "", now)
		require.NoError(t, err)
		require.ErrorIs(t, policy.EnsureCanAccept(bid, pendingOffer(t, "C1"), nil), errs.ErrConflict)
	})
}
