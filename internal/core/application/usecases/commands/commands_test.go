package commands_test

import (
	"strings"
	"testing"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAwardBidCommand(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		winner  string
		amount  int64
		admin   string
		margin  int64
		wantErr error
	}{
		{name: "valid", number: "B1", winner: "carrier-1", amount: 100, admin: "admin-1"},
		{name: "valid with margin", number: "B1", winner: "carrier-1", amount: 100, admin: "admin-1", margin: 2500},
		{name: "empty bid number", number: " ", winner: "carrier-1", amount: 100, admin: "admin-1",
			wantErr: errs.ErrValueIsRequired},
		{name: "malformed bid number", number: "B 1", winner: "carrier-1", amount: 100, admin: "admin-1",
			wantErr: errs.ErrValueIsInvalid},
		{name: "missing winner", number: "B1", amount: 100, admin: "admin-1", wantErr: errs.ErrValueIsRequired},
		{name: "zero amount", number: "B1", winner: "carrier-1", admin: "admin-1", wantErr: errs.ErrValueIsInvalid},
		{name: "negative margin", number: "B1", winner: "carrier-1", amount: 100, admin: "admin-1", margin: -1,
			wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewAwardBidCommand(tt.number, tt.winner, tt.amount, tt.admin, "", tt.margin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, cmd.Validate(), commands.ErrAwardBidCommandIsNotConstructed)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, cmd.Validate())
			assert.Equal(t, tt.winner, cmd.WinnerID().String())
			assert.Equal(t, tt.margin, cmd.Margin().Cents())
		})
	}
}

func TestNewAwardBidCommand_CollectsAllErrors(t *testing.T) {
	_, err := commands.NewAwardBidCommand("", "", 0, "", "", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "winner_id")
	assert.Contains(t, err.Error(), "admin_id")
}

func TestNewCreateBidCommand(t *testing.T) {
	meta, err := auction.NewMetadata("Dallas, TX", "Denver, CO", nil, 780, nil, nil, "")
	require.NoError(t, err)

	cmd, err := commands.NewCreateBidCommand("B-9001", meta, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "B-9001", cmd.BidNumber().String())

	_, err = commands.NewCreateBidCommand("B-9001", meta, time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateBidCommand(strings.Repeat("9", 101), meta, time.Now())
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewAcceptOfferCommand(t *testing.T) {
	id := kernel.NewUUID().String()

	cmd, err := commands.NewAcceptOfferCommand(id, "admin-1", nil, "")
	require.NoError(t, err)
	assert.Nil(t, cmd.AcceptedPrice())

	price := int64(120000)
	cmd, err = commands.NewAcceptOfferCommand(id, "admin-1", &price, "")
	require.NoError(t, err)
	require.NotNil(t, cmd.AcceptedPrice())
	assert.Equal(t, price, cmd.AcceptedPrice().Cents())

	zero := int64(0)
	_, err = commands.NewAcceptOfferCommand(id, "admin-1", &zero, "")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAcceptOfferCommand("not-a-uuid", "admin-1", nil, "")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewAppendLifecycleEventCommand_UnknownType(t *testing.T) {
	_, err := commands.NewAppendLifecycleEventCommand("B1", "teleport", ledger.Details{}, "carrier-1", true)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewExpireOffersCommand(t *testing.T) {
	for _, size := range []int{1, 100, 1000} {
		cmd, err := commands.NewExpireOffersCommand(size)
		require.NoError(t, err)
		assert.Equal(t, size, cmd.BatchSize())
	}

	for _, size := range []int{0, -5, 1001} {
		_, err := commands.NewExpireOffersCommand(size)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}

func TestNewRejectOtherOffersCommand(t *testing.T) {
	_, err := commands.NewRejectOtherOffersCommand("L-1", "", "admin-1", "")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewRejectOtherOffersCommand("L-1", kernel.NewUUID().String(), "admin-1", "covered")
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, "L-1", cmd.LoadRef().String())
}

func TestZeroValueCommandsFailValidation(t *testing.T) {
	assert.ErrorIs(t, commands.CreateBidCommand{}.Validate(), commands.ErrCreateBidCommandIsNotConstructed)
	assert.ErrorIs(t, commands.PlaceBidCommand{}.Validate(), commands.ErrPlaceBidCommandIsNotConstructed)
	assert.ErrorIs(t, commands.MarkNoContestCommand{}.Validate(), commands.ErrMarkNoContestCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RemoveAwardCommand{}.Validate(), commands.ErrRemoveAwardCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CompleteBidCommand{}.Validate(), commands.ErrCompleteBidCommandIsNotConstructed)
	assert.ErrorIs(t, commands.AppendLifecycleEventCommand{}.Validate(),
		commands.ErrAppendLifecycleEventCommandIsNotConstructed)
	assert.ErrorIs(t, commands.SubmitOfferCommand{}.Validate(), commands.ErrSubmitOfferCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CounterOfferCommand{}.Validate(), commands.ErrCounterOfferCommandIsNotConstructed)
	assert.ErrorIs(t, commands.AcceptOfferCommand{}.Validate(), commands.ErrAcceptOfferCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RejectOfferCommand{}.Validate(), commands.ErrRejectOfferCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RejectOtherOffersCommand{}.Validate(),
		commands.ErrRejectOtherOffersCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ExpireOffersCommand{}.Validate(), commands.ErrExpireOffersCommandIsNotConstructed)
}
