package commands

import (
	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
)

func bidPayload(bid *auction.Bid) map[string]any {
	meta := bid.Metadata()
	return map[string]any{
		"bid_number":  bid.Number().String(),
		"origin":      meta.Origin(),
		"destination": meta.Destination(),
	}
}

func awardPayload(bid *auction.Bid, award *auction.Award) map[string]any {
	p := bidPayload(bid)
	p["award_id"] = award.ID().String()
	p["amount_cents"] = award.Amount().Cents()
	p["amount"] = award.Amount().Dollars()
	return p
}

func offerPayload(o *offer.Offer) map[string]any {
	p := map[string]any{
		"offer_id":     o.ID().String(),
		"load_ref":     o.LoadRef().String(),
		"status":       o.Status().String(),
		"amount_cents": o.Amount().Cents(),
		"amount":       o.Amount().Dollars(),
	}
	if c := o.CounterAmount(); c != nil {
		p["counter_amount_cents"] = c.Cents()
		p["counter_amount"] = c.Dollars()
	}
	if o.AdminNotes() != "" {
		p["admin_notes"] = o.AdminNotes()
	}
	return p
}

func withMoney(p map[string]any, key string, m kernel.Money) map[string]any {
	p[key+"_cents"] = m.Cents()
	p[key] = m.Dollars()
	return p
}
