package auction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"loadboard/internal/pkg/errs"
)

// Metadata describes the load behind a bid: its route, stops, distance and the
// requested pickup and delivery windows.
type Metadata struct {
	origin        string
	destination   string
	stops         []string
	distanceMiles int
	pickupAt      *time.Time
	deliveryAt    *time.Time
	tag           string
}

// NewMetadata validates load metadata. Origin and destination are required and
// delivery may not be requested before pickup.
func NewMetadata(
	origin, destination string,
	stops []string,
	distanceMiles int,
	pickupAt, deliveryAt *time.Time,
	tag string,
) (Metadata, error) {
	m := Metadata{
		origin:        strings.TrimSpace(origin),
		destination:   strings.TrimSpace(destination),
		distanceMiles: distanceMiles,
		pickupAt:      pickupAt,
		deliveryAt:    deliveryAt,
		tag:           strings.TrimSpace(tag),
	}
	for _, s := range stops {
		if s = strings.TrimSpace(s); s != "" {
			m.stops = append(m.stops, s)
		}
	}

	var errList []error
	if m.origin == "" {
		errList = append(errList, errs.NewValueIsRequiredError("origin"))
	}
	if m.destination == "" {
		errList = append(errList, errs.NewValueIsRequiredError("destination"))
	}
	if distanceMiles < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"distance_miles", fmt.Errorf("%d is negative", distanceMiles)))
	}
	if pickupAt != nil && deliveryAt != nil && deliveryAt.Before(*pickupAt) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"delivery_at", errors.New("delivery is before pickup")))
	}
	if err := errors.Join(errList...); err != nil {
		return Metadata{}, err
	}

	return m, nil
}

func (m Metadata) Origin() string      { return m.origin }
func (m Metadata) Destination() string { return m.destination }
func (m Metadata) DistanceMiles() int  { return m.distanceMiles }
func (m Metadata) PickupAt() *time.Time {
	return m.pickupAt
}
func (m Metadata) DeliveryAt() *time.Time {
	return m.deliveryAt
}
func (m Metadata) Tag() string { return m.tag }

// Stops returns a copy of the intermediate stops in route order.
func (m Metadata) Stops() []string {
	out := make([]string, len(m.stops))
	copy(out, m.stops)
	return out
}
