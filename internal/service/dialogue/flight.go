package dialogue

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/model/booking"
)

// Flight domain intents.
const (
	IntentOrigin      booking.Intent = "origin"
	IntentDestination booking.Intent = "destination"
	IntentDate        booking.Intent = "date"
	IntentSelectOffer booking.Intent = "selectOffer"
)

// flightDatePattern is a format-only check: a well-shaped impossible
// date like 2024-13-40 passes on purpose.
var flightDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// OfferSource provides bookable offers for a collected flight query.
type OfferSource interface {
	Search(ctx context.Context, origin, destination, date string) ([]booking.Offer, error)
}

type flightDomain struct {
	offers  OfferSource
	timeout time.Duration
	log     *zap.Logger
}

// NewFlightDomain describes the flight booking flow:
// none → origin → destination → date → selectOffer → confirmation → none.
// The offer search runs under timeout; an expired search takes the same
// path as an upstream failure.
func NewFlightDomain(offers OfferSource, timeout time.Duration, log *zap.Logger) Domain {
	d := &flightDomain{offers: offers, timeout: timeout, log: log}

	return Domain{
		Name:     "flight",
		Trigger:  "book a flight",
		Greeting: "Hello! I'm your Flight Booking Assistant. How can I help you today?",
		Help:     "I'm here to help you book a flight. Type 'book a flight' to get started.",
		Fields: []Field{
			{
				Intent:    IntentOrigin,
				Key:       "origin",
				Prompt:    "Where would you like to fly from? (Please use the 3-letter airport code)",
				Normalize: strings.ToUpper,
			},
			{
				Intent:    IntentDestination,
				Key:       "destination",
				Prompt:    "Great! Where would you like to fly to? (Please use the 3-letter airport code)",
				Normalize: strings.ToUpper,
			},
			{
				Intent:   IntentDate,
				Key:      "date",
				Prompt:   "On which date would you like to travel? (Please use YYYY-MM-DD format)",
				Invalid:  "Please enter a valid date in YYYY-MM-DD format.",
				Validate: flightDatePattern.MatchString,
				Ack: func(t *Turn, value string) {
					t.Sayf("Thank you! I'll search for flights from %s to %s on %s.",
						t.Get("origin"), t.Get("destination"), value)
				},
			},
		},
		SelectIntent: IntentSelectOffer,
		Complete:     d.search,
		Select:       d.selectOffer,
		Confirm:      d.confirm,
	}
}

// search fetches offers and enumerates them, or apologizes and drops
// back to the neutral state when the upstream is unavailable.
func (d *flightDomain) search(ctx context.Context, t *Turn) {
	searchCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	found, err := d.offers.Search(searchCtx, t.Get("origin"), t.Get("destination"), t.Get("date"))
	if err != nil {
		d.log.Warn("offer search failed", zap.Error(err))
		t.Say("I'm sorry, I couldn't fetch flight information at the moment. Please try again later.")
		t.To(booking.IntentNone)
		return
	}

	t.State().Offers = found
	t.Say("Here are the available flights:")
	for i, offer := range found {
		t.Sayf("%d. %s - Departure: %s, Arrival: %s, Price: ₹%s",
			i+1, offer.Callsign, formatTime(offer.DepartureTime), formatTime(offer.ArrivalTime), formatINR(offer.Price))
	}
	t.Say("Please select a flight by typing its number.")
	t.To(IntentSelectOffer)
}

// selectOffer interprets the utterance as a 1-based index into the
// enumerated list.
func (d *flightDomain) selectOffer(t *Turn, input booking.Input) {
	text, ok := input.(booking.FreeText)
	if !ok {
		t.Say("Please select a valid flight number from the list.")
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(string(text)))
	if err != nil || index < 1 || index > len(t.State().Offers) {
		t.Say("Please select a valid flight number from the list.")
		return
	}

	offer := t.State().Offers[index-1]
	t.State().Selected = &offer
	t.Sayf("You've selected flight %s. The total price is ₹%s. Would you like to confirm this booking? (yes/no)",
		offer.Callsign, formatINR(offer.Price))
	t.To(IntentConfirmation)
}

func (d *flightDomain) confirm(t *Turn, confirmed bool) {
	if !confirmed {
		t.Say("No problem. Would you like to search for different flights?")
		return
	}

	offer := t.State().Selected
	t.Say("Great! Your flight has been booked. Here's your confirmation:")
	t.Sayf("Flight: %s", offer.Callsign)
	t.Sayf("Origin Country: %s", offer.OriginCountry)
	t.Sayf("Departure: %s", formatTime(offer.DepartureTime))
	t.Sayf("Arrival: %s", formatTime(offer.ArrivalTime))
	t.Sayf("Price: ₹%s", formatINR(offer.Price))
	t.Say("Thank you for booking with us!")
}
