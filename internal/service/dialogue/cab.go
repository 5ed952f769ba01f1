package dialogue

import (
	"context"
	"regexp"

	"github.com/voyago/travelbot/backend/internal/model/booking"
)

// Cab domain intents. The destination and boarding point are free text
// accepted without validation.
const (
	IntentCabDestination booking.Intent = "destination"
	IntentBoardingPoint  booking.Intent = "boardingPoint"
	IntentTravelDate     booking.Intent = "date"
	IntentSelectOption   booking.Intent = "selectOption"
)

var cabDatePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

type cabDomain struct {
	rides booking.RideStore
}

// NewCabDomain describes the ground-transport booking flow:
// none → destination → boardingPoint → date → selectOption →
// confirmation → none. The ride is picked from the static catalog via
// the structured-choice side channel, never by typed text.
func NewCabDomain(rides booking.RideStore) Domain {
	d := &cabDomain{rides: rides}

	return Domain{
		Name:     "cab",
		Trigger:  "book a cab",
		Greeting: "Hello! I'm your Cab Booking Assistant. How can I help you today?",
		Help:     "I'm here to help! Type 'book a cab' to get started.",
		Fields: []Field{
			{
				Intent: IntentCabDestination,
				Key:    "destination",
				Prompt: "Where would you like to go?",
			},
			{
				Intent: IntentBoardingPoint,
				Key:    "boardingPoint",
				Prompt: "Where would you like to board?",
			},
			{
				Intent:   IntentTravelDate,
				Key:      "date",
				Prompt:   "Which date would you like to go?",
				Invalid:  "Please enter a valid date (DD-MM-YYYY).",
				Validate: cabDatePattern.MatchString,
				Ack: func(t *Turn, value string) {
					t.Sayf("Thank you! Your travel date is %s.", value)
				},
			},
		},
		SelectIntent: IntentSelectOption,
		Complete:     d.presentOptions,
		Select:       d.selectOption,
		Confirm:      d.confirm,
	}
}

// presentOptions asks the presentation layer to show the catalog; the
// pick comes back as a structured choice.
func (d *cabDomain) presentOptions(_ context.Context, t *Turn) {
	t.Say("Please choose a cab option:")
	t.To(IntentSelectOption)
}

func (d *cabDomain) selectOption(t *Turn, input booking.Input) {
	choice, ok := input.(booking.StructuredChoice)
	if !ok {
		t.Say("Please choose a cab option:")
		return
	}

	option, ok := d.rides.FindByName(choice.ID)
	if !ok {
		t.Say("Please choose a cab option:")
		return
	}

	t.State().Ride = &option
	t.Sayf("You have selected the %s option.", option.Name)
	t.Sayf("Your travel date is %s.", t.Get("date"))
	t.Sayf("The price for %s is ₹%s per day.", option.Name, formatINR(option.PricePerDay))
	t.Say("Do you want to confirm this booking? (yes/no)")
	t.To(IntentConfirmation)
}

func (d *cabDomain) confirm(t *Turn, confirmed bool) {
	if !confirmed {
		t.Say("Booking canceled. You can start again.")
		return
	}

	ride := t.State().Ride
	t.Say("Your booking is confirmed!")
	t.Sayf("You have booked a %s for ₹%s per day on %s.", ride.Name, formatINR(ride.PricePerDay), t.Get("date"))
	t.Say("Please make the payment using the QR code below.")
}
