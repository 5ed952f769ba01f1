package offers

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/voyago/travelbot/backend/internal/model/booking"
)

const (
	// maxOffers caps how many offers one search returns.
	maxOffers = 5

	// fallbackRate substitutes the USD to INR rate when the rate
	// provider is unreachable.
	fallbackRate = 75

	currencyCode = "INR"
)

// searchRegion is the fixed bounding box every position query uses.
// Caller-supplied origin/destination are accepted but do not narrow it.
var searchRegion = BoundingBox{
	LatMin: 45.8389,
	LonMin: 5.9962,
	LatMax: 47.8229,
	LonMax: 10.5226,
}

// Service assembles priced bookable offers from live position records.
type Service struct {
	positions PositionProvider
	rates     RateProvider
	log       *zap.Logger

	now       func() time.Time
	randFloat func() float64
	randInt   func(n int) int
}

// Option customizes a Service, mainly to pin time and randomness in tests.
type Option func(*Service)

// WithClock overrides the time source used for synthetic schedules.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand overrides the randomness source used for schedules and prices.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		s.randFloat = rng.Float64
		s.randInt = rng.Intn
	}
}

// NewService wires the offer assembly pipeline.
func NewService(positions PositionProvider, rates RateProvider, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		positions: positions,
		rates:     rates,
		log:       log,
		now:       time.Now,
		randFloat: rand.Float64,
		randInt:   rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search produces up to five priced offers for the fixed region. The
// query parameters are part of the contract but do not filter the
// result. A position-provider failure fails the search; a rate-provider
// failure silently falls back to the fixed rate.
func (s *Service) Search(ctx context.Context, origin, destination, date string) ([]booking.Offer, error) {
	states, err := s.positions.States(ctx, searchRegion)
	if err != nil {
		return nil, fmt.Errorf("fetch live positions: %w", err)
	}

	rate := s.usdRate(ctx)
	now := s.now()

	offers := make([]booking.Offer, 0, maxOffers)
	for _, st := range states {
		callsign := strings.TrimSpace(st.Callsign)
		if callsign == "" {
			continue
		}

		departure := now.Add(time.Duration(s.randFloat() * float64(24*time.Hour)))
		arrival := departure.Add(time.Duration(s.randFloat() * float64(5*time.Hour)))
		priceUSD := int64(100 + s.randInt(900))
		price := decimal.NewFromInt(priceUSD).Mul(rate).Round(0).IntPart()

		offers = append(offers, booking.Offer{
			ID:            st.ID,
			Callsign:      callsign,
			OriginCountry: st.OriginCountry,
			Longitude:     st.Longitude,
			Latitude:      st.Latitude,
			Altitude:      st.Altitude,
			Velocity:      st.Velocity,
			TrueTrack:     st.TrueTrack,
			DepartureTime: departure,
			ArrivalTime:   arrival,
			Price:         price,
			Currency:      currencyCode,
		})
		if len(offers) == maxOffers {
			break
		}
	}

	s.log.Info("offers assembled",
		zap.Int("count", len(offers)),
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.String("date", date),
	)
	return offers, nil
}

// usdRate fetches the live rate, falling back to the documented
// constant so a rate outage never fails a search.
func (s *Service) usdRate(ctx context.Context) decimal.Decimal {
	rate, err := s.rates.USDRate(ctx, currencyCode)
	if err != nil {
		s.log.Warn("exchange rate fetch failed, using fallback",
			zap.Error(err),
			zap.Int("fallback", fallbackRate),
		)
		return decimal.NewFromInt(fallbackRate)
	}
	return rate
}
