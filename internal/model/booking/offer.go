package booking

import "time"

// Offer is a synthesized bookable flight derived from one live
// position record. Offers are ephemeral: schedule and price are
// generated fresh per search.
type Offer struct {
	ID            string    `json:"id"`
	Callsign      string    `json:"callsign"`
	OriginCountry string    `json:"origin_country"`
	Longitude     float64   `json:"longitude"`
	Latitude      float64   `json:"latitude"`
	Altitude      float64   `json:"altitude"`
	Velocity      float64   `json:"velocity"`
	TrueTrack     float64   `json:"true_track"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         int64     `json:"price"`
	Currency      string    `json:"currency"`
}
