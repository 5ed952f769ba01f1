package booking

// RideOption is one entry of the static ground-transport catalog.
type RideOption struct {
	Name        string `json:"name"`
	PricePerDay int64  `json:"pricePerDay"`
}

// RideStore exposes ride catalog retrieval for the dialogue engine and
// HTTP handlers.
type RideStore interface {
	List() []RideOption
	FindByName(name string) (RideOption, bool)
}

// RideCatalog implements RideStore with an in-memory slice.
type RideCatalog struct {
	items []RideOption
}

// NewRideCatalog returns a RideCatalog preloaded with the supplied options.
func NewRideCatalog(items []RideOption) *RideCatalog {
	return &RideCatalog{items: append([]RideOption(nil), items...)}
}

// List returns the catalog in presentation order.
func (c *RideCatalog) List() []RideOption {
	return append([]RideOption(nil), c.items...)
}

// FindByName looks up a ride option by its exact name.
func (c *RideCatalog) FindByName(name string) (RideOption, bool) {
	for _, item := range c.items {
		if item.Name == name {
			return item, true
		}
	}
	return RideOption{}, false
}

// SeedRides provides the fixed cab fleet with per-day prices in INR.
func SeedRides() []RideOption {
	return []RideOption{
		{Name: "Mahindra Thar Roxx", PricePerDay: 1500},
		{Name: "XUV 700", PricePerDay: 1550},
		{Name: "Scorpio N", PricePerDay: 1300},
		{Name: "Grand Vitara", PricePerDay: 1250},
		{Name: "Hyundai Creta", PricePerDay: 1200},
		{Name: "Kia Seltos", PricePerDay: 1200},
		{Name: "Honda Amaze", PricePerDay: 1200},
		{Name: "Hyundai Verna", PricePerDay: 1250},
		{Name: "Honda City", PricePerDay: 1200},
		{Name: "Toyota Etios", PricePerDay: 1100},
		{Name: "Maruti Swift Dezire", PricePerDay: 1000},
		{Name: "Tata Tiago", PricePerDay: 700},
		{Name: "Maruti Suzuki Baleno", PricePerDay: 800},
		{Name: "Wagon R", PricePerDay: 800},
		{Name: "Tata Altroz", PricePerDay: 750},
		{Name: "Toyota Glanza", PricePerDay: 750},
		{Name: "Celerio", PricePerDay: 800},
		{Name: "Alto", PricePerDay: 700},
	}
}
