package domain

// Unit is a bookable apartment inside a city rail. Bedrooms == 0 is a studio.
type Unit struct {
	Title         string   `json:"title" yaml:"title"`
	Bedrooms      int      `json:"br" yaml:"br"`
	Guests        int      `json:"guests" yaml:"guests"`
	PricePerNight int64    `json:"pricePerNight" yaml:"pricePerNight"`
	Highlights    []string `json:"highlights" yaml:"highlights"`
}

// UnitsMap groups units by city name.
type UnitsMap map[string][]Unit

// Listing is a unit tagged with the city (or alias) it was listed under.
type Listing struct {
	City string `json:"city"`
	Unit
}

type Category string

const (
	CategoryServiceApartment Category = "Service Apartment"
	CategoryRent             Category = "Rent"
	CategoryLand             Category = "Land"
)

type LawNote struct {
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
}

type PaymentPolicy struct {
	MinDepositPercent  int    `json:"minDepositPercent" yaml:"minDepositPercent"`
	InstallmentOptions string `json:"installmentOptions" yaml:"installmentOptions"`
	RefundPolicy       string `json:"refundPolicy" yaml:"refundPolicy"`
}

type Location struct {
	City           string        `json:"city" yaml:"city"`
	Neighborhoods  []string      `json:"neighborhoods" yaml:"neighborhoods"`
	Categories     []Category    `json:"categories" yaml:"categories"`
	MedianPriceNGN *int64        `json:"medianPriceNGN,omitempty" yaml:"medianPriceNGN,omitempty"`
	Highlights     []string      `json:"highlights" yaml:"highlights"`
	Laws           []LawNote     `json:"laws" yaml:"laws"`
	Payments       PaymentPolicy `json:"payments" yaml:"payments"`
	Media          []string      `json:"media,omitempty" yaml:"media,omitempty"`
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaGIF   MediaType = "gif"
)

type MediaItem struct {
	Type MediaType `json:"type" yaml:"type"`
	Src  string    `json:"src" yaml:"src"`
}

// Card is the rendered form of a listing inside a rail or a search result.
type Card struct {
	Listing
	ImageURL string `json:"imageUrl"`
}

// Rail is a horizontally scrollable row of cards for one city.
type Rail struct {
	Title    string `json:"title"`
	City     string `json:"city"`
	Chip     string `json:"chip"`
	Count    int    `json:"count"`
	MinPrice *int64 `json:"minPrice,omitempty"`
	Summary  string `json:"summary"`
	Cards    []Card `json:"cards"`
}
