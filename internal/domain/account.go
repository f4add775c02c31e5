package domain

import "time"

// Local storage keys, kept identical to the ones the web client used.
const (
	KeyUser           = "pc_user"
	KeyVirtualAccount = "pc_va"
	KeyAssets         = "pc_assets"
)

const AssetStatusPending = "pending"

// User is the mock identity held in local storage after sign-in.
type User struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// VirtualAccount is the demo bank-transfer target shown on the payment step.
type VirtualAccount struct {
	Bank   string `json:"bank"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Asset is a locally recorded booking or deposit. Assets are append-only.
type Asset struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	City      string    `json:"city"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
}

// Quote is the priced result of the booking step.
type Quote struct {
	City          string `json:"city"`
	Title         string `json:"title"`
	PricePerNight int64  `json:"pricePerNight"`
	Nights        int    `json:"nights"`
	Total         int64  `json:"total"`
	Type          string `json:"type"`
}

// AssetRecorded is published whenever a mock payment appends an asset.
type AssetRecorded struct {
	ClientID string `json:"client_id"`
	Email    string `json:"email,omitempty"`
	Asset    Asset  `json:"asset"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}
