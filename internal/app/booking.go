package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"propcomfy/internal/adapters/observability"
	"propcomfy/internal/domain"
	"propcomfy/internal/localstore"
)

const (
	DefaultNights = 2
	Currency      = "NGN"
	DemoBank      = "PropBank (Demo)"
	// SignInPath is where unauthenticated booking attempts are sent.
	SignInPath = "/auth?redirect=/explore"
)

// Total is nights × nightly price, with nights clamped to at least one.
func Total(nights int, pricePerNight int64) (int, int64) {
	nights = max(1, nights)
	return nights, int64(nights) * pricePerNight
}

// BookingType is the asset type recorded for an apartment booking.
func BookingType(title string) string { return "Apartment Booking — " + title }

type PaymentRequest struct {
	City   string `json:"city"`
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

// BookingService is the mock booking funnel: quote, virtual account, "I've paid".
// Payments are recorded as pending assets; nothing is verified or deduplicated.
type BookingService struct {
	q     *QueryService
	store domain.LocalStore
	pub   domain.EventPublisher
	now   func() time.Time
	randN func(int64) int64
}

func NewBookingService(q *QueryService, store domain.LocalStore, pub domain.EventPublisher) *BookingService {
	return &BookingService{q: q, store: store, pub: pub, now: time.Now, randN: rand.Int64N}
}

// WithClock swaps the time and randomness sources.
func (s *BookingService) WithClock(now func() time.Time, randN func(int64) int64) *BookingService {
	s.now, s.randN = now, randN
	return s
}

func (s *BookingService) user(ctx context.Context, b localstore.Browser) (domain.User, error) {
	var u domain.User
	if !b.Load(ctx, domain.KeyUser, &u) {
		return domain.User{}, domain.ErrSignInRequired
	}
	return u, nil
}

func (s *BookingService) Quote(ctx context.Context, client, city, title string, nights int) (domain.Quote, error) {
	if _, err := s.user(ctx, localstore.For(s.store, client)); err != nil {
		return domain.Quote{}, err
	}
	u, name, err := s.q.Unit(ctx, city, title)
	if err != nil {
		return domain.Quote{}, err
	}
	n, total := Total(nights, u.PricePerNight)
	return domain.Quote{
		City:          name,
		Title:         u.Title,
		PricePerNight: u.PricePerNight,
		Nights:        n,
		Total:         total,
		Type:          BookingType(u.Title),
	}, nil
}

// VirtualAccount returns the client's cached account, generating it on first use.
func (s *BookingService) VirtualAccount(ctx context.Context, client string) (domain.VirtualAccount, error) {
	b := localstore.For(s.store, client)
	var va domain.VirtualAccount
	if b.Load(ctx, domain.KeyVirtualAccount, &va) {
		return va, nil
	}
	holder := "Customer"
	var u domain.User
	if b.Load(ctx, domain.KeyUser, &u) && u.Name != "" {
		holder = u.Name
	}
	va = domain.VirtualAccount{
		Bank:   DemoBank,
		Number: "10" + strconv.FormatInt(100000000+s.randN(899999999), 10),
		Name:   "PropComfy Custody - " + holder,
	}
	if err := b.Save(ctx, domain.KeyVirtualAccount, va); err != nil {
		return domain.VirtualAccount{}, fmt.Errorf("store virtual account: %w", err)
	}
	return va, nil
}

// Pay records a pending asset for the signed-in client.
func (s *BookingService) Pay(ctx context.Context, client string, req PaymentRequest) (domain.Asset, error) {
	b := localstore.For(s.store, client)
	u, err := s.user(ctx, b)
	if err != nil {
		return domain.Asset{}, err
	}
	city, typ := strings.TrimSpace(req.City), strings.TrimSpace(req.Type)
	if city == "" || typ == "" || req.Amount <= 0 {
		return domain.Asset{}, fmt.Errorf("city, type and a positive amount are required: %w", domain.ErrInvalidInput)
	}
	if _, err := s.VirtualAccount(ctx, client); err != nil {
		return domain.Asset{}, err
	}

	now := s.now().UTC()
	a := domain.Asset{
		ID:        "a" + strconv.FormatInt(now.UnixMilli(), 10),
		CreatedAt: now,
		Currency:  Currency,
		Status:    domain.AssetStatusPending,
		City:      city,
		Type:      typ,
		Amount:    req.Amount,
	}
	assets := []domain.Asset{}
	b.Load(ctx, domain.KeyAssets, &assets)
	assets = append(assets, a)
	if err := b.Save(ctx, domain.KeyAssets, assets); err != nil {
		return domain.Asset{}, fmt.Errorf("store assets: %w", err)
	}
	observability.ObserveAsset(city)

	if s.pub != nil {
		ev := domain.AssetRecorded{ClientID: client, Email: u.Email, Asset: a, TsUnixMs: now.UnixMilli()}
		if err := s.pub.PublishAssetRecorded(ctx, ev); err != nil {
			log.Warn().Err(err).Str("asset", a.ID).Msg("publish asset_recorded failed")
		}
	}
	log.Info().Str("client", client).Str("asset", a.ID).Int64("amount", a.Amount).Msg("payment recorded")
	return a, nil
}

// Assets lists everything the client has paid for, oldest first.
func (s *BookingService) Assets(ctx context.Context, client string) ([]domain.Asset, error) {
	assets := []domain.Asset{}
	localstore.For(s.store, client).Load(ctx, domain.KeyAssets, &assets)
	if assets == nil {
		assets = []domain.Asset{}
	}
	for i := range assets {
		if assets[i].Status == "" {
			assets[i].Status = domain.AssetStatusPending
		}
	}
	return assets, nil
}
