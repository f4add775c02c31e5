package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"propcomfy/internal/domain"
	"propcomfy/internal/localstore"
)

const (
	ModeSignIn = "signin"
	ModeCreate = "create"
	ModeOAuth  = "oauth"
)

type SignInRequest struct {
	Mode     string `json:"mode"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Provider string `json:"provider"` // google|apple, oauth mode only
	Redirect string `json:"redirect"`
}

type SignInResult struct {
	User     domain.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// AuthCopy is the headline shown on the sign-in page for a marketing scenario.
type AuthCopy struct {
	Scenario string `json:"scenario"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// SessionService is the mock sign-in flow. Nothing is verified.
type SessionService struct {
	store domain.LocalStore
}

func NewSessionService(store domain.LocalStore) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) SignIn(ctx context.Context, client string, req SignInRequest) (SignInResult, error) {
	u, err := userFor(req)
	if err != nil {
		return SignInResult{}, err
	}
	if err := localstore.For(s.store, client).Save(ctx, domain.KeyUser, u); err != nil {
		return SignInResult{}, fmt.Errorf("store session: %w", err)
	}
	log.Info().Str("client", client).Str("mode", modeOf(req)).Msg("signed in")
	return SignInResult{User: u, Redirect: SanitizeRedirect(req.Redirect)}, nil
}

func (s *SessionService) SignOut(ctx context.Context, client string) error {
	return localstore.For(s.store, client).Remove(ctx, domain.KeyUser)
}

// Current returns the stored user, or nil when signed out or unreadable.
func (s *SessionService) Current(ctx context.Context, client string) *domain.User {
	var u domain.User
	if !localstore.For(s.store, client).Load(ctx, domain.KeyUser, &u) {
		return nil
	}
	return &u
}

func modeOf(req SignInRequest) string {
	if m := strings.ToLower(strings.TrimSpace(req.Mode)); m != "" {
		return m
	}
	return ModeSignIn
}

func userFor(req SignInRequest) (domain.User, error) {
	email := strings.TrimSpace(req.Email)
	phone := optional(req.Phone)

	switch modeOf(req) {
	case ModeSignIn:
		if email == "" {
			return domain.User{}, fmt.Errorf("email is required: %w", domain.ErrInvalidInput)
		}
		name, _, _ := strings.Cut(email, "@")
		if name == "" {
			name = "Guest"
		}
		return domain.User{Name: name, Email: email, Phone: phone}, nil

	case ModeCreate:
		if email == "" || phone == nil {
			return domain.User{}, fmt.Errorf("email and phone are required: %w", domain.ErrInvalidInput)
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = "Guest"
		}
		return domain.User{Name: name, Email: email, Phone: phone}, nil

	case ModeOAuth:
		switch strings.ToLower(req.Provider) {
		case "google":
			return domain.User{Name: "Google User", Email: "user@gmail.com"}, nil
		case "apple":
			return domain.User{Name: "Apple User", Email: "user@icloud.com"}, nil
		}
		return domain.User{}, fmt.Errorf("unknown provider %q: %w", req.Provider, domain.ErrInvalidInput)
	}
	return domain.User{}, fmt.Errorf("unknown mode %q: %w", req.Mode, domain.ErrInvalidInput)
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// SanitizeRedirect keeps only same-site paths.
func SanitizeRedirect(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, `/\`) {
		return "/"
	}
	return raw
}

func CopyFor(scenario string) AuthCopy {
	sc := strings.ToLower(strings.TrimSpace(scenario))
	switch sc {
	case "hosts":
		return AuthCopy{Scenario: sc, Title: "Become a verified host", Subtitle: "List apartments with verification and seamless payouts."}
	case "investors":
		return AuthCopy{Scenario: sc, Title: "Invest in property assets", Subtitle: "Diversify with asset‑backed units and track ROI."}
	}
	return AuthCopy{Scenario: "default", Title: "Let’s get you settled", Subtitle: "Book verified apartments with flexible deposits and instant payments."}
}
