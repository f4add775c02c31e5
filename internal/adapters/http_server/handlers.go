// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"propcomfy/internal/app"
	"propcomfy/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	S *app.SessionService
	B *app.BookingService
	// PayRate caps POST /v1/payments per second; 0 disables the limit.
	PayRate int
}

type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/search", h.search)
		r.Get("/rails", h.rails)
		r.Get("/rails/{city}", h.rail)
		r.Get("/locations", h.locations)
		r.Get("/locations/{city}", h.location)
		r.Get("/media/{city}", h.media)
		r.Get("/auth/copy", h.authCopy)

		r.Post("/session", h.signIn)
		r.Get("/session", h.currentSession)
		r.Delete("/session", h.signOut)

		r.Post("/bookings/quote", h.quote)
		r.Get("/virtual-account", h.virtualAccount)
		r.With(RateLimit(h.PayRate)).Post("/payments", h.pay)
		r.Get("/assets", h.assets)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// fail maps service errors onto problem responses.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSignInRequired):
		writeProblemBody(w, problem{
			Type:     "about:blank",
			Title:    "Sign-in required",
			Status:   http.StatusUnauthorized,
			Detail:   "sign in to continue booking",
			Redirect: app.SignInPath,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers 304 when the client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return false
	}
	return true
}

func cityParam(r *http.Request) string {
	raw := chi.URLParam(r, "city")
	if c, err := url.PathUnescape(raw); err == nil {
		return c
	}
	return raw
}

// ---- catalog ----

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	res, err := h.Q.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, res)
}

func (h *Handlers) rails(w http.ResponseWriter, r *http.Request) {
	rails, err := h.Q.Rails(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, map[string]any{"rails": rails})
}

func (h *Handlers) rail(w http.ResponseWriter, r *http.Request) {
	rail, err := h.Q.Rail(r.Context(), cityParam(r), r.URL.Query().Get("chip"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, rail)
}

func (h *Handlers) locations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Q.Locations(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, map[string]any{"items": locs})
}

func (h *Handlers) location(w http.ResponseWriter, r *http.Request) {
	loc, err := h.Q.Location(r.Context(), cityParam(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, loc)
}

func (h *Handlers) media(w http.ResponseWriter, r *http.Request) {
	items, err := h.Q.Media(r.Context(), cityParam(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeCacheable(w, r, map[string]any{"items": items})
}

func (h *Handlers) authCopy(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, app.CopyFor(r.URL.Query().Get("scenario")))
}

// ---- session ----

func (h *Handlers) signIn(w http.ResponseWriter, r *http.Request) {
	var req app.SignInRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.S.SignIn(r.Context(), ClientFrom(r.Context()), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) currentSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"user": h.S.Current(r.Context(), ClientFrom(r.Context()))})
}

func (h *Handlers) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.S.SignOut(r.Context(), ClientFrom(r.Context())); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- booking ----

type quoteRequest struct {
	City   string `json:"city"`
	Title  string `json:"title"`
	Nights *int   `json:"nights"`
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decode(w, r, &req) {
		return
	}
	nights := app.DefaultNights
	if req.Nights != nil {
		nights = *req.Nights
	}
	q, err := h.B.Quote(r.Context(), ClientFrom(r.Context()), req.City, req.Title, nights)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) virtualAccount(w http.ResponseWriter, r *http.Request) {
	va, err := h.B.VirtualAccount(r.Context(), ClientFrom(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, va)
}

func (h *Handlers) pay(w http.ResponseWriter, r *http.Request) {
	var req app.PaymentRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.B.Pay(r.Context(), ClientFrom(r.Context()), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) assets(w http.ResponseWriter, r *http.Request) {
	items, err := h.B.Assets(r.Context(), ClientFrom(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
