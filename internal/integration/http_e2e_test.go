//go:build integration || !unit

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	httpserver "propcomfy/internal/adapters/http_server"
	kafkaad "propcomfy/internal/adapters/kafka"
	"propcomfy/internal/adapters/observability"
	redisad "propcomfy/internal/adapters/redis"
	"propcomfy/internal/app"
	"propcomfy/internal/catalog"
	"propcomfy/internal/domain"
)

// newServer wires the full router over miniredis-backed cache and local storage.
func newServer(t *testing.T) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	cache := redisad.NewFromClient(rc)
	store := redisad.NewLocalStore(rc)
	q := app.NewQueryService(catalog.Builtin(), cache, time.Minute)

	srv := httpserver.New()
	srv.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	srv.MountHandlers(&httpserver.Handlers{
		Q:       q,
		S:       app.NewSessionService(store),
		B:       app.NewBookingService(q, store, kafkaad.Nop{}),
		PayRate: 50,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts, mr
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func call(t *testing.T, c *http.Client, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestE2E_BookingFunnel(t *testing.T) {
	ts, mr := newServer(t)
	c := newClient(t)

	// first contact issues the client cookie
	var sess struct {
		User *domain.User `json:"user"`
	}
	if code := call(t, c, http.MethodGet, ts.URL+"/v1/session", "", &sess); code != 200 || sess.User != nil {
		t.Fatalf("session = %d %+v", code, sess.User)
	}

	if code := call(t, c, http.MethodPost, ts.URL+"/v1/bookings/quote",
		`{"city":"Victoria Island","title":"Sea View 2BR Apartment","nights":3}`, nil); code != http.StatusUnauthorized {
		t.Fatalf("quote before sign-in = %d", code)
	}

	var signed app.SignInResult
	if code := call(t, c, http.MethodPost, ts.URL+"/v1/session",
		`{"mode":"create","name":"Ada","email":"ada@example.com","phone":"0803","redirect":"/explore"}`, &signed); code != 200 {
		t.Fatalf("sign in = %d", code)
	}
	if signed.Redirect != "/explore" || signed.User.Name != "Ada" {
		t.Fatalf("unexpected sign-in result: %+v", signed)
	}

	var q domain.Quote
	if code := call(t, c, http.MethodPost, ts.URL+"/v1/bookings/quote",
		`{"city":"Victoria Island","title":"Sea View 2BR Apartment","nights":3}`, &q); code != 200 {
		t.Fatalf("quote = %d", code)
	}
	if q.Total != 435000 || q.Type != "Apartment Booking — Sea View 2BR Apartment" {
		t.Fatalf("unexpected quote: %+v", q)
	}

	var va domain.VirtualAccount
	if code := call(t, c, http.MethodGet, ts.URL+"/v1/virtual-account", "", &va); code != 200 {
		t.Fatalf("virtual account = %d", code)
	}
	if va.Bank != app.DemoBank || len(va.Number) != 11 || !strings.HasPrefix(va.Number, "10") {
		t.Fatalf("unexpected virtual account: %+v", va)
	}

	payBody, _ := json.Marshal(app.PaymentRequest{City: q.City, Type: q.Type, Amount: q.Total})
	var asset domain.Asset
	if code := call(t, c, http.MethodPost, ts.URL+"/v1/payments", string(payBody), &asset); code != http.StatusCreated {
		t.Fatalf("pay = %d", code)
	}
	if asset.Status != domain.AssetStatusPending || !strings.HasPrefix(asset.ID, "a") {
		t.Fatalf("unexpected asset: %+v", asset)
	}

	var assets struct {
		Items []domain.Asset `json:"items"`
	}
	if code := call(t, c, http.MethodGet, ts.URL+"/v1/assets", "", &assets); code != 200 || len(assets.Items) != 1 {
		t.Fatalf("assets = %d %+v", code, assets.Items)
	}

	if code := call(t, c, http.MethodDelete, ts.URL+"/v1/session", "", nil); code != http.StatusNoContent {
		t.Fatalf("sign out = %d", code)
	}
	sess.User = nil
	if code := call(t, c, http.MethodGet, ts.URL+"/v1/session", "", &sess); code != 200 || sess.User != nil {
		t.Fatalf("session after sign-out = %d %+v", code, sess.User)
	}

	// assets and the virtual account survive sign-out
	var again domain.VirtualAccount
	call(t, c, http.MethodGet, ts.URL+"/v1/virtual-account", "", &again)
	if again != va {
		t.Fatalf("virtual account changed: %+v vs %+v", again, va)
	}
	if len(mr.Keys()) == 0 {
		t.Fatalf("expected local storage hashes in redis")
	}
}

func TestE2E_ClientsAreIsolated(t *testing.T) {
	ts, _ := newServer(t)
	a, b := newClient(t), newClient(t)

	if code := call(t, a, http.MethodPost, ts.URL+"/v1/session", `{"email":"a@example.com"}`, nil); code != 200 {
		t.Fatalf("sign in = %d", code)
	}
	var sess struct {
		User *domain.User `json:"user"`
	}
	call(t, b, http.MethodGet, ts.URL+"/v1/session", "", &sess)
	if sess.User != nil {
		t.Fatalf("client b sees client a's session: %+v", sess.User)
	}
}

func TestE2E_MetricsExposed(t *testing.T) {
	ts, _ := newServer(t)
	c := newClient(t)
	call(t, c, http.MethodGet, ts.URL+"/v1/search?q=2+bed+in+VI", "", nil)

	resp, err := c.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
}
