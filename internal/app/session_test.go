package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"propcomfy/internal/app"
	"propcomfy/internal/domain"
	"propcomfy/internal/localstore"
)

func TestSignIn_Modes(t *testing.T) {
	ctx := context.Background()
	s := app.NewSessionService(localstore.NewMemory())

	res, err := s.SignIn(ctx, "c", app.SignInRequest{Email: " tola@example.com ", Redirect: "/explore"})
	require.NoError(t, err)
	require.Equal(t, "tola", res.User.Name)
	require.Nil(t, res.User.Phone)
	require.Equal(t, "/explore", res.Redirect)

	res, err = s.SignIn(ctx, "c", app.SignInRequest{Mode: "create", Email: "x@y.z", Phone: "0803"})
	require.NoError(t, err)
	require.Equal(t, "Guest", res.User.Name)
	require.Equal(t, "0803", *res.User.Phone)

	res, err = s.SignIn(ctx, "c", app.SignInRequest{Mode: "oauth", Provider: "Apple", Redirect: "https://evil.example"})
	require.NoError(t, err)
	require.Equal(t, "Apple User", res.User.Name)
	require.Equal(t, "/", res.Redirect)

	_, err = s.SignIn(ctx, "c", app.SignInRequest{Mode: "oauth", Provider: "myspace"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.SignIn(ctx, "c", app.SignInRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignOut_ClearsSessionOnly(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	s := app.NewSessionService(store)

	_, err := s.SignIn(ctx, "c", app.SignInRequest{Email: "a@b.c"})
	require.NoError(t, err)
	require.NoError(t, store.SetItem(ctx, "c", domain.KeyVirtualAccount, `{"bank":"b"}`))
	require.NotNil(t, s.Current(ctx, "c"))

	require.NoError(t, s.SignOut(ctx, "c"))
	require.Nil(t, s.Current(ctx, "c"))

	_, ok, _ := store.GetItem(ctx, "c", domain.KeyVirtualAccount)
	require.True(t, ok, "virtual account outlives the session")
}

func TestCurrent_CorruptSessionIsSignedOut(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemory()
	require.NoError(t, store.SetItem(ctx, "c", domain.KeyUser, "{{"))
	require.Nil(t, app.NewSessionService(store).Current(ctx, "c"))
}

func TestSanitizeRedirect(t *testing.T) {
	cases := map[string]string{
		"":                  "/",
		"/explore":          "/explore",
		"//evil.example":    "/",
		`/\evil.example`:    "/",
		"http://x.example/": "/",
	}
	for in, want := range cases {
		require.Equal(t, want, app.SanitizeRedirect(in), in)
	}
}

func TestCopyFor(t *testing.T) {
	require.Equal(t, "Become a verified host", app.CopyFor("HOSTS").Title)
	require.Equal(t, "Invest in property assets", app.CopyFor("investors").Title)
	require.Equal(t, "default", app.CopyFor("whatever").Scenario)
}
