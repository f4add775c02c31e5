package localstore_test

import (
	"context"
	"testing"

	"propcomfy/internal/domain"
	"propcomfy/internal/localstore"
)

func TestBrowser_RoundTripAndIsolation(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	a := localstore.For(mem, "client-a")
	b := localstore.For(mem, "client-b")

	if err := a.Save(ctx, domain.KeyUser, domain.User{Name: "ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var u domain.User
	if !a.Load(ctx, domain.KeyUser, &u) || u.Name != "ada" {
		t.Fatalf("load: %+v", u)
	}
	var other domain.User
	if b.Load(ctx, domain.KeyUser, &other) {
		t.Fatalf("client-b sees client-a's session")
	}

	if err := a.Remove(ctx, domain.KeyUser); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if a.Load(ctx, domain.KeyUser, &u) {
		t.Fatalf("expected key to be gone")
	}
}

func TestBrowser_MalformedValueFallsBack(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	_ = mem.SetItem(ctx, "c", domain.KeyAssets, "{not json")

	assets := []domain.Asset{}
	if localstore.For(mem, "c").Load(ctx, domain.KeyAssets, &assets) {
		t.Fatalf("malformed value should not load")
	}
	if assets == nil || len(assets) != 0 {
		t.Fatalf("default should be untouched, got %+v", assets)
	}
}

func TestBrowser_MistypedValueLeavesDefault(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	b := localstore.For(mem, "c")
	_ = mem.SetItem(ctx, "c", domain.KeyAssets, `[{"id":"a1","amount":5},{"id":"a2","amount":"oops"}]`)
	_ = mem.SetItem(ctx, "c", domain.KeyUser, `{"name":"ada","email":42}`)

	assets := []domain.Asset{}
	if b.Load(ctx, domain.KeyAssets, &assets) {
		t.Fatalf("mistyped assets should not load")
	}
	if assets == nil || len(assets) != 0 {
		t.Fatalf("partial decode leaked into default: %+v", assets)
	}

	u := domain.User{Name: "keep"}
	if b.Load(ctx, domain.KeyUser, &u) {
		t.Fatalf("mistyped user should not load")
	}
	if u.Name != "keep" {
		t.Fatalf("partial decode leaked into user: %+v", u)
	}
}

func TestBrowser_NonPointerDestination(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	_ = mem.SetItem(ctx, "c", domain.KeyUser, `{"name":"ada"}`)
	if localstore.For(mem, "c").Load(ctx, domain.KeyUser, domain.User{}) {
		t.Fatalf("a non-pointer destination cannot be loaded into")
	}
}
