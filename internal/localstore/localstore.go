// Package localstore emulates browser localStorage on the server: string values
// addressed by (client id, key), with a JSON layer that treats unreadable data as absent.
package localstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"

	"propcomfy/internal/domain"
)

// Memory is a process-local LocalStore. Values do not survive restarts.
type Memory struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewMemory() *Memory { return &Memory{items: map[string]map[string]string{}} }

func (m *Memory) GetItem(ctx context.Context, client, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[client][key]
	return v, ok, nil
}

func (m *Memory) SetItem(ctx context.Context, client, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[client] == nil {
		m.items[client] = map[string]string{}
	}
	m.items[client][key] = value
	return nil
}

func (m *Memory) RemoveItem(ctx context.Context, client, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items[client], key)
	return nil
}

// Browser is one client's view of the store.
type Browser struct {
	store  domain.LocalStore
	client string
}

func For(store domain.LocalStore, client string) Browser {
	return Browser{store: store, client: client}
}

func (b Browser) Client() string { return b.client }

// Load decodes key into dst and reports whether it did. Missing keys, backend
// errors and values that do not decode into dst's type leave dst untouched and
// return false. dst must be a non-nil pointer.
func (b Browser) Load(ctx context.Context, key string, dst any) bool {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	raw, ok, err := b.store.GetItem(ctx, b.client, key)
	if err != nil {
		log.Debug().Err(err).Str("client", b.client).Str("key", key).Msg("local storage read failed")
		return false
	}
	if !ok || raw == "" {
		return false
	}
	// json.Unmarshal writes partial results before a type error, so decode aside.
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(raw), fresh.Interface()); err != nil {
		log.Debug().Err(err).Str("client", b.client).Str("key", key).Msg("local storage value ignored")
		return false
	}
	rv.Elem().Set(fresh.Elem())
	return true
}

func (b Browser) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.store.SetItem(ctx, b.client, key, string(raw))
}

func (b Browser) Remove(ctx context.Context, key string) error {
	return b.store.RemoveItem(ctx, b.client, key)
}
