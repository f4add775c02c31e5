package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"propcomfy/internal/domain"
)

// Repo is the MySQL-backed catalog, seed sink and per-client local storage.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertCity replaces a city's units, keeping their catalog order.
func (r *Repo) UpsertCity(ctx context.Context, city string, units []domain.Unit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, deleteCityUnitsSQL, city); err != nil {
		return fmt.Errorf("clear units for %s: %w", city, err)
	}
	if len(units) > 0 {
		values := make([]string, 0, len(units))
		args := make([]any, 0, len(units)*7) // 7 params per row
		for i, u := range units {
			hl := u.Highlights
			if hl == nil {
				hl = []string{}
			}
			hlJSON, _ := json.Marshal(hl)
			values = append(values, "(?,?,?,?,?,?,?)")
			args = append(args, city, i, u.Title, u.Bedrooms, u.Guests, u.PricePerNight, string(hlJSON))
		}
		q := insertUnitsPrefix + strings.Join(values, ",") + insertUnitsOnDup
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert units for %s: %w", city, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) UpsertLocation(ctx context.Context, loc domain.Location) error {
	doc, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertLocationSQL, loc.City, string(doc))
	return err
}

func (r *Repo) UpsertMedia(ctx context.Context, city string, items []domain.MediaItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, deleteCityMediaSQL, city); err != nil {
		return err
	}
	if len(items) > 0 {
		values := make([]string, 0, len(items))
		args := make([]any, 0, len(items)*4)
		for i, m := range items {
			values = append(values, "(?,?,?,?)")
			args = append(args, city, i, string(m.Type), m.Src)
		}
		if _, err := tx.ExecContext(ctx, insertMediaPrefix+strings.Join(values, ","), args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) LogMiss(ctx context.Context, city string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, city, status, reason)
	return err
}

func (r *Repo) UnitsByCity(ctx context.Context) (domain.UnitsMap, error) {
	rows, err := r.db.QueryContext(ctx, listUnitsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := domain.UnitsMap{}
	for rows.Next() {
		var (
			city   string
			u      domain.Unit
			hlJSON []byte
		)
		if err := rows.Scan(&city, &u.Title, &u.Bedrooms, &u.Guests, &u.PricePerNight, &hlJSON); err != nil {
			return nil, err
		}
		if len(hlJSON) > 0 {
			_ = json.Unmarshal(hlJSON, &u.Highlights)
		}
		out[city] = append(out[city], u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Locations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx, listLocationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var loc domain.Location
		if err := json.Unmarshal(doc, &loc); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func (r *Repo) Media(ctx context.Context, city string) ([]domain.MediaItem, error) {
	rows, err := r.db.QueryContext(ctx, listMediaSQL, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MediaItem
	for rows.Next() {
		var typ, src string
		if err := rows.Scan(&typ, &src); err != nil {
			return nil, err
		}
		out = append(out, domain.MediaItem{Type: domain.MediaType(typ), Src: src})
	}
	return out, rows.Err()
}

func (r *Repo) GetItem(ctx context.Context, client, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, getItemSQL, client, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Repo) SetItem(ctx context.Context, client, key, value string) error {
	_, err := r.db.ExecContext(ctx, setItemSQL, client, key, value)
	return err
}

func (r *Repo) RemoveItem(ctx context.Context, client, key string) error {
	_, err := r.db.ExecContext(ctx, removeItemSQL, client, key)
	return err
}
