// Package mysql persists price-watch snapshots.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gamecatalog/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valPrice(p *domain.Price) (amount, label any) {
	if p == nil {
		return nil, nil
	}
	if p.IsNumeric() {
		return p.Amount.String(), nil
	}
	return nil, p.Label
}

type Repo struct{ db *sql.DB }

var _ domain.SnapshotRepository = (*Repo)(nil)

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertSnapshots(ctx context.Context, title string, offers []domain.StoreOffer, at time.Time) error {
	if len(offers) == 0 {
		return nil
	}
	values := make([]string, 0, len(offers))
	args := make([]any, 0, len(offers)*10) // 10 params per row
	for _, o := range offers {
		price, label := valPrice(&o.Price)
		var retail any
		if o.RetailPrice != nil && o.RetailPrice.IsNumeric() {
			retail = o.RetailPrice.Amount.String()
		}
		values = append(values, snapshotPlaceholders)
		args = append(args,
			title,
			o.StoreName,
			string(o.Kind),
			price,
			label,
			retail,
			valInt(o.SavingsPercent),
			valStr(o.Currency),
			valStr(o.URL),
			at,
		)
	}
	_, err := r.db.ExecContext(ctx, insertSnapshotsPrefix+strings.Join(values, ","), args...)
	if err != nil {
		return fmt.Errorf("insert %d snapshots: %w", len(offers), err)
	}
	return nil
}

func (r *Repo) LogMiss(ctx context.Context, title, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, title, reason)
	return err
}

// MissCount reports how many runs found nothing for title.
func (r *Repo) MissCount(ctx context.Context, title string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countMissSQL, title).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

func (r *Repo) ListSnapshots(ctx context.Context, title string, limit int) ([]domain.OfferSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, listSnapshotsSQL, title, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OfferSnapshot
	for rows.Next() {
		var (
			s              domain.OfferSnapshot
			kind           string
			price, retail  decimal.NullDecimal
			label          sql.NullString
			savings        sql.NullInt64
			currency, link sql.NullString
		)
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.StoreName,
			&kind,
			&price,
			&label,
			&retail,
			&savings,
			&currency,
			&link,
			&s.CapturedAt,
		); err != nil {
			return nil, err
		}

		s.Kind = domain.OfferKind(kind)
		switch {
		case label.Valid:
			s.Price = domain.Label(label.String)
		case price.Valid:
			s.Price = domain.Amount(price.Decimal)
		}
		if retail.Valid {
			rp := domain.Amount(retail.Decimal)
			s.RetailPrice = &rp
		}
		if savings.Valid {
			n := int(savings.Int64)
			s.SavingsPercent = &n
		}
		s.Currency = currency.String
		s.URL = link.String
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
