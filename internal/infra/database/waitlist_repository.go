package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type WaitlistRepository struct {
	DB *sql.DB
}

func NewWaitlistRepository(db *sql.DB) *WaitlistRepository {
	return &WaitlistRepository{DB: db}
}

func (r *WaitlistRepository) Create(ctx context.Context, e *entity.WaitlistEntry) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO waitlist (id, name, email, phone, postcode, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.Name, e.Email, e.Phone, e.Postcode, e.Status, e.Notes, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *WaitlistRepository) FindAll(ctx context.Context) ([]entity.WaitlistEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, phone, postcode, status, notes, created_at, updated_at
		FROM waitlist
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []entity.WaitlistEntry{}
	for rows.Next() {
		var e entity.WaitlistEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Postcode, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *WaitlistRepository) Update(ctx context.Context, id string, status entity.WaitlistStatus, notes string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE waitlist
		SET status = $2, notes = COALESCE(NULLIF($3, ''), notes), updated_at = NOW()
		WHERE id = $1
	`, id, status, notes)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *WaitlistRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM waitlist WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *WaitlistRepository) Stats(ctx context.Context) (*entity.WaitlistStats, error) {
	var stats entity.WaitlistStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'contacted'),
		       COUNT(*) FILTER (WHERE status = 'converted')
		FROM waitlist
	`).Scan(&stats.Total, &stats.Pending, &stats.Contacted, &stats.Converted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.WaitlistStats{}, nil
		}
		return nil, err
	}
	return &stats, nil
}
