package database

import (
	"context"
	"database/sql"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type PhotoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

func (r *PhotoRepository) Create(ctx context.Context, p *entity.Photo) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO photos (id, title, url, category, sort_order, visible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Title, p.URL, p.Category, p.SortOrder, p.Visible, p.CreatedAt)
	return err
}

func (r *PhotoRepository) FindAll(ctx context.Context) ([]entity.Photo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, url, category, sort_order, visible, created_at
		FROM photos
		ORDER BY sort_order, created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []entity.Photo{}
	for rows.Next() {
		var p entity.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.URL, &p.Category, &p.SortOrder, &p.Visible, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) Update(ctx context.Context, p *entity.Photo) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE photos
		SET title = $2, url = $3, category = $4, sort_order = $5, visible = $6
		WHERE id = $1
	`, p.ID, p.Title, p.URL, p.Category, p.SortOrder, p.Visible)
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

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
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
