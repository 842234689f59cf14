package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type ServiceAreaRepository struct {
	DB *sql.DB
}

func NewServiceAreaRepository(db *sql.DB) *ServiceAreaRepository {
	return &ServiceAreaRepository{DB: db}
}

func (r *ServiceAreaRepository) FindByOutwardCode(ctx context.Context, outward string) (*entity.ServiceArea, error) {
	var area entity.ServiceArea
	err := r.DB.QueryRowContext(ctx, `
		SELECT outward_code, area_name, active, created_at
		FROM service_areas
		WHERE outward_code = $1
	`, outward).Scan(&area.OutwardCode, &area.AreaName, &area.Active, &area.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *ServiceAreaRepository) FindAll(ctx context.Context) ([]entity.ServiceArea, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT outward_code, area_name, active, created_at
		FROM service_areas
		ORDER BY outward_code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := []entity.ServiceArea{}
	for rows.Next() {
		var a entity.ServiceArea
		if err := rows.Scan(&a.OutwardCode, &a.AreaName, &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (r *ServiceAreaRepository) Upsert(ctx context.Context, area *entity.ServiceArea) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO service_areas (outward_code, area_name, active, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (outward_code)
		DO UPDATE SET area_name = EXCLUDED.area_name, active = EXCLUDED.active
	`, area.OutwardCode, area.AreaName, area.Active)
	return err
}

func (r *ServiceAreaRepository) Delete(ctx context.Context, outward string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM service_areas WHERE outward_code = $1`, outward)
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
