package database

import (
	"context"
	"database/sql"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (id, name, email, phone, address, postcode, bins, collection_day, payment_method, price_pence, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, b.ID, b.Name, b.Email, b.Phone, b.Address, b.Postcode, b.Bins,
		b.CollectionDay, b.PaymentMethod, b.PricePence, b.Status, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, phone, address, postcode, bins, collection_day, payment_method, price_pence, status, created_at, updated_at
		FROM bookings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []entity.Booking{}
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Address, &b.Postcode, &b.Bins,
			&b.CollectionDay, &b.PaymentMethod, &b.PricePence, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
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

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
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
