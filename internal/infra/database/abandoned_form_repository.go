package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/freshbins/freshbins-api/internal/entity"
)

type AbandonedFormRepository struct {
	DB *sql.DB
}

func NewAbandonedFormRepository(db *sql.DB) *AbandonedFormRepository {
	return &AbandonedFormRepository{DB: db}
}

// Save inserts a snapshot, or refreshes the existing row when the client
// tracking id has been seen before, so one browsing session maps to one
// record. The row's form_id is returned either way.
func (r *AbandonedFormRepository) Save(ctx context.Context, form *entity.AbandonedForm) (string, error) {
	query := `
		INSERT INTO abandoned_forms (form_id, form_data, page_url, user_agent, tracking_id, status, notes, created_at, abandoned_at)
		VALUES ($1, $2, $3, $4, $5, $6, '', $7, $8)
		ON CONFLICT (tracking_id) WHERE tracking_id IS NOT NULL
		DO UPDATE SET
			form_data = EXCLUDED.form_data,
			page_url = EXCLUDED.page_url,
			user_agent = EXCLUDED.user_agent,
			abandoned_at = NOW()
		RETURNING form_id
	`

	var formID string
	err := r.DB.QueryRowContext(ctx, query,
		form.FormID,
		form.FormData,
		form.PageURL,
		form.UserAgent,
		nullString(form.TrackingID),
		form.Status,
		form.CreatedAt,
		form.AbandonedAt,
	).Scan(&formID)
	if err != nil {
		return "", err
	}
	return formID, nil
}

func (r *AbandonedFormRepository) FindByID(ctx context.Context, formID string) (*entity.AbandonedForm, error) {
	query := `
		SELECT form_id, form_data, page_url, user_agent, COALESCE(tracking_id, ''), status, notes, created_at, abandoned_at
		FROM abandoned_forms
		WHERE form_id = $1
	`

	var form entity.AbandonedForm
	err := r.DB.QueryRowContext(ctx, query, formID).Scan(
		&form.FormID,
		&form.FormData,
		&form.PageURL,
		&form.UserAgent,
		&form.TrackingID,
		&form.Status,
		&form.Notes,
		&form.CreatedAt,
		&form.AbandonedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	events, err := r.eventsFor(ctx, r.DB, formID)
	if err != nil {
		return nil, err
	}
	form.ContactHistory = events
	return &form, nil
}

func (r *AbandonedFormRepository) FindAll(ctx context.Context) ([]entity.AbandonedForm, error) {
	query := `
		SELECT form_id, form_data, page_url, user_agent, COALESCE(tracking_id, ''), status, notes, created_at, abandoned_at
		FROM abandoned_forms
		ORDER BY abandoned_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forms := []entity.AbandonedForm{}
	index := map[string]int{}
	for rows.Next() {
		var form entity.AbandonedForm
		if err := rows.Scan(
			&form.FormID, &form.FormData, &form.PageURL, &form.UserAgent,
			&form.TrackingID, &form.Status, &form.Notes, &form.CreatedAt, &form.AbandonedAt,
		); err != nil {
			return nil, err
		}
		form.ContactHistory = []entity.ContactEvent{}
		index[form.FormID] = len(forms)
		forms = append(forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	eventRows, err := r.DB.QueryContext(ctx, `
		SELECT id, form_id, type, details, template, COALESCE(tracking_id, ''), email_opened, opened_at, occurred_at
		FROM contact_events
		ORDER BY occurred_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer eventRows.Close()

	for eventRows.Next() {
		var ev entity.ContactEvent
		if err := scanEvent(eventRows, &ev); err != nil {
			return nil, err
		}
		if i, ok := index[ev.FormID]; ok {
			forms[i].ContactHistory = append(forms[i].ContactHistory, ev)
		}
	}
	return forms, eventRows.Err()
}

func (r *AbandonedFormRepository) UpdateStatus(ctx context.Context, formID string, status entity.FormStatus, notes string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE abandoned_forms
		SET status = $2, notes = COALESCE(NULLIF($3, ''), notes)
		WHERE form_id = $1
	`, formID, status, notes)
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

// AppendEvent inserts the event and recomputes the derived status inside
// one transaction, so concurrent appends against the same form cannot lose
// each other's history.
func (r *AbandonedFormRepository) AppendEvent(ctx context.Context, event entity.ContactEvent) (entity.FormStatus, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contact_events (id, form_id, type, details, template, tracking_id, email_opened, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
	`, event.ID, event.FormID, event.Type, event.Details, event.Template, nullString(event.TrackingID), event.OccurredAt)
	if err != nil {
		return "", err
	}

	status, err := r.recomputeStatus(ctx, tx, event.FormID)
	if err != nil {
		return "", err
	}
	return status, tx.Commit()
}

// MarkOpened flips a sent email event to opened. The guarded UPDATE makes
// repeated pixel hits a no-op: only the first one returns a row and
// triggers a status recompute.
func (r *AbandonedFormRepository) MarkOpened(ctx context.Context, trackingID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var formID string
	err = tx.QueryRowContext(ctx, `
		UPDATE contact_events
		SET email_opened = TRUE, opened_at = NOW()
		WHERE tracking_id = $1 AND email_opened = FALSE
		RETURNING form_id
	`, trackingID).Scan(&formID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := r.recomputeStatus(ctx, tx, formID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *AbandonedFormRepository) Delete(ctx context.Context, formID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM abandoned_forms WHERE form_id = $1`, formID)
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

func (r *AbandonedFormRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM abandoned_forms`)
	return err
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *AbandonedFormRepository) eventsFor(ctx context.Context, q queryer, formID string) ([]entity.ContactEvent, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, form_id, type, details, template, COALESCE(tracking_id, ''), email_opened, opened_at, occurred_at
		FROM contact_events
		WHERE form_id = $1
		ORDER BY occurred_at ASC
	`, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []entity.ContactEvent{}
	for rows.Next() {
		var ev entity.ContactEvent
		if err := scanEvent(rows, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *AbandonedFormRepository) recomputeStatus(ctx context.Context, tx *sql.Tx, formID string) (entity.FormStatus, error) {
	events, err := r.eventsFor(ctx, tx, formID)
	if err != nil {
		return "", err
	}

	status := entity.DeriveStatus(events)
	if _, err := tx.ExecContext(ctx, `UPDATE abandoned_forms SET status = $2 WHERE form_id = $1`, formID, status); err != nil {
		return "", err
	}
	return status, nil
}

func scanEvent(rows *sql.Rows, ev *entity.ContactEvent) error {
	return rows.Scan(
		&ev.ID, &ev.FormID, &ev.Type, &ev.Details, &ev.Template,
		&ev.TrackingID, &ev.EmailOpened, &ev.OpenedAt, &ev.OccurredAt,
	)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
