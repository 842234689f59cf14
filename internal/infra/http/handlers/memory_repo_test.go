package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/freshbins/freshbins-api/internal/entity"
)

// memoryFormRepo is an in-memory stand-in for the postgres repository so
// handler tests can run the whole capture -> contact -> open flow.
type memoryFormRepo struct {
	mu     sync.Mutex
	forms  map[string]*entity.AbandonedForm
	events map[string][]entity.ContactEvent
}

func newMemoryFormRepo() *memoryFormRepo {
	return &memoryFormRepo{
		forms:  map[string]*entity.AbandonedForm{},
		events: map[string][]entity.ContactEvent{},
	}
}

func (m *memoryFormRepo) Save(ctx context.Context, form *entity.AbandonedForm) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if form.TrackingID != "" {
		for _, existing := range m.forms {
			if existing.TrackingID == form.TrackingID {
				existing.FormData = form.FormData
				existing.PageURL = form.PageURL
				existing.AbandonedAt = time.Now()
				return existing.FormID, nil
			}
		}
	}
	copied := *form
	m.forms[form.FormID] = &copied
	return form.FormID, nil
}

func (m *memoryFormRepo) FindByID(ctx context.Context, formID string) (*entity.AbandonedForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[formID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *form
	copied.ContactHistory = append([]entity.ContactEvent{}, m.events[formID]...)
	return &copied, nil
}

func (m *memoryFormRepo) FindAll(ctx context.Context) ([]entity.AbandonedForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	forms := []entity.AbandonedForm{}
	for id, form := range m.forms {
		copied := *form
		copied.ContactHistory = append([]entity.ContactEvent{}, m.events[id]...)
		forms = append(forms, copied)
	}
	return forms, nil
}

func (m *memoryFormRepo) UpdateStatus(ctx context.Context, formID string, status entity.FormStatus, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[formID]
	if !ok {
		return entity.ErrNotFound
	}
	form.Status = status
	if notes != "" {
		form.Notes = notes
	}
	return nil
}

func (m *memoryFormRepo) AppendEvent(ctx context.Context, event entity.ContactEvent) (entity.FormStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[event.FormID]
	if !ok {
		return "", entity.ErrNotFound
	}
	m.events[event.FormID] = append(m.events[event.FormID], event)
	form.Status = entity.DeriveStatus(m.events[event.FormID])
	return form.Status, nil
}

func (m *memoryFormRepo) MarkOpened(ctx context.Context, trackingID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for formID, events := range m.events {
		for i := range events {
			if events[i].TrackingID != trackingID || events[i].EmailOpened {
				continue
			}
			now := time.Now()
			events[i].EmailOpened = true
			events[i].OpenedAt = &now
			m.forms[formID].Status = entity.DeriveStatus(events)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryFormRepo) Delete(ctx context.Context, formID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.forms[formID]; !ok {
		return entity.ErrNotFound
	}
	delete(m.forms, formID)
	delete(m.events, formID)
	return nil
}

func (m *memoryFormRepo) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.forms = map[string]*entity.AbandonedForm{}
	m.events = map[string][]entity.ContactEvent{}
	return nil
}
