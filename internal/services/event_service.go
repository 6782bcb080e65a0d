package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/pagination"
	"minhasfinancas/internal/watch"
)

// eventService is the ledger consistency engine. Every mutation runs inside
// one store transaction that writes the event row and the affected account
// balances together: either both land or neither does.
type eventService struct {
	db             *gorm.DB
	accountService AccountServicer
	hub            *watch.Hub
}

// NewEventService creates a new EventServicer.
func NewEventService(db *gorm.DB, accountService AccountServicer, hub *watch.Hub) EventServicer {
	return &eventService{
		db:             db,
		accountService: accountService,
		hub:            hub,
	}
}

// validateInput checks the caller-supplied fields shared by create and
// update. It normalizes the description and defaults a zero date to now.
func (s *eventService) validateInput(input *EventInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Kind != models.EventKindReceita && input.Kind != models.EventKindDespesa {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be RECEITA or DESPESA")
	}
	if input.AccountID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account is required")
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	if input.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if count == 0 {
			return apperrors.ErrCategoryNotFound
		}
	}
	return nil
}

// CreateEvent persists a new ledger event and, when it is effective,
// applies its signed amount to the owning account's cached balance.
func (s *eventService) CreateEvent(input EventInput) (*models.Event, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	account, err := s.accountService.GetAccountByID(input.AccountID)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Description: input.Description,
		Amount:      input.Amount,
		Kind:        input.Kind,
		Date:        input.Date,
		AccountID:   account.ID,
		CategoryID:  input.CategoryID,
		Note:        input.Note,
		Effective:   input.Effective,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return s.accountService.ApplyBalanceDelta(tx, event.AccountID, event.EffectiveDelta())
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TableEvents, watch.TableAccounts)
	return event, nil
}

// GetEventByID retrieves an event with its account and category preloaded.
func (s *eventService) GetEventByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.Preload("Account").Preload("Category").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &event, nil
}

// ListEvents retrieves a paginated, filtered list of events, newest first.
func (s *eventService) ListEvents(page pagination.PageRequest, filter EventFilter) (*pagination.PageResponse[models.Event], error) {
	page.Defaults()

	base := applyEventFilters(s.db.Model(&models.Event{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var events []models.Event
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Account").
		Preload("Category").
		Order("date DESC").
		Find(&events).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(events, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyEventFilters(q *gorm.DB, f EventFilter) *gorm.DB {
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	if f.Kind != nil {
		q = q.Where("kind = ?", *f.Kind)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Effective != nil {
		q = q.Where("effective = ?", *f.Effective)
	}
	return q
}

// UpdateEvent replaces an event's fields and reconciles the account
// balances: the old effective contribution is reversed and the new one
// applied as a single transaction, even when the event moves between
// accounts. Edits that change no financial field produce a zero delta and
// leave every balance untouched.
func (s *eventService) UpdateEvent(id uint, input EventInput) (*models.Event, error) {
	old, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	if input.AccountID != old.AccountID {
		if _, err := s.accountService.GetAccountByID(input.AccountID); err != nil {
			return nil, err
		}
	}

	updated := &models.Event{
		ID:          old.ID,
		Description: input.Description,
		Amount:      input.Amount,
		Kind:        input.Kind,
		Date:        input.Date,
		AccountID:   input.AccountID,
		CategoryID:  input.CategoryID,
		Note:        input.Note,
		Effective:   input.Effective,
		CreatedAt:   old.CreatedAt,
	}

	oldDelta := old.EffectiveDelta()
	newDelta := updated.EffectiveDelta()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Account", "Category").Save(updated).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if updated.AccountID == old.AccountID {
			return s.accountService.ApplyBalanceDelta(tx, old.AccountID, newDelta-oldDelta)
		}
		if err := s.accountService.ApplyBalanceDelta(tx, old.AccountID, -oldDelta); err != nil {
			return err
		}
		return s.accountService.ApplyBalanceDelta(tx, updated.AccountID, newDelta)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Notify(watch.TableEvents, watch.TableAccounts)
	return updated, nil
}

// DeleteEvent removes an event and reverses its effective contribution
// from the owning account's balance.
func (s *eventService) DeleteEvent(id uint) error {
	event, err := s.GetEventByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Event{}, event.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return s.accountService.ApplyBalanceDelta(tx, event.AccountID, -event.EffectiveDelta())
	})
	if err != nil {
		return err
	}

	s.hub.Notify(watch.TableEvents, watch.TableAccounts)
	return nil
}

// SetEventEffective toggles the settled flag. false to true applies the
// event's signed amount to the account balance; true to false reverses it.
// Setting the flag to its current value is a no-op.
func (s *eventService) SetEventEffective(id uint, effective bool) (*models.Event, error) {
	event, err := s.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	if event.Effective == effective {
		return event, nil
	}

	delta := event.SignedAmount()
	if !effective {
		delta = -delta
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Event{}).
			Where("id = ?", event.ID).
			Update("effective", effective).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return s.accountService.ApplyBalanceDelta(tx, event.AccountID, delta)
	})
	if err != nil {
		return nil, err
	}

	event.Effective = effective
	s.hub.Notify(watch.TableEvents, watch.TableAccounts)
	return event, nil
}

// SumPeriod returns the sum of amounts of effective events of the given
// kind dated within [start, end], both ends inclusive. Returns 0 when no
// event matches.
func (s *eventService) SumPeriod(kind models.EventKind, start, end time.Time) (int64, error) {
	var sum int64
	if err := s.db.Model(&models.Event{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("kind = ? AND effective = ? AND date BETWEEN ? AND ?", kind, true, start, end).
		Scan(&sum).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return sum, nil
}
