package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"minhasfinancas/internal/currency"
	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/pagination"
	"minhasfinancas/internal/services"
)

// EventHandler handles ledger event requests
type EventHandler struct {
	eventService services.EventServicer
	audit        services.AuditServicer
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService services.EventServicer, audit services.AuditServicer) *EventHandler {
	return &EventHandler{eventService: eventService, audit: audit}
}

// EventRequest represents the payload for creating or replacing an event.
// Amount is centavos and must be positive; the kind carries the sign.
type EventRequest struct {
	Description string    `json:"description" binding:"required,max=255"`
	Amount      int64     `json:"amount" binding:"required,gt=0"`
	Kind        string    `json:"kind" binding:"required,event_kind"`
	Date        time.Time `json:"date"`
	AccountID   uint      `json:"account_id" binding:"required"`
	CategoryID  *uint     `json:"category_id"`
	Note        string    `json:"note" binding:"max=1000"`
	Effective   *bool     `json:"effective"`
}

// SetEffectiveRequest toggles whether an event counts toward balances
type SetEffectiveRequest struct {
	Effective *bool `json:"effective" binding:"required"`
}

// ListEventsQuery holds the filter and pagination query parameters
type ListEventsQuery struct {
	pagination.PageRequest
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Kind       string     `form:"kind" binding:"omitempty,event_kind"`
	AccountID  *uint      `form:"account_id"`
	CategoryID *uint      `form:"category_id"`
	Effective  *bool      `form:"effective"`
}

// EventResponse represents an event in the response
type EventResponse struct {
	ID              uint      `json:"id"`
	Description     string    `json:"description"`
	Amount          int64     `json:"amount"`
	FormattedAmount string    `json:"formatted_amount"`
	Kind            string    `json:"kind"`
	Date            time.Time `json:"date"`
	AccountID       uint      `json:"account_id"`
	CategoryID      *uint     `json:"category_id,omitempty"`
	Note            string    `json:"note,omitempty"`
	Effective       bool      `json:"effective"`
}

func newEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Description:     e.Description,
		Amount:          e.Amount,
		FormattedAmount: currency.FormatSignedBRL(e.SignedAmount()),
		Kind:            string(e.Kind),
		Date:            e.Date,
		AccountID:       e.AccountID,
		CategoryID:      e.CategoryID,
		Note:            e.Note,
		Effective:       e.Effective,
	}
}

func (r *EventRequest) toInput() services.EventInput {
	effective := true
	if r.Effective != nil {
		effective = *r.Effective
	}
	return services.EventInput{
		Description: r.Description,
		Amount:      r.Amount,
		Kind:        models.EventKind(r.Kind),
		Date:        r.Date,
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		Note:        r.Note,
		Effective:   effective,
	}
}

// CreateEvent handles the creation of a new ledger event
// @Summary     Create an event
// @Description Record an income or expense. Effective events move the account balance atomically
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EventRequest true "Event details"
// @Success     201 {object} EventResponse "Event created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Router      /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.CreateEvent(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "create", "event", event.ID, map[string]any{"amount": event.Amount, "kind": event.Kind})

	c.JSON(http.StatusCreated, newEventResponse(event))
}

// ListEvents handles the filtered, paginated retrieval of events
// @Summary     List events
// @Description Get events ordered by date descending, with optional filters
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 50, max 200)"
// @Param       from query string false "Start date (YYYY-MM-DD)"
// @Param       to query string false "End date (YYYY-MM-DD)"
// @Param       kind query string false "Filter by kind (RECEITA or DESPESA)"
// @Param       account_id query int false "Filter by account"
// @Param       category_id query int false "Filter by category"
// @Param       effective query bool false "Filter by effective flag"
// @Success     200 {object} pagination.PageResponse[EventResponse] "Page of events"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var query ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.EventFilter{
		From:       query.From,
		To:         query.To,
		AccountID:  query.AccountID,
		CategoryID: query.CategoryID,
		Effective:  query.Effective,
	}
	if query.Kind != "" {
		kind := models.EventKind(query.Kind)
		filter.Kind = &kind
	}

	page, err := h.eventService.ListEvents(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]EventResponse, 0, len(page.Data))
	for i := range page.Data {
		responses = append(responses, newEventResponse(&page.Data[i]))
	}
	c.JSON(http.StatusOK, pagination.PageResponse[EventResponse]{
		Data:       responses,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// GetEvent handles the retrieval of a single event
// @Summary     Get event by ID
// @Description Get a specific event by ID
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Success     200 {object} EventResponse "Event details"
// @Failure     400 {object} ErrorResponse "Invalid event ID"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Router      /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	event, err := h.eventService.GetEventByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(event))
}

// UpdateEvent handles replacing an event's fields
// @Summary     Update event
// @Description Replace an event. Balance effects are recomputed atomically, including account moves
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Param       request body EventRequest true "New event details"
// @Success     200 {object} EventResponse "Updated event"
// @Failure     400 {object} ErrorResponse "Invalid input or event ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Event, account, or category not found"
// @Router      /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.UpdateEvent(id, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "event", id, nil)

	c.JSON(http.StatusOK, newEventResponse(event))
}

// SetEffective handles toggling an event's effective flag
// @Summary     Toggle event effectiveness
// @Description Mark an event as effective or pending, adjusting the account balance accordingly
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Param       request body SetEffectiveRequest true "New effective state"
// @Success     200 {object} EventResponse "Updated event"
// @Failure     400 {object} ErrorResponse "Invalid input or event ID"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Router      /events/{id}/effective [patch]
func (h *EventHandler) SetEffective(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetEffectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	event, err := h.eventService.SetEventEffective(id, *req.Effective)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "set_effective", "event", id, map[string]any{"effective": event.Effective})

	c.JSON(http.StatusOK, newEventResponse(event))
}

// DeleteEvent handles deleting an event
// @Summary     Delete event
// @Description Delete an event, reversing its balance effect atomically
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Event ID"
// @Success     200 {object} MessageResponse "Event deleted"
// @Failure     400 {object} ErrorResponse "Invalid event ID"
// @Failure     404 {object} ErrorResponse "Event not found"
// @Router      /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.eventService.DeleteEvent(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "delete", "event", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
