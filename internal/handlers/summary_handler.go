package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"minhasfinancas/internal/currency"
	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/services"
)

// SummaryHandler handles dashboard aggregate requests
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// MonthQuery selects the calendar month to aggregate. Defaults to the
// current month in the server's location.
type MonthQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

func (q *MonthQuery) resolve() (int, time.Month) {
	now := time.Now()
	year, month := q.Year, time.Month(q.Month)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	return year, month
}

// BalanceResponse reports the total balance across accounts
type BalanceResponse struct {
	TotalBalance     int64  `json:"total_balance"`
	FormattedBalance string `json:"formatted_balance"`
}

// MonthSummaryResponse is a month summary with display strings
type MonthSummaryResponse struct {
	services.MonthSummary
	FormattedIncome  string `json:"formatted_income"`
	FormattedExpense string `json:"formatted_expense"`
	FormattedNet     string `json:"formatted_net"`
	FormattedBalance string `json:"formatted_balance"`
}

func newMonthSummaryResponse(s services.MonthSummary) MonthSummaryResponse {
	return MonthSummaryResponse{
		MonthSummary:     s,
		FormattedIncome:  currency.FormatBRL(s.Income),
		FormattedExpense: currency.FormatBRL(s.Expense),
		FormattedNet:     currency.FormatSignedBRL(s.Net),
		FormattedBalance: currency.FormatBRL(s.TotalBalance),
	}
}

// GetBalance returns the total balance
// @Summary     Get total balance
// @Description Sum of cached balances of active accounts included in the total
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BalanceResponse "Total balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/balance [get]
func (h *SummaryHandler) GetBalance(c *gin.Context) {
	total, err := h.summaryService.TotalBalance()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{
		TotalBalance:     total,
		FormattedBalance: currency.FormatBRL(total),
	})
}

// GetMonthSummary returns one calendar month's aggregates
// @Summary     Get month summary
// @Description Effective income, expense, and net for a calendar month plus the total balance
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Month 1-12 (defaults to current)"
// @Success     200 {object} MonthSummaryResponse "Month summary"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/month [get]
func (h *SummaryHandler) GetMonthSummary(c *gin.Context) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	year, month := query.resolve()
	summary, err := h.summaryService.MonthSummary(year, month, time.Local)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMonthSummaryResponse(*summary))
}

// StreamBalance streams the total balance over SSE
// @Summary     Stream total balance
// @Description Server-sent events: emits the total balance immediately and again after every account change
// @Tags        summary
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {object} BalanceResponse "Balance events"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/balance/stream [get]
func (h *SummaryHandler) StreamBalance(c *gin.Context) {
	updates := h.summaryService.WatchTotalBalance(c.Request.Context())

	c.Stream(func(w io.Writer) bool {
		total, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("balance", BalanceResponse{
			TotalBalance:     total,
			FormattedBalance: currency.FormatBRL(total),
		})
		return true
	})
}

// StreamMonthSummary streams a month summary over SSE
// @Summary     Stream month summary
// @Description Server-sent events: emits the month summary immediately and again after every account or event change
// @Tags        summary
// @Produce     text/event-stream
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Month 1-12 (defaults to current)"
// @Success     200 {object} MonthSummaryResponse "Summary events"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary/month/stream [get]
func (h *SummaryHandler) StreamMonthSummary(c *gin.Context) {
	var query MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	year, month := query.resolve()
	updates := h.summaryService.WatchMonthSummary(c.Request.Context(), year, month, time.Local)

	c.Stream(func(w io.Writer) bool {
		summary, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("summary", newMonthSummaryResponse(summary))
		return true
	})
}
