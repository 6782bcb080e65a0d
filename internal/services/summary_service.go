package services

import (
	"context"
	"time"

	"minhasfinancas/internal/models"
	"minhasfinancas/internal/watch"
)

// summaryService produces the dashboard aggregates.
type summaryService struct {
	accountService AccountServicer
	eventService   EventServicer
	hub            *watch.Hub
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(accountService AccountServicer, eventService EventServicer, hub *watch.Hub) SummaryServicer {
	return &summaryService{
		accountService: accountService,
		eventService:   eventService,
		hub:            hub,
	}
}

// MonthRange returns the closed interval covering one calendar month in the
// given location: the first instant of day 1 through the last represented
// instant before the next month.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// TotalBalance returns the sum of cached balances of active accounts
// included in the total.
func (s *summaryService) TotalBalance() (int64, error) {
	return s.accountService.TotalBalance()
}

// MonthSummary aggregates effective income and expense for one calendar
// month along with the current total balance.
func (s *summaryService) MonthSummary(year int, month time.Month, loc *time.Location) (*MonthSummary, error) {
	start, end := MonthRange(year, month, loc)

	income, err := s.eventService.SumPeriod(models.EventKindReceita, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := s.eventService.SumPeriod(models.EventKindDespesa, start, end)
	if err != nil {
		return nil, err
	}
	total, err := s.accountService.TotalBalance()
	if err != nil {
		return nil, err
	}

	return &MonthSummary{
		Year:         year,
		Month:        month,
		Income:       income,
		Expense:      expense,
		Net:          income - expense,
		TotalBalance: total,
	}, nil
}

// WatchTotalBalance streams the total balance, re-emitting whenever an
// account changes. The stream ends when ctx is cancelled.
func (s *summaryService) WatchTotalBalance(ctx context.Context) <-chan int64 {
	return watch.Subscribe(ctx, s.hub, []string{watch.TableAccounts}, s.accountService.TotalBalance)
}

// WatchMonthSummary streams the month summary, re-emitting whenever an
// account or event changes. The stream ends when ctx is cancelled.
func (s *summaryService) WatchMonthSummary(ctx context.Context, year int, month time.Month, loc *time.Location) <-chan MonthSummary {
	tables := []string{watch.TableAccounts, watch.TableEvents}
	return watch.Subscribe(ctx, s.hub, tables, func() (MonthSummary, error) {
		summary, err := s.MonthSummary(year, month, loc)
		if err != nil {
			return MonthSummary{}, err
		}
		return *summary, nil
	})
}
