package service

import (
	"context"
	"fmt"

	"telegram-menu-bot/internal/menu"
)

// ReportService renders the admin reports over the selection log.
type ReportService struct {
	selectionStore SelectionStore
	topLimit       int
	recentLimit    int
}

// NewReportService creates a new ReportService instance.
func NewReportService(selectionStore SelectionStore, topLimit, recentLimit int) *ReportService {
	if topLimit <= 0 {
		topLimit = 3
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &ReportService{
		selectionStore: selectionStore,
		topLimit:       topLimit,
		recentLimit:    recentLimit,
	}
}

// TopDishes renders the most-popular-dishes report. Row order comes from
// the store; the formatter never re-sorts.
func (s *ReportService) TopDishes(ctx context.Context) (string, error) {
	stats, err := s.selectionStore.TopDishes(ctx, s.topLimit)
	if err != nil {
		return "", err
	}

	rows := make([]menu.ReportRow, len(stats))
	for i, stat := range stats {
		rows[i] = menu.ReportRow{Label: stat.Name, Count: stat.Count}
	}

	title := fmt.Sprintf("Top %d most popular dishes:", s.topLimit)
	return menu.FormatTopReport(title, rows), nil
}

// TopUsers renders the most-active-users report.
func (s *ReportService) TopUsers(ctx context.Context) (string, error) {
	stats, err := s.selectionStore.TopUsers(ctx, s.topLimit)
	if err != nil {
		return "", err
	}

	rows := make([]menu.ReportRow, len(stats))
	for i, stat := range stats {
		rows[i] = menu.ReportRow{Label: stat.Username, Count: stat.Count}
	}

	title := fmt.Sprintf("Top %d most active users:", s.topLimit)
	return menu.FormatTopReport(title, rows), nil
}

// RecentMessages renders the recent-messages report, newest first.
func (s *ReportService) RecentMessages(ctx context.Context) (string, error) {
	messages, err := s.selectionStore.RecentMessages(ctx, s.recentLimit)
	if err != nil {
		return "", err
	}

	title := fmt.Sprintf("Last %d messages from users:", s.recentLimit)
	return menu.FormatRecentReport(title, messages), nil
}
