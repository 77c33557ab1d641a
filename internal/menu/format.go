package menu

import (
	"fmt"
	"strings"

	"telegram-menu-bot/internal/model"
)

// ReportRow is one line of a ranked report: a label and how many times it
// was selected.
type ReportRow struct {
	Label string
	Count int64
}

// FormatCategories renders category names one per line, preserving the
// order returned by the store. An empty list renders as an empty string.
func FormatCategories(categories []model.Category) string {
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = category.Name
	}
	return strings.Join(names, "\n")
}

// FormatTopReport renders a ranked report with a bold title and one
// italic numbered line per row, starting at rank 1. Rows are rendered in
// input order; sorting is the store's responsibility.
func FormatTopReport(title string, rows []ReportRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", title)

	for i, row := range rows {
		fmt.Fprintf(&b, "<i>%d. %s - selected %d times</i>\n", i+1, row.Label, row.Count)
	}

	return b.String()
}

// FormatRecentReport renders recent message texts as a numbered list
// under a bold title.
func FormatRecentReport(title string, messages []model.StoredMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", title)

	for i, msg := range messages {
		fmt.Fprintf(&b, "<i>%d. %s</i>\n", i+1, msg.Text)
	}

	return b.String()
}

// FormatDish renders a dish card shown when a dish button is pressed.
func FormatDish(dish *model.Dish) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", dish.Name)
	fmt.Fprintf(&b, "Price: %s\n", dish.Price)
	if dish.Description != "" {
		fmt.Fprintf(&b, "\n<i>%s</i>\n", dish.Description)
	}
	return b.String()
}
