package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"telegram-menu-bot/internal/model"
)

func TestFormatCategories(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, "", FormatCategories(nil))
		assert.Equal(t, "", FormatCategories([]model.Category{}))
	})

	t.Run("names joined with newlines in input order", func(t *testing.T) {
		categories := []model.Category{
			{ID: 1, Name: "Soups"},
			{ID: 2, Name: "Drinks"},
		}
		assert.Equal(t, "Soups\nDrinks", FormatCategories(categories))
	})
}

func TestFormatTopReport(t *testing.T) {
	rows := []ReportRow{
		{Label: "Pizza", Count: 5},
		{Label: "Soup", Count: 3},
	}

	report := FormatTopReport("Top 3 most popular dishes:", rows)

	assert.Contains(t, report, "<b>Top 3 most popular dishes:</b>")
	assert.Contains(t, report, "1. Pizza - selected 5 times")
	assert.Contains(t, report, "2. Soup - selected 3 times")

	// Input order is preserved: the formatter never re-sorts.
	assert.Less(t,
		strings.Index(report, "Pizza"),
		strings.Index(report, "Soup"),
	)
}

func TestFormatTopReportEmpty(t *testing.T) {
	report := FormatTopReport("Top 3 most popular dishes:", nil)
	assert.Equal(t, "<b>Top 3 most popular dishes:</b>\n\n", report)
}

func TestFormatRecentReport(t *testing.T) {
	messages := []model.StoredMessage{
		{Text: "alice selected Pizza"},
		{Text: "bob selected Soup"},
	}

	report := FormatRecentReport("Last 10 messages from users:", messages)

	assert.Contains(t, report, "<b>Last 10 messages from users:</b>")
	assert.Contains(t, report, "1. alice selected Pizza")
	assert.Contains(t, report, "2. bob selected Soup")
}

func TestFormatDish(t *testing.T) {
	t.Run("with description", func(t *testing.T) {
		dish := &model.Dish{Name: "Borscht", Price: "12.5", Description: "Served hot"}
		card := FormatDish(dish)
		assert.Contains(t, card, "<b>Borscht</b>")
		assert.Contains(t, card, "Price: 12.5")
		assert.Contains(t, card, "<i>Served hot</i>")
	})

	t.Run("without description", func(t *testing.T) {
		dish := &model.Dish{Name: "Cola", Price: "3"}
		card := FormatDish(dish)
		assert.Contains(t, card, "<b>Cola</b>")
		assert.NotContains(t, card, "<i>")
	})
}
