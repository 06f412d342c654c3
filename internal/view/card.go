package view

import (
	"net/url"
	"time"

	"bidboard/internal/models"
)

// SummaryLength is the number of characters of a description shown on a card.
const SummaryLength = 70

// Card is the clickable preview of a job.
type Card struct {
	Href          string
	Deadline      string
	Category      models.Category
	CategoryClass string
	Title         string
	Summary       string
	MinPrice      models.Price
	MaxPrice      models.Price
	BidCount      int
}

// NewCard renders job into a card. A nil job gives an empty card.
func NewCard(job *models.Job) Card {
	if job == nil {
		job = &models.Job{}
	}

	return Card{
		Href:          "/job/" + url.PathEscape(job.Id),
		Deadline:      FormatDate(job.Deadline),
		Category:      job.Category,
		CategoryClass: CategoryClass(job.Category),
		Title:         job.Title,
		Summary:       Truncate(job.Description, SummaryLength),
		MinPrice:      job.MinPrice,
		MaxPrice:      job.MaxPrice,
		BidCount:      job.BidCount,
	}
}

func NewCards(jobs []models.Job) []Card {
	cards := make([]Card, 0, len(jobs))
	for i := range jobs {
		cards = append(cards, NewCard(&jobs[i]))
	}
	return cards
}

// Truncate cuts s to n characters followed by "..." when it is longer.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// CategoryClass returns the color treatment of a category, or "" for a
// category outside the known set.
func CategoryClass(c models.Category) string {
	switch c {
	case models.CategoryWebDevelopment:
		return "text-blue-500 bg-blue-100/60"
	case models.CategoryGraphicsDesign:
		return "text-green-500 bg-green-100/60"
	case models.CategoryDigitalMarketing:
		return "text-red-500 bg-red-100/60"
	default:
		return ""
	}
}

// FormatDate renders t as MM/DD/YYYY, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02/2006")
}

// DateInput renders t as the value of a date input.
func DateInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
