package controller

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"bidboard/internal/models"
	"bidboard/internal/service"
)

// Job creation and update form

func ParseJobForm(r *http.Request, now time.Time) (service.JobForm, error) {
	if err := r.ParseForm(); err != nil {
		return service.JobForm{}, err
	}

	deadline, err := parseDeadline(r.PostForm.Get("deadline"), now)
	if err != nil {
		return service.JobForm{}, err
	}

	return service.JobForm{
		Title:       strings.TrimSpace(r.PostForm.Get("job_title")),
		Email:       strings.TrimSpace(r.PostForm.Get("email")),
		Deadline:    deadline,
		Category:    models.Category(r.PostForm.Get("category")),
		MinPrice:    strings.TrimSpace(r.PostForm.Get("min_price")),
		MaxPrice:    strings.TrimSpace(r.PostForm.Get("max_price")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
	}, nil
}

// Bid form

func ParseBidForm(r *http.Request, now time.Time) (service.BidForm, error) {
	if err := r.ParseForm(); err != nil {
		return service.BidForm{}, err
	}

	deadline, err := parseDeadline(r.PostForm.Get("deadline"), now)
	if err != nil {
		return service.BidForm{}, err
	}

	return service.BidForm{
		Price:    strings.TrimSpace(r.PostForm.Get("price")),
		Email:    strings.TrimSpace(r.PostForm.Get("emailAddress")),
		Comment:  strings.TrimSpace(r.PostForm.Get("comment")),
		Deadline: deadline,
	}, nil
}

// parseDeadline reads a date input. An empty value means now; a picked day
// lasts until its final second.
func parseDeadline(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}

	day, err := time.ParseInLocation(time.DateOnly, value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", &service.FormError{Fields: []string{"deadline"}}, value)
	}
	return day.Add(24*time.Hour - time.Second), nil
}
