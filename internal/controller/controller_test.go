package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"bidboard/internal/apiclient"
	"bidboard/internal/models"
	"bidboard/internal/notify"
	"bidboard/internal/service"
	"bidboard/internal/view"
)

func postForm(values url.Values) *http.Request {
	r := httptest.NewRequest("POST", "/add-job", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseJobForm(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	form, err := ParseJobForm(postForm(url.Values{
		"job_title":   {" Logo Design "},
		"email":       {"buyer@example.com"},
		"deadline":    {"2026-11-01"},
		"category":    {"Graphics Design"},
		"min_price":   {"50"},
		"max_price":   {"200"},
		"description": {"A logo."},
	}), now)
	if err != nil {
		t.Fatal(err)
	}

	if form.Title != "Logo Design" || form.Category != models.CategoryGraphicsDesign || form.MinPrice != "50" || form.MaxPrice != "200" {
		t.Errorf("unexpected form %+v", form)
	}
	want := time.Date(2026, 11, 1, 23, 59, 59, 0, time.UTC)
	if !form.Deadline.Equal(want) {
		t.Errorf("expected deadline %s, got %s", want, form.Deadline)
	}
}

func TestParseDeadline(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	got, err := parseDeadline("", now)
	if err != nil || !got.Equal(now) {
		t.Errorf("empty deadline should default to now, got %s, %v", got, err)
	}

	_, err = parseDeadline("next week", now)
	var fe *service.FormError
	if !errors.As(err, &fe) || fe.Fields[0] != "deadline" {
		t.Errorf("expected a deadline form error, got %v", err)
	}
}

func TestDeadlineRoundTrip(t *testing.T) {
	pacific := time.FixedZone("PST", -8*60*60)
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, pacific)
	s := service.NewService(nil, service.WithClock(func() time.Time { return now }))

	stored := time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC)
	form := s.EditJobForm(models.Job{Deadline: stored})

	got, err := parseDeadline(view.DateInput(form.Deadline), s.Now())
	if err != nil {
		t.Fatal(err)
	}
	if got.Before(stored) || got.Sub(stored) >= 24*time.Hour {
		t.Errorf("resubmitted deadline %s should stay on the day of %s", got, stored.In(pacific))
	}
	if got.In(pacific).Day() != stored.In(pacific).Day() {
		t.Errorf("expected day %d, got %d", stored.In(pacific).Day(), got.In(pacific).Day())
	}
}

func TestParseBidForm(t *testing.T) {
	now := time.Now()
	form, err := ParseBidForm(postForm(url.Values{
		"price":   {"120"},
		"comment": {"I can do it"},
	}), now)
	if err != nil {
		t.Fatal(err)
	}
	if form.Price != "120" || form.Comment != "I can do it" || !form.Deadline.Equal(now) {
		t.Errorf("unexpected form %+v", form)
	}
}

func TestServiceNotice(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("service.Service.PlaceBid: %w", err) }

	cases := []struct {
		err      error
		fallback string
		want     string
	}{
		{wrap(models.ErrActionNotPermitted), "", "Action not permitted"},
		{wrap(models.ErrPriceOutOfRange), "", "Price must be between min & max price."},
		{wrap(models.ErrDeadlineCrossed), "", "Deadline crossed, bidding forbidden"},
		{wrap(&service.FormError{Fields: []string{"comment"}}), "", "please fill in: comment"},
		{wrap(&apiclient.StatusError{StatusCode: 500}), "", "Request failed with status code 500"},
		{wrap(&apiclient.StatusError{StatusCode: 500}), msgCreateFailed, msgCreateFailed},
		{wrap(errors.New("dial tcp: connection refused")), "", "dial tcp: connection refused"},
	}

	for _, c := range cases {
		n := serviceNotice(c.err, c.fallback)
		if n.Kind != notify.Error || n.Text != c.want {
			t.Errorf("%v: expected %q, got %q", c.err, c.want, n.Text)
		}
	}
}

func TestFailureStatus(t *testing.T) {
	cases := map[error]int{
		models.ErrNoJob:                         http.StatusNotFound,
		models.ErrIdentityUnresolved:            http.StatusUnauthorized,
		models.ErrActionNotPermitted:            http.StatusForbidden,
		models.ErrPriceOutOfRange:               http.StatusUnprocessableEntity,
		&apiclient.StatusError{StatusCode: 404}: http.StatusNotFound,
		errors.New("boom"):                      http.StatusBadGateway,
	}
	for err, want := range cases {
		if got := failureStatus(fmt.Errorf("x: %w", err)); got != want {
			t.Errorf("%v: expected %d, got %d", err, want, got)
		}
	}
}
