package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bidboard/internal/apiclient"
	"bidboard/internal/identity"
	"bidboard/internal/load"
	"bidboard/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type API interface {
	AddJob(ctx context.Context, job models.JobPayload) (apiclient.InsertResult, error)
	ListJobs(ctx context.Context, category models.Category) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	UpdateJob(ctx context.Context, id string, job models.JobPayload) (apiclient.UpdateResult, error)
	AddBid(ctx context.Context, bid models.Bid) (apiclient.BidResult, error)
}

type Service struct {
	api      API
	validate *validator.Validate
	now      func() time.Time
}

type option func(*Service)

func WithClock(now func() time.Time) option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(api API, opts ...option) *Service {
	s := &Service{
		api:      api,
		validate: newValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Now() time.Time {
	return s.now()
}

//// Jobs

func (s *Service) ListJobs(ctx context.Context, category models.Category) load.Result[[]models.Job] {
	return load.Run(ctx, func(ctx context.Context) ([]models.Job, error) {
		jobs, err := s.api.ListJobs(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("service.Service.ListJobs: %w", err)
		}
		return jobs, nil
	})
}

func (s *Service) LoadJob(ctx context.Context, id string) load.Result[models.Job] {
	return load.Run(ctx, func(ctx context.Context) (models.Job, error) {
		job, err := s.api.GetJob(ctx, id)
		if err != nil {
			return models.Job{}, fmt.Errorf("service.Service.LoadJob: %w", err)
		}
		return job, nil
	})
}

// NewJobForm returns the creation form as first shown to who.
func (s *Service) NewJobForm(who identity.Identity) JobForm {
	return JobForm{
		Email:    who.Email,
		Deadline: s.now(),
		Category: models.Categories[0],
	}
}

// EditJobForm returns the update form filled from a fetched job. The
// deadline is moved to the clock's zone, the one submitted dates are read in.
func (s *Service) EditJobForm(job models.Job) JobForm {
	return JobForm{
		Title:       job.Title,
		Email:       job.Buyer.Email,
		Deadline:    job.Deadline.In(s.now().Location()),
		Category:    job.Category,
		MinPrice:    job.MinPrice.String(),
		MaxPrice:    job.MaxPrice.String(),
		Description: job.Description,
	}
}

// CreateJob posts a new job owned by who and returns the inserted id.
func (s *Service) CreateJob(ctx context.Context, who identity.Identity, form JobForm) (string, error) {
	if !who.IsResolved() {
		return "", fmt.Errorf("service.Service.CreateJob: %w", models.ErrIdentityUnresolved)
	}

	form.Email = who.Email
	payload, err := s.jobPayload(form)
	if err != nil {
		return "", fmt.Errorf("service.Service.CreateJob: %w", err)
	}
	payload.Buyer = who.Buyer()
	payload.BidCount = 0

	res, err := s.api.AddJob(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("service.Service.CreateJob: %w", err)
	}
	if res.InsertedID == "" {
		return "", fmt.Errorf("service.Service.CreateJob: %w", models.ErrNotInserted)
	}

	return res.InsertedID, nil
}

// UpdateJob replaces job id with the form contents. The job is fetched again
// so that its bid count and buyer are carried over as they are now.
func (s *Service) UpdateJob(ctx context.Context, who identity.Identity, id string, form JobForm) (models.JobPayload, error) {
	if !who.IsResolved() {
		return models.JobPayload{}, fmt.Errorf("service.Service.UpdateJob: %w", models.ErrIdentityUnresolved)
	}

	current, err := s.api.GetJob(ctx, id)
	if err != nil {
		return models.JobPayload{}, fmt.Errorf("service.Service.UpdateJob: %w", err)
	}

	form.Email = current.Buyer.Email
	payload, err := s.jobPayload(form)
	if err != nil {
		return models.JobPayload{}, fmt.Errorf("service.Service.UpdateJob: %w", err)
	}
	payload.Buyer = current.Buyer
	payload.BidCount = current.BidCount
	// A date input only carries the day; an unchanged day keeps the stored time.
	if sameDay(payload.Deadline, current.Deadline) {
		payload.Deadline = current.Deadline
	}

	if current.Buyer.Email != who.Email {
		log.Warn().
			Str("job", id).
			Str("buyer", current.Buyer.Email).
			Str("editor", who.Email).
			Msg("job updated by someone other than its buyer")
	}

	res, err := s.api.UpdateJob(ctx, id, payload)
	if err != nil {
		return payload, fmt.Errorf("service.Service.UpdateJob: %w", err)
	}
	if res.ModifiedCount <= 0 {
		return payload, fmt.Errorf("service.Service.UpdateJob: %w", models.ErrNotModified)
	}

	return payload, nil
}

func (s *Service) jobPayload(form JobForm) (models.JobPayload, error) {
	if err := s.checkForm(form); err != nil {
		return models.JobPayload{}, err
	}

	lo, hi, err := form.prices()
	if err != nil {
		return models.JobPayload{}, err
	}

	return models.JobPayload{
		Title:       form.Title,
		Category:    form.Category,
		Description: form.Description,
		MinPrice:    lo,
		MaxPrice:    hi,
		Deadline:    form.Deadline,
	}, nil
}

// sameDay reports whether b falls on a's calendar day in a's zone.
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

//// Bids

// NewBidForm returns the bid form as first shown to who.
func (s *Service) NewBidForm(who identity.Identity) BidForm {
	form := BidForm{Deadline: s.now()}
	if who.IsResolved() {
		form.Email = who.Email
	}
	return form
}

// CheckBid applies the bidding rules in order and returns the first one
// broken: the buyer cannot bid on their own job, the price must lie within
// the job's range, and the job's deadline must not have passed.
func CheckBid(job models.Job, form BidForm, now time.Time) error {
	if form.Email == job.Buyer.Email {
		return models.ErrActionNotPermitted
	}

	price, err := models.ParsePrice(form.Price)
	if err != nil || !(price >= job.MinPrice && price <= job.MaxPrice) {
		return models.ErrPriceOutOfRange
	}

	if now.After(job.Deadline) {
		return models.ErrDeadlineCrossed
	}

	return nil
}

// PlaceBid validates form against job and submits it as who.
func (s *Service) PlaceBid(ctx context.Context, who identity.Identity, job models.Job, form BidForm) (models.Bid, error) {
	if !who.IsResolved() {
		return models.Bid{}, fmt.Errorf("service.Service.PlaceBid: %w", models.ErrIdentityUnresolved)
	}
	if job.IsEmpty() {
		return models.Bid{}, fmt.Errorf("service.Service.PlaceBid: %w", models.ErrNoJob)
	}

	form.Email = who.Email
	if err := s.checkForm(form); err != nil {
		return models.Bid{}, fmt.Errorf("service.Service.PlaceBid: %w", err)
	}

	now := s.now()
	if err := CheckBid(job, form, now); err != nil {
		return models.Bid{}, fmt.Errorf("service.Service.PlaceBid: %w", err)
	}

	price, _ := models.ParsePrice(form.Price)
	bid := models.Bid{
		JobId:     job.Id,
		Email:     form.Email,
		Price:     price,
		Comment:   form.Comment,
		Deadline:  form.Deadline,
		Timestamp: now,
	}

	res, err := s.api.AddBid(ctx, bid)
	if err != nil {
		return bid, fmt.Errorf("service.Service.PlaceBid: %w", err)
	}
	if !res.Accepted {
		return bid, fmt.Errorf("service.Service.PlaceBid: %w", models.ErrBidNotAccepted)
	}

	return bid, nil
}

// IsRuleViolation reports whether err comes from local validation, before
// anything was sent.
func IsRuleViolation(err error) bool {
	return errors.Is(err, models.ErrActionNotPermitted) ||
		errors.Is(err, models.ErrPriceOutOfRange) ||
		errors.Is(err, models.ErrDeadlineCrossed) ||
		errors.Is(err, models.ErrInvalidForm) ||
		errors.Is(err, models.ErrIdentityUnresolved)
}
