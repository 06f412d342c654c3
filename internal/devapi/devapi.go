// Package devapi serves the marketplace API the frontend consumes, backed by
// PostgreSQL, for running the frontend locally.
package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bidboard/internal/models"

	"github.com/rs/zerolog/log"
)

type Repository interface {
	AddJob(ctx context.Context, job models.JobPayload) (string, error)
	GetJob(ctx context.Context, id string) (models.Job, bool, error)
	ListJobs(ctx context.Context, category models.Category) ([]models.Job, error)
	ReplaceJob(ctx context.Context, id string, job models.JobPayload) (matched, modified int64, err error)
	AddBid(ctx context.Context, bid models.Bid) (string, error)
}

type Controller struct {
	repo Repository
}

func NewController(repo Repository) *Controller {
	return &Controller{repo: repo}
}

type InsertResponse struct {
	InsertedId string `json:"insertedId"`
}

type UpdateResponse struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// POST /add-jobs
func (c *Controller) AddJob(w http.ResponseWriter, r *http.Request) {
	job, ok := c.decodeJob(w, r)
	if !ok {
		return
	}

	id, err := c.repo.AddJob(r.Context(), job)
	if err != nil {
		c.repoErrorResponse(w, err)
		return
	}

	c.marshalResponse(w, InsertResponse{InsertedId: id})
}

// GET /add-jobs
func (c *Controller) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := c.repo.ListJobs(r.Context(), models.Category(r.URL.Query().Get("category")))
	if err != nil {
		c.repoErrorResponse(w, err)
		return
	}

	c.marshalResponse(w, jobs)
}

// GET /add-jobs/{id}
// Unknown ids answer null.
func (c *Controller) GetJob(w http.ResponseWriter, r *http.Request) {
	job, ok, err := c.repo.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		c.repoErrorResponse(w, err)
		return
	}
	if !ok {
		c.marshalResponse(w, nil)
		return
	}

	c.marshalResponse(w, job)
}

// PUT /add-jobs/{id}
// An identical replacement matches the job but modifies nothing.
func (c *Controller) ReplaceJob(w http.ResponseWriter, r *http.Request) {
	job, ok := c.decodeJob(w, r)
	if !ok {
		return
	}

	matched, modified, err := c.repo.ReplaceJob(r.Context(), r.PathValue("id"), job)
	if err != nil {
		c.repoErrorResponse(w, err)
		return
	}

	c.marshalResponse(w, UpdateResponse{MatchedCount: matched, ModifiedCount: modified})
}

// POST /add-bid
func (c *Controller) AddBid(w http.ResponseWriter, r *http.Request) {
	data, err := c.readBody(r.Body)
	if err != nil {
		c.errorResponse(w, http.StatusInternalServerError, "could not read request body")
		return
	}

	var bid models.Bid
	if err := json.Unmarshal(data, &bid); err != nil {
		c.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if bid.JobId == "" || bid.Email == "" {
		c.errorResponse(w, http.StatusBadRequest, "fields 'job_id' and 'emailAddress' are required")
		return
	}

	id, err := c.repo.AddBid(r.Context(), bid)
	if err != nil {
		c.repoErrorResponse(w, err)
		return
	}

	c.marshalResponse(w, InsertResponse{InsertedId: id})
}

// Service

type ErrorResponse struct {
	Reason string `json:"reason"`
}

func (c *Controller) decodeJob(w http.ResponseWriter, r *http.Request) (models.JobPayload, bool) {
	var job models.JobPayload

	data, err := c.readBody(r.Body)
	if err != nil {
		c.errorResponse(w, http.StatusInternalServerError, "could not read request body")
		return job, false
	}

	if err := json.Unmarshal(data, &job); err != nil {
		c.errorResponse(w, http.StatusBadRequest, err.Error())
		return job, false
	}
	if job.Title == "" {
		c.errorResponse(w, http.StatusBadRequest, "field 'job_title' is required")
		return job, false
	}
	if job.Deadline.IsZero() {
		c.errorResponse(w, http.StatusBadRequest, "field 'deadline' is required")
		return job, false
	}

	return job, true
}

func (c *Controller) errorResponse(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	data, err := json.Marshal(ErrorResponse{Reason: text})
	if err != nil {
		log.Error().Err(err).Msg("devapi.Controller.errorResponse")
		return
	}

	_, err = w.Write(data)
	if err != nil {
		log.Error().Err(err).Msg("devapi.Controller.errorResponse")
		return
	}
}

func (c *Controller) repoErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNoJob):
		c.errorResponse(w, http.StatusNotFound, "requested job does not exist")
	default:
		log.Error().Err(err).Msg("devapi")
		c.errorResponse(w, http.StatusInternalServerError, "internal server error: "+err.Error())
	}
}

func (c *Controller) marshalResponse(w http.ResponseWriter, data any) {
	d, err := json.Marshal(data)
	if err != nil {
		c.errorResponse(w, http.StatusInternalServerError, "could not marshal response data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(d)
	if err != nil {
		log.Error().Err(err).Msg("devapi.Controller.marshalResponse")
	}
}

func (c *Controller) readBody(src io.ReadCloser) ([]byte, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	src.Close()
	return data, nil
}
