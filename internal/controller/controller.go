package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"bidboard/internal/apiclient"
	"bidboard/internal/identity"
	"bidboard/internal/load"
	"bidboard/internal/models"
	"bidboard/internal/notify"
	"bidboard/internal/service"
	"bidboard/internal/view"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Service interface {
	ListJobs(ctx context.Context, category models.Category) load.Result[[]models.Job]
	LoadJob(ctx context.Context, id string) load.Result[models.Job]

	NewJobForm(who identity.Identity) service.JobForm
	EditJobForm(job models.Job) service.JobForm
	CreateJob(ctx context.Context, who identity.Identity, form service.JobForm) (string, error)
	UpdateJob(ctx context.Context, who identity.Identity, id string, form service.JobForm) (models.JobPayload, error)

	NewBidForm(who identity.Identity) service.BidForm
	PlaceBid(ctx context.Context, who identity.Identity, job models.Job, form service.BidForm) (models.Bid, error)

	Now() time.Time
}

type Renderer interface {
	Render(w io.Writer, page string, data view.Page) error
}

const (
	MyPostedJobsPath = "/my-posted-jobs"
	BidRequestsPath  = "/bid-requests"

	msgCreateFailed = "Something Went Wrong!!"
)

type Controller struct {
	service Service
	views   Renderer
	flash   *notify.Flash
}

func NewController(service Service, views Renderer, flash *notify.Flash) *Controller {
	return &Controller{service: service, views: views, flash: flash}
}

// GET /api/ping
func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

//// Jobs

// GET /
func (c *Controller) Home(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	if !models.ValidCategory(category) {
		category = ""
	}

	jobs := c.service.ListJobs(r.Context(), category)
	notice := c.flash.Pop(w, r)
	if jobs.IsFailed() {
		c.logFailure(r, jobs.Err, "", "could not list jobs")
		notice = notify.Toast(notify.Error, userMessage(jobs.Err))
	}

	c.render(w, r, http.StatusOK, "home", "Home", notice, view.NewHome(category, jobs))
}

// GET /add-job
func (c *Controller) AddJobForm(w http.ResponseWriter, r *http.Request) {
	who := identity.FromContext(r.Context())
	c.render(w, r, http.StatusOK, "add_job", "Add Job", c.flash.Pop(w, r), view.JobForm{
		Action: "/add-job",
		Form:   c.service.NewJobForm(who),
	})
}

// POST /add-job
func (c *Controller) AddJob(w http.ResponseWriter, r *http.Request) {
	who := identity.FromContext(r.Context())

	form, err := ParseJobForm(r, c.service.Now())
	if err == nil {
		_, err = c.service.CreateJob(r.Context(), who, form)
	}
	if err != nil {
		c.logFailure(r, err, "", "job creation failed")
		notice := serviceNotice(err, msgCreateFailed)
		if form.Email == "" {
			form.Email = who.Email
		}
		c.render(w, r, failureStatus(err), "add_job", "Add Job", notice, view.JobForm{Action: "/add-job", Form: form})
		return
	}

	c.flash.Redirect(w, r, MyPostedJobsPath, notify.Toast(notify.Success, "Data Added Successfully"))
}

// GET /job/{id}
func (c *Controller) JobDetails(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	who := identity.FromContext(r.Context())

	job := c.service.LoadJob(r.Context(), id)
	notice := c.flash.Pop(w, r)
	status := http.StatusOK
	if job.IsFailed() {
		c.logFailure(r, job.Err, id, "could not load job")
		notice = serviceNotice(job.Err, "")
		status = failureStatus(job.Err)
	}

	c.render(w, r, status, "job_details", "Job Details", notice, view.JobDetails{
		ID:   id,
		Job:  job,
		Form: c.service.NewBidForm(who),
	})
}

// POST /job/{id}
func (c *Controller) PlaceBid(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	who := identity.FromContext(r.Context())

	job := c.service.LoadJob(r.Context(), id)

	form, err := ParseBidForm(r, c.service.Now())
	switch {
	case job.IsFailed():
		err = job.Err
	case err == nil:
		_, err = c.service.PlaceBid(r.Context(), who, job.Value, form)
	}
	if err != nil {
		c.logFailure(r, err, id, "bid rejected")
		form.Email = who.Email
		c.render(w, r, failureStatus(err), "job_details", "Job Details", serviceNotice(err, ""), view.JobDetails{
			ID:   id,
			Job:  job,
			Form: form,
		})
		return
	}

	c.flash.Redirect(w, r, BidRequestsPath, notify.NewDialog("Good job!", "Bid Successfully!"))
}

// GET /update/{id}
func (c *Controller) UpdateJobForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	job := c.service.LoadJob(r.Context(), id)
	notice := c.flash.Pop(w, r)
	status := http.StatusOK
	form := service.JobForm{}
	if job.IsLoaded() {
		form = c.service.EditJobForm(job.Value)
	} else {
		c.logFailure(r, job.Err, id, "could not load job")
		notice = serviceNotice(job.Err, "")
		status = failureStatus(job.Err)
	}

	c.render(w, r, status, "update_job", "Update Job", notice, view.JobForm{Action: "/update/" + id, Form: form})
}

// POST /update/{id}
func (c *Controller) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	who := identity.FromContext(r.Context())

	form, err := ParseJobForm(r, c.service.Now())
	if err == nil {
		_, err = c.service.UpdateJob(r.Context(), who, id, form)
	}
	if err != nil {
		c.logFailure(r, err, id, "job update failed")
		c.render(w, r, failureStatus(err), "update_job", "Update Job", serviceNotice(err, ""), view.JobForm{Action: "/update/" + id, Form: form})
		return
	}

	c.flash.Redirect(w, r, MyPostedJobsPath, notify.NewDialog("Good job!", "Job Updated Successfully!"))
}

// GET /my-posted-jobs
func (c *Controller) MyPostedJobs(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "placeholder", "My Posted Jobs", c.flash.Pop(w, r), view.Placeholder{
		Heading: "My Posted Jobs",
		Text:    "Jobs you have posted are listed here.",
	})
}

// GET /bid-requests
func (c *Controller) BidRequests(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "placeholder", "Bid Requests", c.flash.Pop(w, r), view.Placeholder{
		Heading: "Bid Requests",
		Text:    "Bids placed on your jobs are listed here.",
	})
}

func (c *Controller) NotFound(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusNotFound, "placeholder", "Not Found", nil, view.Placeholder{
		Heading: "Page not found",
		Text:    r.URL.Path,
	})
}

// Service

func (c *Controller) render(w http.ResponseWriter, r *http.Request, status int, page, title string, notice *notify.Notice, content any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := view.Page{
		Title:    title,
		Identity: identity.FromContext(r.Context()),
		Notice:   notice,
		Content:  content,
	}

	rw := &deferredWriter{ResponseWriter: w, status: status}
	if err := c.views.Render(rw, page, data); err != nil {
		requestLog(r).Error().Err(err).Str("page", page).Msg("controller: render failed")
		if !rw.written {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

func (c *Controller) logFailure(r *http.Request, err error, jobId, msg string) {
	l := requestLog(r)
	ev := l.Error()
	if service.IsRuleViolation(err) || errors.Is(err, models.ErrNoJob) {
		ev = l.Debug()
	}
	if jobId != "" {
		ev = ev.Str("job", jobId)
	}
	ev.Err(err).Msg("controller: " + msg)
}

// requestLog returns the request scoped logger, or the global one.
func requestLog(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// serviceNotice maps err to the toast shown to the user. Failures without a
// dedicated message show fallback, or the underlying error message when
// fallback is empty.
func serviceNotice(err error, fallback string) *notify.Notice {
	var fe *service.FormError
	switch {
	case errors.As(err, &fe):
		return notify.Toast(notify.Error, fe.Error())
	case errors.Is(err, models.ErrIdentityUnresolved):
		return notify.Toast(notify.Error, "Please log in to continue")
	case errors.Is(err, models.ErrActionNotPermitted):
		return notify.Toast(notify.Error, "Action not permitted")
	case errors.Is(err, models.ErrPriceOutOfRange):
		return notify.Toast(notify.Error, "Price must be between min & max price.")
	case errors.Is(err, models.ErrDeadlineCrossed):
		return notify.Toast(notify.Error, "Deadline crossed, bidding forbidden")
	case errors.Is(err, models.ErrNoJob):
		return notify.Toast(notify.Error, "Requested job does not exist")
	case errors.Is(err, models.ErrNotModified):
		return notify.Toast(notify.Error, "Nothing was updated")
	}

	if fallback != "" {
		return notify.Toast(notify.Error, fallback)
	}
	return notify.Toast(notify.Error, userMessage(err))
}

func failureStatus(err error) int {
	var se *apiclient.StatusError
	switch {
	case errors.Is(err, models.ErrNoJob):
		return http.StatusNotFound
	case errors.Is(err, models.ErrIdentityUnresolved):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrActionNotPermitted):
		return http.StatusForbidden
	case service.IsRuleViolation(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &se) && se.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// userMessage returns the innermost error message, the one the failing
// transport or API reported.
func userMessage(err error) string {
	var se *apiclient.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// deferredWriter sends the status code with the first body write.
type deferredWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *deferredWriter) Write(p []byte) (int, error) {
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(w.status)
	}
	return w.ResponseWriter.Write(p)
}
