package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"bidboard/internal/identity"
	"bidboard/internal/load"
	"bidboard/internal/models"
	"bidboard/internal/notify"
	"bidboard/internal/service"
)

func render(t *testing.T, page string, data Page) string {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, page, data); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRenderHome(t *testing.T) {
	jobs := []models.Job{
		{Id: "1", Title: "Landing page", Category: models.CategoryWebDevelopment, Deadline: time.Now()},
		{Id: "2", Title: "Odd one", Category: "Copywriting", Deadline: time.Now()},
	}

	out := render(t, "home", Page{
		Title:   "Home",
		Content: NewHome(models.CategoryWebDevelopment, load.Ok(jobs)),
	})

	if !strings.Contains(out, `href="/job/1"`) || !strings.Contains(out, "Landing page") {
		t.Error("home page should render a card per job")
	}
	if !strings.Contains(out, "category=Web&#43;Development") && !strings.Contains(out, "category=Web+Development") {
		t.Error("home page should render category tabs")
	}
}

func TestRenderJobDetailsEmpty(t *testing.T) {
	out := render(t, "job_details", Page{
		Title:    "Job Details",
		Identity: identity.NewAnonymous(),
		Notice:   notify.Toast(notify.Error, "requested job does not exist"),
		Content: JobDetails{
			ID:  "missing",
			Job: load.Fail[models.Job](errors.New("requested job does not exist")),
		},
	})

	if !strings.Contains(out, "requested job does not exist") {
		t.Error("notice should be shown")
	}
	if !strings.Contains(out, `action="/job/missing"`) {
		t.Error("bid form should post to the route id")
	}
	if !strings.Contains(out, "Place A Bid") {
		t.Error("bid form should still render")
	}
}

func TestRenderJobDetailsPending(t *testing.T) {
	out := render(t, "job_details", Page{
		Title:   "Job Details",
		Content: JobDetails{ID: "1", Job: load.Pending[models.Job]()},
	})

	if strings.Contains(out, "Loading...") {
		t.Error("pages are rendered after loading and show no loading state")
	}
	if !strings.Contains(out, "Place A Bid") {
		t.Error("bid form should render")
	}
}

func TestRenderUpdateForm(t *testing.T) {
	deadline := time.Date(2031, 3, 4, 0, 0, 0, 0, time.UTC)
	out := render(t, "update_job", Page{
		Title: "Update Job",
		Content: JobForm{
			Action: "/update/1",
			Form: service.JobForm{
				Title:    "Logo Design",
				Email:    "buyer@example.com",
				Deadline: deadline,
				Category: models.CategoryGraphicsDesign,
				MinPrice: "50",
				MaxPrice: "200",
			},
		},
	})

	if !strings.Contains(out, `value="2031-03-04"`) {
		t.Error("deadline input should carry the job's deadline")
	}
	if !strings.Contains(out, `<option value="Graphics Design" selected>`) {
		t.Error("the job's category should be selected")
	}
	if !strings.Contains(out, `value="buyer@example.com"`) {
		t.Error("email should be filled")
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Render(&bytes.Buffer{}, "nope", Page{}); err == nil {
		t.Error("expected an error for an unknown page")
	}
}
