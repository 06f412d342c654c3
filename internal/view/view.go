// Package view renders the marketplace pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"bidboard/internal/identity"
	"bidboard/internal/load"
	"bidboard/internal/models"
	"bidboard/internal/notify"
	"bidboard/internal/service"
)

//go:embed templates
var templatesFS embed.FS

var pages = []string{"home", "add_job", "job_details", "update_job", "placeholder"}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"date":       FormatDate,
		"dateInput":  DateInput,
		"categories": func() []models.Category { return models.Categories },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("view.New: %s: %w", page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

// Render writes the page to w. Nothing is written if rendering fails.
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("view.Renderer.Render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("view.Renderer.Render: %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Page is the data every page template receives.
type Page struct {
	Title    string
	Identity identity.Identity
	Notice   *notify.Notice
	Content  any
}

type Tab struct {
	Label  string
	Href   string
	Active bool
}

type Home struct {
	Tabs  []Tab
	Jobs  load.Result[[]models.Job]
	Cards []Card
}

func NewHome(active models.Category, jobs load.Result[[]models.Job]) Home {
	tabs := []Tab{{Label: "All Jobs", Href: "/", Active: active == ""}}
	for _, c := range models.Categories {
		tabs = append(tabs, Tab{
			Label:  string(c),
			Href:   "/?" + url.Values{"category": {string(c)}}.Encode(),
			Active: c == active,
		})
	}

	return Home{
		Tabs:  tabs,
		Jobs:  jobs,
		Cards: NewCards(jobs.ValueOr(nil)),
	}
}

// JobForm is the job creation or update form.
type JobForm struct {
	Action string
	Form   service.JobForm
}

type JobDetails struct {
	// ID is the job id from the route, set even when the job failed to load.
	ID   string
	Job  load.Result[models.Job]
	Form service.BidForm
}

// Shown returns the job to display; empty unless it has loaded.
func (d JobDetails) Shown() models.Job {
	return d.Job.ValueOr(models.Job{})
}

type Placeholder struct {
	Heading string
	Text    string
}
