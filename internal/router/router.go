package router

import (
	"net/http"

	"bidboard/internal/controller"
	"bidboard/internal/identity"
)

func NewRouter(c *controller.Controller, p identity.Provider) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", c.Ping)
	mux.HandleFunc("GET /{$}", c.Home)
	mux.HandleFunc("GET /add-job", c.AddJobForm)
	mux.HandleFunc("POST /add-job", c.AddJob)
	mux.HandleFunc("GET /job/{id}", c.JobDetails)
	mux.HandleFunc("POST /job/{id}", c.PlaceBid)
	mux.HandleFunc("GET /update/{id}", c.UpdateJobForm)
	mux.HandleFunc("POST /update/{id}", c.UpdateJob)
	mux.HandleFunc("GET "+controller.MyPostedJobsPath, c.MyPostedJobs)
	mux.HandleFunc("GET "+controller.BidRequestsPath, c.BidRequests)

	mux.HandleFunc("/", c.NotFound)

	return RequestLogger(identity.Middleware(p, mux))
}
