package devapi

import (
	"net/http"

	"bidboard/internal/router"
)

func NewRouter(c *Controller) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /add-jobs", c.AddJob)
	mux.HandleFunc("GET /add-jobs", c.ListJobs)
	mux.HandleFunc("GET /add-jobs/{id}", c.GetJob)
	mux.HandleFunc("PUT /add-jobs/{id}", c.ReplaceJob)
	mux.HandleFunc("POST /add-bid", c.AddBid)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		c.errorResponse(w, http.StatusNotFound, "page not found")
	})

	cors := http.NewServeMux()
	cors.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
		} else {
			mux.ServeHTTP(w, r)
		}
	})

	return router.RequestLogger(cors)
}
