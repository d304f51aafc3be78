package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

// Router returns the complete web application, with request logging.
func Router(config *Global) (http.Handler, error) {
	router := mux.NewRouter()
	POST := router.Methods("POST").Subrouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h, err := newHandler(config, router)
	if err != nil {
		return nil, err
	}

	GET.HandleFunc("/", h.Index).Name("index")
	GET.HandleFunc("/kinds", h.Kinds).Name("kinds")

	//
	// POST
	//
	POST.HandleFunc("/", h.Compute).Name("compute")
	POST.HandleFunc("/download", h.Download).Name("download")
	POST.HandleFunc("/chart.png", h.ChartPNG).Name("chart")

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
		limitBody,
	)

	return standard.Then(router), nil
}

const maxBody = 32 << 20

// limitBody stops anybody posting more than we want to read
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		next.ServeHTTP(w, r)
	})
}
