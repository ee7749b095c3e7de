package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes mounts the feed API and the health check on r. Reads are public,
// writes go through guard.
func (ph *PostHandler) Routes(r *mux.Router, guard func(http.Handler) http.Handler) {
	r.HandleFunc("/health", ph.Health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/feed", ph.List).Methods("GET")
	api.HandleFunc("/feed/{post_id}", ph.Get).Methods("GET")
	api.Handle("/feed", guard(http.HandlerFunc(ph.Add))).Methods("POST")
	api.Handle("/feed/{post_id}", guard(http.HandlerFunc(ph.Update))).Methods("PUT")
	api.Handle("/feed/{post_id}", guard(http.HandlerFunc(ph.Delete))).Methods("DELETE")
}
