package httpserver

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/staysocial/listing-service/internal/platform/logger"
)

// NewRouter wires the listing routes with logging, tracing, CORS, and panic
// recovery.
func NewRouter(h *Handler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(Tracing())
	r.Use(RequestLogger(log))

	listings := r.PathPrefix("/listings").Subrouter()
	listings.HandleFunc("", h.SearchListings).Methods(http.MethodGet)
	listings.HandleFunc("", h.CreateListing).Methods(http.MethodPost)
	listings.HandleFunc("/{id}", h.GetListingByID).Methods(http.MethodGet)
	listings.HandleFunc("/{id}", h.UpdateListing).Methods(http.MethodPut)
	listings.HandleFunc("/{id}", h.DeleteListing).Methods(http.MethodDelete)

	cors := handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.RecoveryHandler()(cors(r))
}
