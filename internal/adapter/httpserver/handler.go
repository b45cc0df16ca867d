package httpserver

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/staysocial/listing-service/internal/listing/domain"
	"github.com/staysocial/listing-service/internal/listing/usecase"
	"github.com/staysocial/listing-service/internal/platform/logger"
)

type Handler struct {
	uc       *usecase.ListingUsecase
	logger   *logger.Logger
	validate *validator.Validate
}

func NewHandler(uc *usecase.ListingUsecase, log *logger.Logger) *Handler {
	v := validator.New()
	// Report field paths by their json names so validation errors line up
	// with what the caller actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{uc: uc, logger: log, validate: v}
}

// SearchListings handles GET /listings.
func (h *Handler) SearchListings(w http.ResponseWriter, r *http.Request) {
	input, fieldErrs := parseFilterInput(r)
	if len(fieldErrs) > 0 {
		writeError(w, http.StatusBadRequest, "invalid query parameters", fieldErrs)
		return
	}

	result, err := h.uc.SearchListings(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResponse(result))
}

// GetListingByID handles GET /listings/{id}.
func (h *Handler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	listing, err := h.uc.GetListingByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newListingResponse(listing))
}

// CreateListing handles POST /listings.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	listing, err := h.uc.CreateListing(r.Context(), req.toDomain())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newListingResponse(listing))
}

// UpdateListing handles PUT /listings/{id}.
func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req updateListingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	listing, err := h.uc.UpdateListing(r.Context(), id, req.toPatch())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newListingResponse(listing))
}

// DeleteListing handles DELETE /listings/{id}. The removed record is echoed
// back so the caller can log or undo.
func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	removed, err := h.uc.DeleteListing(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newListingResponse(removed))
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "unable to decode request body: "+err.Error(), nil)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, "validation failed", toFieldErrors(verrs))
			return false
		}
		writeError(w, http.StatusBadRequest, "validation failed", nil)
		return false
	}
	return true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "listing not found", nil)
		return
	}
	var serr *domain.StoreError
	if errors.As(err, &serr) {
		h.logger.Error("Handler: store error", "error", err.Error())
		writeError(w, http.StatusBadGateway, "storage unavailable", nil)
		return
	}
	h.logger.Error("Handler: unexpected error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal error", nil)
}

// parseFilterInput coerces query parameters into typed filter input. Type
// coercion failures are reported per field; unknown parameters are dropped.
func parseFilterInput(r *http.Request) (domain.FilterInput, []domain.FieldError) {
	q := r.URL.Query()
	var input domain.FilterInput
	var fieldErrs []domain.FieldError

	if v := q.Get("search"); v != "" {
		input.Search = &v
	}
	if v := q.Get("type"); v != "" {
		t := domain.ListingType(v)
		if !domain.ValidListingType(t) {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: "type", Message: "unknown listing type"})
		} else {
			input.Type = &t
		}
	}
	if v := q.Get("status"); v != "" {
		s := domain.ListingStatus(v)
		if !domain.ValidListingStatus(s) {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: "status", Message: "unknown status"})
		} else {
			input.Status = &s
		}
	}
	if v := q.Get("city"); v != "" {
		input.City = &v
	}
	input.MinPrice, fieldErrs = parseFloatParam(q.Get("minPrice"), "minPrice", fieldErrs)
	input.MaxPrice, fieldErrs = parseFloatParam(q.Get("maxPrice"), "maxPrice", fieldErrs)
	input.MaxGuests, fieldErrs = parseIntParam(q.Get("maxGuests"), "maxGuests", fieldErrs)
	input.Page, fieldErrs = parseIntParam(q.Get("page"), "page", fieldErrs)
	input.Limit, fieldErrs = parseIntParam(q.Get("limit"), "limit", fieldErrs)
	input.AvailableFrom, fieldErrs = parseDateParam(q.Get("availableFrom"), "availableFrom", fieldErrs)
	input.AvailableTo, fieldErrs = parseDateParam(q.Get("availableTo"), "availableTo", fieldErrs)
	if v := q.Get("sortBy"); v != "" {
		sb := domain.SortField(v)
		input.SortBy = &sb
	}
	if v := q.Get("sortOrder"); v != "" {
		so := domain.SortOrder(v)
		input.SortOrder = &so
	}
	return input, fieldErrs
}

func parseFloatParam(raw, field string, fieldErrs []domain.FieldError) (*float64, []domain.FieldError) {
	if raw == "" {
		return nil, fieldErrs
	}
	v, err := strconv.ParseFloat(raw, 64)
	// ParseFloat accepts NaN and Inf; the predicate layer assumes finite
	// bounds, so reject them here along with negatives.
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, append(fieldErrs, domain.FieldError{Field: field, Message: "must be a non-negative number"})
	}
	return &v, fieldErrs
}

func parseIntParam(raw, field string, fieldErrs []domain.FieldError) (*int, []domain.FieldError) {
	if raw == "" {
		return nil, fieldErrs
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, append(fieldErrs, domain.FieldError{Field: field, Message: "must be an integer"})
	}
	return &v, fieldErrs
}

func parseDateParam(raw, field string, fieldErrs []domain.FieldError) (*time.Time, []domain.FieldError) {
	if raw == "" {
		return nil, fieldErrs
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, append(fieldErrs, domain.FieldError{Field: field, Message: err.Error()})
	}
	return &t, fieldErrs
}

func toFieldErrors(verrs validator.ValidationErrors) []domain.FieldError {
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Trim the root struct name from the namespace.
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		fields = append(fields, domain.FieldError{
			Field:   path,
			Message: "failed validation on '" + fe.Tag() + "'",
		})
	}
	return fields
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string, fields []domain.FieldError) {
	writeJSON(w, status, errorResponse{Error: msg, Fields: fields})
}
