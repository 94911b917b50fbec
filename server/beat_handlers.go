package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"beatstore/core/catalog"
	"beatstore/logger"

	"github.com/gorilla/mux"
)

// APIHandler serves the catalog JSON API.
type APIHandler struct {
	service *catalog.Service
}

// NewAPIHandler creates the API handler around the catalog service.
func NewAPIHandler(service *catalog.Service) *APIHandler {
	return &APIHandler{service: service}
}

// ListBeatsHandler returns every catalogued beat, newest first. The
// catalog is refreshed from the beats folder before each listing.
func (h *APIHandler) ListBeatsHandler(w http.ResponseWriter, r *http.Request) {
	beats, err := h.service.ListBeats(r.Context())
	if err != nil {
		logger.Error("Failed to list beats", logger.ErrorField(err))
		http.Error(w, "Failed to fetch beats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(beats)
}

// GetBeatHandler returns a single beat by ID.
func (h *APIHandler) GetBeatHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	beat, err := h.service.GetBeat(r.Context(), vars["id"])
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			http.Error(w, "Invalid beat ID", http.StatusBadRequest)
		case errors.Is(err, catalog.ErrNotFound):
			http.Error(w, "Beat not found", http.StatusNotFound)
		default:
			logger.Error("Failed to fetch beat", logger.String("id", vars["id"]), logger.ErrorField(err))
			http.Error(w, "Failed to fetch beat", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(beat)
}

// SubmitInquiryHandler records an exclusive-license inquiry.
func (h *APIHandler) SubmitInquiryHandler(w http.ResponseWriter, r *http.Request) {
	var req catalog.InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	inquiryID, err := h.service.SubmitInquiry(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			writeJSONError(w, inquiryErrorMessage(err), http.StatusBadRequest)
			return
		}
		logger.Error("Failed to submit inquiry", logger.ErrorField(err))
		writeJSONError(w, "Failed to submit inquiry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"inquiryId": inquiryID,
		"message":   "Inquiry submitted successfully",
	})
}

// inquiryErrorMessage keeps the wire message stable for the two validation
// cases the storefront distinguishes.
func inquiryErrorMessage(err error) string {
	if errors.Is(err, catalog.ErrInvalidEmail) {
		return "Invalid email format"
	}
	return "Missing required fields"
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
