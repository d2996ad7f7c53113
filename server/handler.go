package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/milk9111/msgfall/msgstore"
)

const maxBodySize = 8 * 1024

// Handler serves the message endpoints.
type Handler struct {
	store  msgstore.Store
	logger zerolog.Logger
}

func NewHandler(store msgstore.Store, logger zerolog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("encode response")
	}
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// Messages lists every message on GET and stores one on POST. Any other
// method gets 405.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listMessages(w, r)
	case http.MethodPost:
		h.createMessage(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		h.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list messages")
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	noteListed(r, len(msgs))
	h.JSON(w, http.StatusOK, msgs)
}

func (h *Handler) createMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if body.Message == "" {
		h.Error(w, http.StatusBadRequest, "No message provided")
		return
	}

	msg, err := h.store.Create(r.Context(), body.Message)
	if errors.Is(err, msgstore.ErrEmptyMessage) {
		h.Error(w, http.StatusBadRequest, "No message provided")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("create message")
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	messagesPosted.Inc()
	noteCreated(r, msg.ID)
	h.JSON(w, http.StatusOK, msg)
}

// Health reports whether the service is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
