package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/simplelog/pkg/simplelog"
)

// Size limits for POST /v1/logs. MaxTextLength matches the max tag on Text.
const (
	MaxRequestBytes = 64 << 10
	MaxTextLength   = 32 << 10
)

// SubmitLogRequest is the body of POST /v1/logs.
type SubmitLogRequest struct {
	Source string `json:"source" validate:"required,max=128"`
	Level  string `json:"level" validate:"required,oneof=debug info warn warning error fatal"`
	Text   string `json:"text" validate:"required,max=32768"`
}

// SubmitLogResponse acknowledges an accepted message.
type SubmitLogResponse struct {
	Status string `json:"status"`
	Level  string `json:"level"`
}

// StatsProvider reports backend counters.
type StatsProvider interface {
	Stats() simplelog.Stats
}

// LogHandler handles log submission and backend inspection requests.
type LogHandler struct {
	channel   *simplelog.Channel
	stats     StatsProvider
	validator *validator.Validate
}

// NewLogHandler creates a handler that submits through ch.
func NewLogHandler(ch *simplelog.Channel, stats StatsProvider) *LogHandler {
	return &LogHandler{
		channel:   ch,
		stats:     stats,
		validator: validator.New(),
	}
}

// Submit handles POST /v1/logs requests. Each request is submitted through a
// client bound to the request's source with a Debug threshold, so nothing is
// filtered on this path.
func (h *LogHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitLogRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return
		}
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	req.Level = strings.ToLower(req.Level)
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error(), err)
		return
	}

	level, err := simplelog.ParseLevel(req.Level)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid level", err)
		return
	}

	client := simplelog.NewLogger(req.Source, simplelog.DebugLevel, h.channel)
	if err := client.Log(level, req.Text); err != nil {
		if errors.Is(err, simplelog.ErrDelivery) {
			RespondWithError(w, r, http.StatusServiceUnavailable, "Logging backend is shutting down", err)
			return
		}
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to submit log message", err)
		return
	}

	// 202 Accepted since the worker writes the line asynchronously
	RespondWithJSON(w, r, http.StatusAccepted, SubmitLogResponse{Status: "accepted", Level: level.String()})
}

// Stats handles GET /v1/stats requests.
func (h *LogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, h.stats.Stats())
}
