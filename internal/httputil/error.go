package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	warn("bad request", msg, err)
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	warn("not found", msg, err)
	WriteJSON(w, http.StatusNotFound, errorBody{Error: msg})
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	warn("conflict", msg, err)
	WriteJSON(w, http.StatusConflict, errorBody{Error: msg})
}

func warn(kind, msg string, err error) {
	if err != nil {
		slog.Warn(kind, "message", msg, "error", err)
	} else {
		slog.Warn(kind, "message", msg)
	}
}
