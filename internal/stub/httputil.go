package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"esplan/internal/sentinel"
	"esplan/internal/transport/rest"
)

// envelope is the wire shape every stub response uses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// listPayload wraps a page of items the way list endpoints expose them.
type listPayload struct {
	Items      any             `json:"items"`
	Pagination rest.Pagination `json:"pagination"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: msg})
}

func respondList(w http.ResponseWriter, items any, p rest.Pagination) {
	respond(w, http.StatusOK, listPayload{Items: items, Pagination: p})
}

// respondError translates store errors into envelope failures. Validation
// messages are user-facing Thai already; everything else collapses to a
// generic message so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "ไม่พบข้อมูลที่ต้องการ")
	case errors.Is(err, sentinel.ErrInvalidInput):
		respondMessage(w, http.StatusUnprocessableEntity, userMessage(err))
	default:
		respondMessage(w, http.StatusInternalServerError, "เกิดข้อผิดพลาดภายในระบบ")
	}
}

// userMessage strips the sentinel suffix from validation errors, leaving the
// Thai text the store attached.
func userMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx > 0 {
		return msg[:idx]
	}
	return msg
}

func decode(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
