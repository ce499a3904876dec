package htmx

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	HeaderTrigger  = "HX-Trigger"
	HeaderReswap   = "HX-Reswap"
	HeaderRedirect = "HX-Redirect"

	// ToastEvent is handled by the base layout script.
	ToastEvent = "showToast"

	ToastSuccess = "success"
	ToastError   = "error"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant"`
}

// Trigger encodes an HX-Trigger value firing the toast (when set) and each
// named event.
func Trigger(toast *Toast, events ...string) string {
	payload := make(map[string]any, len(events)+1)
	if toast != nil {
		payload[ToastEvent] = toast
	}
	for _, evt := range events {
		if evt != "" {
			payload[evt] = true
		}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// TriggerDetail is like Trigger but each event carries a detail payload.
func TriggerDetail(toast *Toast, events map[string]any) string {
	payload := make(map[string]any, len(events)+1)
	for name, detail := range events {
		payload[name] = detail
	}
	if toast != nil {
		payload[ToastEvent] = toast
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// Success returns the headers of a completed mutation: a success toast plus
// the refresh events of the affected lists.
func Success(title, description string, events ...string) map[string]string {
	return map[string]string{
		HeaderTrigger: Trigger(&Toast{Title: title, Description: description, Variant: ToastSuccess}, events...),
	}
}

// Failure returns the headers of a rejected request. Nothing is swapped, so
// the form on the page keeps its values and stays open.
func Failure(title, description string) map[string]string {
	return map[string]string{
		HeaderTrigger: Trigger(&Toast{Title: title, Description: description, Variant: ToastError}),
		HeaderReswap:  "none",
	}
}

// Redirect makes htmx perform a full page navigation to url.
func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderRedirect, url)
	w.WriteHeader(http.StatusOK)
}
