package apiutil

import (
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/futplan/internal/api/htmx"
	"github.com/codr1/futplan/internal/futapi"
	"github.com/codr1/futplan/internal/session"
)

var errNoSession = HandlerError{Status: http.StatusUnauthorized, Message: "Sessão expirada. Faça login novamente."}

// SessionClient returns client bound to the token of the request's session,
// plus the session id that scopes cached lists and bus events.
func SessionClient(r *http.Request, client *futapi.Client) (*futapi.Client, string, error) {
	if client == nil {
		return nil, "", HandlerError{Status: http.StatusInternalServerError, Message: GenericErrorMessage}
	}
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.HasToken() {
		return nil, "", errNoSession
	}
	return client.WithToken(sess.Token), sess.ID, nil
}

// IsJSONBody reports whether the request body is JSON rather than form values.
func IsJSONBody(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// RespondError reports err to the caller. htmx requests get an error toast
// titled title and no swap; everything else gets {"error": message}.
func RespondError(w http.ResponseWriter, r *http.Request, title string, err error) {
	message := UserMessage(err)
	if htmx.IsRequest(r) {
		WriteHeaders(w, htmx.Failure(title, message))
		return
	}
	if writeErr := WriteJSONError(w, StatusFor(err), message); writeErr != nil {
		log.Ctx(r.Context()).Warn().Err(writeErr).Msg("Failed to write JSON error")
	}
}

// RespondDone finishes a mutation. htmx requests get headers (toast and
// refresh events) with an empty body; everything else gets payload as JSON.
func RespondDone(w http.ResponseWriter, r *http.Request, status int, payload any, headers map[string]string) {
	if htmx.IsRequest(r) {
		WriteHeaders(w, headers)
		return
	}
	if payload == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := WriteJSON(w, status, payload); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write JSON response")
	}
}
