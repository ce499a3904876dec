package futapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/codr1/futplan/internal/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

type fakeUpstream struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeUpstream(t *testing.T, handler http.HandlerFunc) (*fakeUpstream, *Client) {
	t.Helper()

	f := &fakeUpstream{handler: handler}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		f.mu.Unlock()
		f.handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return f, client
}

func (f *fakeUpstream) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("expected an upstream request")
	}
	return f.requests[len(f.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestLoginReturnsToken(t *testing.T) {
	upstream, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "tok1"})
	})

	token, err := client.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok1" {
		t.Fatalf("expected tok1, got %q", token)
	}

	req := upstream.last(t)
	if req.Method != http.MethodPost || req.Path != "/login" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Auth != "" {
		t.Fatalf("login must not carry a bearer token, got %q", req.Auth)
	}
	var body map[string]string
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["email"] != "a@b.com" || body["senha"] != "x" {
		t.Fatalf("unexpected login body %v", body)
	}
}

func TestLoginWithoutToken(t *testing.T) {
	_, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	})

	_, err := client.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestLoginFailureIgnoresUpstreamMessage(t *testing.T) {
	_, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Credenciais inválidas"})
	})

	_, err := client.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Erro no login" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestAuthenticatedRequestsCarryBearer(t *testing.T) {
	upstream, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Team{{ID: 1, Name: "Santos"}})
	})

	teams, err := client.WithToken("tok1").ListTeams(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Santos" {
		t.Fatalf("unexpected teams %+v", teams)
	}
	if got := upstream.last(t).Auth; got != "Bearer tok1" {
		t.Fatalf("expected bearer header, got %q", got)
	}

	if _, err := client.ListTeams(context.Background()); err != nil {
		t.Fatalf("list teams without token: %v", err)
	}
	if got := upstream.last(t).Auth; got != "" {
		t.Fatalf("expected no auth header on base client, got %q", got)
	}
}

func TestDeleteErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		call    func(*Client) error
		message string
	}{
		{
			name:    "error field",
			status:  http.StatusForbidden,
			body:    `{"error":"não autorizado"}`,
			call:    func(c *Client) error { return c.DeleteMatch(context.Background(), 9) },
			message: "não autorizado",
		},
		{
			name:    "message preferred",
			status:  http.StatusConflict,
			body:    `{"message":"time em uso","error":"conflict"}`,
			call:    func(c *Client) error { return c.DeleteTeam(context.Background(), 3) },
			message: "time em uso",
		},
		{
			name:    "non json body",
			status:  http.StatusInternalServerError,
			body:    `<html>boom</html>`,
			call:    func(c *Client) error { return c.DeleteTeam(context.Background(), 3) },
			message: "Falha ao excluir time",
		},
		{
			name:    "match fallback",
			status:  http.StatusInternalServerError,
			body:    ``,
			call:    func(c *Client) error { return c.DeleteMatch(context.Background(), 3) },
			message: "Falha ao excluir partida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := tt.call(client)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, apiErr.Message)
			}
		})
	}
}

func TestCreateErrorFallsBackToStatus(t *testing.T) {
	_, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.CreateTeam(context.Background(), models.TeamInput{Name: "x"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Erro 502" {
		t.Fatalf("expected status-derived message, got %q", apiErr.Message)
	}
}

func TestCreateMatchPayload(t *testing.T) {
	upstream, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id_partida": 10})
	})

	input := models.MatchInput{HomeTeamID: 1, AwayTeamID: 2, VenueID: 3, StartsAt: "2025-11-15T20:00", EndsAt: "2025-11-15T22:00"}
	if err := client.WithToken("tok").CreateMatch(context.Background(), input); err != nil {
		t.Fatalf("create match: %v", err)
	}

	req := upstream.last(t)
	if req.Method != http.MethodPost || req.Path != "/partidas" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id_time_casa"] != float64(1) || body["id_time_visitante"] != float64(2) || body["id_local"] != float64(3) {
		t.Fatalf("unexpected ids in %v", body)
	}
	if body["dthr_ini"] != "2025-11-15T20:00" || body["dthr_fim"] != "2025-11-15T22:00" {
		t.Fatalf("unexpected timestamps in %v", body)
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := New(url)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.ListMatches(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	_, client := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	})

	_, err := client.ListVenues(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("/api"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
