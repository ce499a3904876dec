package venues

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/futplan/internal/cache"
	"github.com/codr1/futplan/internal/events"
	"github.com/codr1/futplan/internal/session"
	"github.com/codr1/futplan/internal/testutil"
)

func setupHandlers(t *testing.T, handler http.HandlerFunc) *testutil.Upstream {
	t.Helper()

	upstream, c := testutil.NewUpstream(t, handler)
	b := events.NewBus()
	s := cache.New(b, clockwork.NewFakeClock(), time.Minute)
	t.Cleanup(s.Close)

	prevClient, prevStore, prevBus := client, store, bus
	InitHandlers(c, s, b)
	t.Cleanup(func() {
		client, store, bus = prevClient, prevStore, prevBus
	})
	return upstream
}

func newRequest(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("HX-Request", "true")
	sess := &session.Session{ID: "s1", Token: "tok1"}
	return req.WithContext(session.WithContext(req.Context(), sess))
}

func TestVenuesListRendersVenues(t *testing.T) {
	setupHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.JSON(w, http.StatusOK, []map[string]any{
			{"id_local": 1, "nome": "Allianz Parque", "capacidade": 43713, "disponivel_para_agendamento": true},
		})
	})

	rec := httptest.NewRecorder()
	HandleVenuesList(rec, newRequest(http.MethodGet, "/api/v1/venues", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "Allianz Parque") || !strings.Contains(body, "Disponível") {
		t.Fatalf("unexpected venues fragment %q", body)
	}
}

func TestCreateVenueCoercesForm(t *testing.T) {
	tests := []struct {
		name          string
		form          url.Values
		wantAvailable bool
	}{
		{name: "checked", form: url.Values{"nome": {" Arena "}, "capacidade": {"300"}, "disponivel_para_agendamento": {"on"}}, wantAvailable: true},
		{name: "unchecked", form: url.Values{"nome": {"Arena"}, "capacidade": {"300"}}, wantAvailable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := setupHandlers(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			})

			rec := httptest.NewRecorder()
			HandleCreateVenue(rec, newRequest(http.MethodPost, "/api/v1/venues", tt.form))

			if trigger := rec.Header().Get("HX-Trigger"); !strings.Contains(trigger, "refreshVenuesList") || !strings.Contains(trigger, "Local cadastrado!") {
				t.Fatalf("unexpected trigger %q", trigger)
			}
			var body struct {
				Name      string `json:"nome"`
				Capacity  int64  `json:"capacidade"`
				Available bool   `json:"disponivel_para_agendamento"`
			}
			if err := json.Unmarshal(upstream.Requests()[0].Body, &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Name != "Arena" || body.Capacity != 300 || body.Available != tt.wantAvailable {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestCreateVenueRejectsNegativeCapacity(t *testing.T) {
	upstream := setupHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream request")
	})

	form := url.Values{"nome": {"Arena"}, "capacidade": {"-1"}}
	rec := httptest.NewRecorder()
	HandleCreateVenue(rec, newRequest(http.MethodPost, "/api/v1/venues", form))

	if rec.Header().Get("HX-Reswap") != "none" {
		t.Fatal("expected failure response")
	}
	if len(upstream.Requests()) != 0 {
		t.Fatal("expected no upstream request")
	}
}

func TestCreateVenueJSONDefaultsToAvailable(t *testing.T) {
	upstream := setupHandlers(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/venues", strings.NewReader(`{"nome":"Campo","capacidade":22}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(session.WithContext(req.Context(), &session.Session{ID: "s1", Token: "tok1"}))
	rec := httptest.NewRecorder()
	HandleCreateVenue(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(string(upstream.Requests()[0].Body), `"disponivel_para_agendamento":true`) {
		t.Fatalf("unexpected upstream body %s", upstream.Requests()[0].Body)
	}
}
