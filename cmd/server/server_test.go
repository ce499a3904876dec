package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/codr1/futplan/internal/config"
	"github.com/codr1/futplan/internal/testutil"
)

func newTestApp(t *testing.T, upstreamURL string) *httptest.Server {
	t.Helper()

	cfg, err := config.Parse([]byte(fmt.Sprintf(`app:
  name: "FutPlan"
  environment: "development"
  port: 8080
upstream:
  base_url: %q
session:
  driver: "memory"
features:
  demo_mode: false
`, upstreamURL)))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}

	app, err := newApp(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() {
		if err := app.Close(); err != nil {
			t.Errorf("close app: %v", err)
		}
	})

	server := httptest.NewServer(app.server.Handler)
	t.Cleanup(server.Close)
	return server
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestHealth(t *testing.T) {
	server := newTestApp(t, "http://127.0.0.1:1")

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestGatedRoutesRedirectAnonymousUsers(t *testing.T) {
	server := newTestApp(t, "http://127.0.0.1:1")
	browser := newBrowser(t)

	resp, err := browser.Get(server.URL + "/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/v1/teams", nil)
	req.Header.Set("HX-Request", "true")
	resp, err = browser.Do(req)
	if err != nil {
		t.Fatalf("teams: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("HX-Redirect") != "/" {
		t.Fatalf("expected HX-Redirect to /, got %v", resp.Header)
	}
}

func TestLoginThenListTeams(t *testing.T) {
	upstream, _ := testutil.NewUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			testutil.JSON(w, http.StatusOK, map[string]string{"access_token": "tok1"})
		case "/times":
			if r.Header.Get("Authorization") != "Bearer tok1" {
				testutil.JSON(w, http.StatusUnauthorized, map[string]string{"message": "sem token"})
				return
			}
			testutil.JSON(w, http.StatusOK, []map[string]any{{"id_time": 1, "nome_time": "Santos", "nome_responsavel": "Ana", "cor_uniforme": "#ffffff"}})
		default:
			http.NotFound(w, r)
		}
	})
	server := newTestApp(t, upstream.URL)
	browser := newBrowser(t)

	form := url.Values{"email": {"ana@futplan.test"}, "senha": {"segredo"}}
	req, _ := http.NewRequest(http.MethodPost, server.URL+"/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	resp, err := browser.Do(req)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if !strings.Contains(resp.Header.Get("HX-Trigger"), "/dashboard") {
		t.Fatalf("expected navigation trigger, got %q", resp.Header.Get("HX-Trigger"))
	}

	req, _ = http.NewRequest(http.MethodGet, server.URL+"/api/v1/teams", nil)
	req.Header.Set("HX-Request", "true")
	resp, err = browser.Do(req)
	if err != nil {
		t.Fatalf("teams: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Santos") {
		t.Fatalf("expected team list, got %q", body)
	}

	resp, err = browser.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("landing: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/dashboard" {
		t.Fatalf("expected signed-in landing to redirect, got %d", resp.StatusCode)
	}
}
