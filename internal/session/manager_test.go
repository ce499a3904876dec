package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

var testNow = time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *clockwork.FakeClock, *MemoryStore) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewMemoryStore()
	return NewManager(store, WithClock(clock), WithTTL(time.Hour), WithSecureCookie(false)), clock, store
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana@example.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("expected %s cookie", CookieName)
	return nil
}

func requestWith(cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestLoginSetsHttpOnlyCookieAndStoresToken(t *testing.T) {
	manager, _, _ := newTestManager(t)
	rec := httptest.NewRecorder()

	sess, err := manager.Login(context.Background(), rec, "opaque-token", "ana@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
	if cookie.Value != sess.ID || cookie.Value == "opaque-token" {
		t.Fatalf("cookie must carry the session id only, got %q", cookie.Value)
	}
	if !sess.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("expected ttl expiry, got %v", sess.ExpiresAt)
	}

	loaded, err := manager.Load(httptest.NewRecorder(), requestWith(cookie))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.Token != "opaque-token" || !loaded.HasToken() {
		t.Fatalf("expected stored token, got %+v", loaded)
	}
}

func TestLoginUsesEarlierTokenExpiry(t *testing.T) {
	manager, clock, _ := newTestManager(t)
	rec := httptest.NewRecorder()

	exp := testNow.Add(10 * time.Minute)
	sess, err := manager.Login(context.Background(), rec, signedToken(t, exp), "ana@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Fatalf("expected token exp %v, got %v", exp, sess.ExpiresAt)
	}

	clock.Advance(11 * time.Minute)
	loaded, err := manager.Load(httptest.NewRecorder(), requestWith(sessionCookie(t, rec)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected expired session, got %+v", loaded)
	}
}

func TestLoginIgnoresLaterTokenExpiry(t *testing.T) {
	manager, _, _ := newTestManager(t)
	sess, err := manager.Login(context.Background(), httptest.NewRecorder(), signedToken(t, testNow.Add(48*time.Hour)), "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("expected ttl cap, got %v", sess.ExpiresAt)
	}
}

func TestLoadWithoutCookie(t *testing.T) {
	manager, _, _ := newTestManager(t)
	sess, err := manager.Load(httptest.NewRecorder(), requestWith(nil))
	if err != nil || sess != nil {
		t.Fatalf("expected no session, got %+v, %v", sess, err)
	}
}

func TestLoadUnknownSessionClearsCookie(t *testing.T) {
	manager, _, _ := newTestManager(t)
	rec := httptest.NewRecorder()

	sess, err := manager.Load(rec, requestWith(&http.Cookie{Name: CookieName, Value: "forged"}))
	if err != nil || sess != nil {
		t.Fatalf("expected no session, got %+v, %v", sess, err)
	}
	if cookie := sessionCookie(t, rec); cookie.MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got max-age %d", cookie.MaxAge)
	}
}

func TestExpiredSessionRunsEndHooks(t *testing.T) {
	manager, clock, store := newTestManager(t)
	var ended []string
	manager.OnEnd(func(id string) { ended = append(ended, id) })

	rec := httptest.NewRecorder()
	sess, err := manager.Login(context.Background(), rec, "tok", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	clock.Advance(time.Hour)

	if loaded, _ := manager.Load(httptest.NewRecorder(), requestWith(sessionCookie(t, rec))); loaded != nil {
		t.Fatal("expected expired session to be rejected")
	}
	if len(ended) != 1 || ended[0] != sess.ID {
		t.Fatalf("expected end hook for %s, got %v", sess.ID, ended)
	}
	if _, err := store.Get(context.Background(), sess.ID); err != ErrNotFound {
		t.Fatalf("expected session deleted, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	manager, _, _ := newTestManager(t)
	var ended []string
	manager.OnEnd(func(id string) { ended = append(ended, id) })

	loginRec := httptest.NewRecorder()
	sess, err := manager.Login(context.Background(), loginRec, "tok", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	cookie := sessionCookie(t, loginRec)

	rec := httptest.NewRecorder()
	if err := manager.Logout(rec, requestWith(cookie)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if cleared := sessionCookie(t, rec); cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", cleared)
	}
	if len(ended) != 1 || ended[0] != sess.ID {
		t.Fatalf("expected end hook for %s, got %v", sess.ID, ended)
	}
	if loaded, _ := manager.Load(httptest.NewRecorder(), requestWith(cookie)); loaded != nil {
		t.Fatal("expected session to be gone after logout")
	}
}

func TestPrune(t *testing.T) {
	manager, clock, _ := newTestManager(t)
	var ended []string
	manager.OnEnd(func(id string) { ended = append(ended, id) })

	old, _ := manager.Login(context.Background(), httptest.NewRecorder(), "a", "")
	clock.Advance(30 * time.Minute)
	fresh, _ := manager.Login(context.Background(), httptest.NewRecorder(), "b", "")
	clock.Advance(31 * time.Minute)

	removed, err := manager.Prune(context.Background())
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 || len(ended) != 1 || ended[0] != old.ID {
		t.Fatalf("expected only %s pruned, got %d %v", old.ID, removed, ended)
	}
	if ended[0] == fresh.ID {
		t.Fatal("fresh session must survive")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("expected empty context to carry no session")
	}
	sess := &Session{ID: "x", Token: "t"}
	got, ok := FromContext(WithContext(context.Background(), sess))
	if !ok || got != sess {
		t.Fatalf("expected session from context, got %+v", got)
	}
}
