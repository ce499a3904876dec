package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	CookieName = "futplan_session"
	DefaultTTL = 8 * time.Hour

	idBytes = 32
)

type Option func(*Manager)

func WithClock(clock clockwork.Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSecureCookie sets the cookie Secure flag. Development runs over plain HTTP.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// Manager issues session cookies and resolves them back to sessions.
type Manager struct {
	store  Store
	clock  clockwork.Clock
	ttl    time.Duration
	secure bool

	mu    sync.RWMutex
	onEnd []func(id string)
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		clock:  clockwork.NewRealClock(),
		ttl:    DefaultTTL,
		secure: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnEnd registers fn to run with the id of every session that ends, whether
// by logout, expiry on load or pruning.
func (m *Manager) OnEnd(fn func(id string)) {
	m.mu.Lock()
	m.onEnd = append(m.onEnd, fn)
	m.mu.Unlock()
}

func (m *Manager) ended(ids ...string) {
	m.mu.RLock()
	hooks := slices.Clone(m.onEnd)
	m.mu.RUnlock()
	for _, id := range ids {
		for _, fn := range hooks {
			fn(id)
		}
	}
}

// Login stores token in a new session and sets its cookie. The session
// expires at the token's exp claim when that comes before the configured TTL.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, token, email string) (*Session, error) {
	if w == nil {
		return nil, errors.New("session requires response writer")
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := m.clock.Now()
	sess := &Session{
		ID:        id,
		Token:     token,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: m.expiry(now, token),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
		MaxAge:   int(sess.ExpiresAt.Sub(now).Seconds()),
	})
	return sess, nil
}

func (m *Manager) expiry(now time.Time, token string) time.Time {
	expiresAt := now.Add(m.ttl)
	if exp, ok := tokenExpiry(token); ok && exp.After(now) && exp.Before(expiresAt) {
		return exp
	}
	return expiresAt
}

// tokenExpiry reads the exp claim without verifying the signature; the
// upstream verifies its own tokens. Opaque tokens have no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Load returns the session named by the request cookie, or nil when there is
// none. Unknown or expired sessions clear the cookie.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	sess, err := m.store.Get(r.Context(), cookie.Value)
	if errors.Is(err, ErrNotFound) {
		m.ClearCookie(w)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if sess.Expired(m.clock.Now()) {
		if err := m.store.Delete(r.Context(), sess.ID); err != nil {
			log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to delete expired session")
		}
		m.ended(sess.ID)
		m.ClearCookie(w)
		return nil, nil
	}
	return sess, nil
}

// Logout ends the request's session, if any, and clears the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	defer m.ClearCookie(w)

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
		return err
	}
	m.ended(cookie.Value)
	return nil
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// Prune deletes expired sessions and returns how many were removed.
func (m *Manager) Prune(ctx context.Context) (int, error) {
	ids, err := m.store.DeleteExpired(ctx, m.clock.Now())
	if err != nil {
		return 0, err
	}
	m.ended(ids...)
	return len(ids), nil
}

func newSessionID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
