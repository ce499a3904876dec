// Package ratelimit throttles login and signup attempts per client IP.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Visitors idle for this long are forgotten by Cleanup.
const idleTimeout = 10 * time.Minute

// Config holds rate limit configuration.
type Config struct {
	PerMinute  int  // Sustained attempts per IP per minute (default: 10)
	Burst      int  // Attempts allowed at once before throttling (default: 5)
	TrustProxy bool // Read the client IP from proxy headers

	// Clock for testing (nil uses real time)
	Clock clockwork.Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		PerMinute: 10,
		Burst:     5,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type visitor struct {
	limiter *rate.Limiter
	lastAt  time.Time
}

// Limiter keeps one token bucket per client IP.
type Limiter struct {
	config   *Config
	clock    clockwork.Clock
	mu       sync.Mutex
	visitors map[string]*visitor
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = DefaultConfig().PerMinute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig().Burst
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Limiter{
		config:   cfg,
		clock:    clock,
		visitors: make(map[string]*visitor),
	}
}

// Allow consumes one attempt for ip.
func (l *Limiter) Allow(ip string) LimitResult {
	now := l.clock.Now()

	l.mu.Lock()
	v := l.visitors[ip]
	if v == nil {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(float64(l.config.PerMinute)/60), l.config.Burst)}
		l.visitors[ip] = v
	}
	v.lastAt = now
	l.mu.Unlock()

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return LimitResult{Allowed: false, RetryAfter: time.Minute}
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return LimitResult{Allowed: false, RetryAfter: delay}
	}
	return LimitResult{Allowed: true}
}

// ClientIP resolves the request's client IP using the configured proxy trust.
func (l *Limiter) ClientIP(r *http.Request) string {
	return GetClientIP(r, l.config.TrustProxy)
}

// Cleanup forgets visitors idle past the timeout and returns how many were removed.
func (l *Limiter) Cleanup() int {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if now.Sub(v.lastAt) > idleTimeout {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost IP from X-Forwarded-For (added by your proxy).
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Use RIGHTMOST IP - this is the one your proxy added, not user-supplied
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				// Skip private/internal IPs to find the real client
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			// All IPs are private, use the last one
			return strings.TrimSpace(parts[len(parts)-1])
		}

		// Check X-Real-IP (set by nginx)
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// Fall back to RemoteAddr (direct connection or untrusted proxy)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port (e.g., Unix socket or malformed)
		// Try to parse as IP directly, otherwise return as-is
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		// Last resort: strip anything after last colon that looks like a port
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

// privateNetworks holds parsed CIDR ranges for private/reserved IPs.
// Parsed once at package init for efficiency.
var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10", // Link-local
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// isPrivateIP checks if an IP is in a private/reserved range.
// Handles both IPv4 and IPv4-mapped IPv6 addresses (e.g., ::ffff:192.168.1.1).
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	// Convert IPv4-mapped IPv6 to IPv4 for consistent matching
	// e.g., ::ffff:192.168.1.1 -> 192.168.1.1
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}

	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SanitizeIdentifier masks an identifier for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if strings.Contains(identifier, "@") {
		parts := strings.Split(identifier, "@")
		if len(parts[0]) > 2 {
			return parts[0][:2] + "***@" + parts[1]
		}
		return "***@" + parts[1]
	}
	// Phone: show last 4 digits
	if len(identifier) >= 4 {
		return "***" + identifier[len(identifier)-4:]
	}
	return "***"
}

// LogRateLimitExceeded logs a rate limit event with sanitized identifier.
func LogRateLimitExceeded(action, identifier, ip string, retryAfter time.Duration) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("action", action).
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Dur("retry_after", retryAfter).
		Msg("Auth rate limit exceeded")
}
