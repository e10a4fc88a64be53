package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/marketloop/storefront-backend/api/responses"
	pkgerrors "github.com/marketloop/storefront-backend/pkg/errors"
	"github.com/marketloop/storefront-backend/pkg/logger"
)

// RateLimiterStore is the counter surface the limiter needs from redis.
type RateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy defines the throttling parameters for one auth
// surface. A zero window or all-zero limits disables the policy.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy with the supplied window and limits.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		trimmed = "auth"
	}
	return AuthRateLimitPolicy{
		name:       trimmed,
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// AuthRateLimit throttles an auth endpoint with per-IP and per-email
// counters. Email values are hashed before they become redis keys so raw
// addresses never leave the process.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		limiter := &authLimiter{policy: policy, store: store, logg: logg}
		return http.HandlerFunc(limiter.handle(next))
	}
}

type authLimiter struct {
	policy AuthRateLimitPolicy
	store  RateLimiterStore
	logg   *logger.Logger
}

func (l *authLimiter) handle(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if ip := clientIP(r); l.policy.ipLimit > 0 && ip != "" {
			key := fmt.Sprintf("rl:ip:%s:%s", l.policy.name, ip)
			if !l.check(ctx, w, key, int64(l.policy.ipLimit), "ip", ip) {
				return
			}
		}

		if l.policy.emailLimit > 0 {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, l.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if email := normalizeEmail(extractEmail(body)); email != "" {
				hash := hashValue(email)
				key := fmt.Sprintf("rl:email:%s:%s", l.policy.name, hash)
				if !l.check(ctx, w, key, int64(l.policy.emailLimit), "email", hash) {
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	}
}

// check increments the counter and writes the 429 itself when the limit is
// exceeded. It returns false when the request must not proceed.
func (l *authLimiter) check(ctx context.Context, w http.ResponseWriter, key string, limit int64, scope, subject string) bool {
	count, err := l.store.IncrWithTTL(ctx, key, l.policy.window)
	if err != nil {
		responses.WriteError(ctx, l.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
		return false
	}
	if count <= limit {
		return true
	}

	if l.logg != nil {
		logCtx := l.logg.WithFields(ctx, map[string]any{
			"policy":         l.policy.name,
			"scope":          scope,
			"subject":        subject,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(l.policy.window.Seconds()),
		})
		l.logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
	return false
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
