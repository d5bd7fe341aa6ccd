package httpserver

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"booking_web/internal/adapters/observability"
	"booking_web/internal/auth"
	"booking_web/internal/domain"
)

const sessionCookie = "sid"

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "The server took too long to respond. Please try again.")
	}
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		observability.ObserveHTTP(routeOf(r), r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			ev := l.Info().
				Str("route", routeOf(r)).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Str("request_id", chimw.GetReqID(r.Context()))
			if st := stateFrom(r.Context()); st.Status == auth.StatusAuthenticated {
				ev = ev.Str("user", st.Session.Username).Str("role", string(st.Role))
			}
			ev.Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- Identity ----

type stateKey struct{}

// stateHolder lets Identity, which runs inside Logger, hand the state back out.
type stateHolder struct{ st auth.State }

func withStateHolder(ctx context.Context) (context.Context, *stateHolder) {
	h := &stateHolder{st: auth.Anonymous()}
	return context.WithValue(ctx, stateKey{}, h), h
}

func stateFrom(ctx context.Context) auth.State {
	if h, ok := ctx.Value(stateKey{}).(*stateHolder); ok {
		return h.st
	}
	return auth.Anonymous()
}

// StateResolver turns a session cookie into an authentication state.
type StateResolver interface {
	Resolve(ctx context.Context, sid string) auth.State
}

// Identity resolves the session once per request. The session is attached to
// the context so backend calls carry its bearer token.
func Identity(res StateResolver, cookies CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h, ok := r.Context().Value(stateKey{}).(*stateHolder)
			ctx := r.Context()
			if !ok {
				ctx, h = withStateHolder(ctx)
			}
			var sid string
			if c, err := r.Cookie(sessionCookie); err == nil {
				sid = c.Value
			}
			h.st = res.Resolve(ctx, sid)
			switch h.st.Status {
			case auth.StatusAuthenticated:
				ctx = domain.WithSession(ctx, h.st.Session)
			case auth.StatusAnonymous:
				if sid != "" {
					cookies.clear(w)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Holder must run before Logger so the log line can see the resolved user.
func Holder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := withStateHolder(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ---- Gate ----

// Gate applies the route's requirement to the resolved state.
func (s *Server) Gate(req auth.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out := auth.Decide(stateFrom(r.Context()), req)
			observability.ObserveGate(out.String())
			switch out {
			case auth.Render:
				next.ServeHTTP(w, r)
			case auth.RedirectLogin:
				http.Redirect(w, r, loginURL(r), http.StatusSeeOther)
			case auth.RedirectHome:
				http.Redirect(w, r, "/", http.StatusSeeOther)
			case auth.Pending:
				w.Header().Set("Retry-After", "2")
				s.render.Page(w, r, http.StatusServiceUnavailable, "pending", "Just a moment", nil)
			}
		})
	}
}

func loginURL(r *http.Request) string {
	next := r.URL.RequestURI()
	if r.Method != http.MethodGet {
		next = r.URL.Path
	}
	return "/login?next=" + url.QueryEscape(next)
}
