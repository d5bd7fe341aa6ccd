package httpserver_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dgrijalva/jwt-go"
	"github.com/redis/go-redis/v9"

	"booking_web/internal/adapters/backend"
	httpserver "booking_web/internal/adapters/http_server"
	redisad "booking_web/internal/adapters/redis"
	"booking_web/internal/app"
	"booking_web/internal/auth"
	"booking_web/internal/domain"
)

// ---- fake backend ----

type fakeBackend struct {
	mu      sync.Mutex
	routes  map[string]string // "METHOD /path" -> envelope body
	calls   map[string]int
	bearers map[string]string
}

func (f *fakeBackend) set(key, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key] = body
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls[key]++
	f.bearers[key] = r.Header.Get("Authorization")
	body, ok := f.routes[key]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":404,"success":false,"message":"Not found"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func ok(result string) string {
	return `{"code":1000,"success":true,"message":"ok","result":` + result + `}`
}

const bookingB123 = `{"id":"B123","bookingReference":"REF-1","guestName":"An Nguyen","hotelName":"Sea View",
	"roomTypeName":"Deluxe","checkInDate":"2026-10-18","checkOutDate":"2026-10-20","guests":2,
	"totalAmount":1500000,"status":"CONFIRMED","paymentStatus":"PAID","qrCodeUsed":%t}`

// ---- harness ----

type harness struct {
	t        *testing.T
	mr       *miniredis.Miniredis
	backend  *fakeBackend
	sessions *redisad.SessionStore
	srv      http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rc.Close() })

	fb := &fakeBackend{routes: map[string]string{}, calls: map[string]int{}, bearers: map[string]string{}}
	bs := httptest.NewServer(fb)
	t.Cleanup(bs.Close)
	client := backend.New(bs.URL, 1000, 2*time.Second)

	sessions := redisad.NewSessionStore(rc)
	pages := redisad.NewPageStore(rc)
	cache := redisad.NewCache(rc)

	rd, err := httpserver.NewRenderer()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	cookies := httpserver.CookieConfig{TTL: time.Hour}
	resolver := auth.NewResolver(sessions, client, time.Hour, 5*time.Minute)
	srv := httpserver.New(rd, resolver, cookies, 5*time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		Hotels:   app.NewHotelQueries(client, cache, time.Minute),
		Bookings: client,
		Booking:  app.NewBookingService(client, client),
		Admin:    client,
		Users:    client,
		Auth:     app.NewAuthService(client, sessions, time.Hour),
		Checkin:  app.NewCheckinService(client, pages, 30*time.Minute, 30*time.Second),
		Cookies:  cookies,
		Now:      func() time.Time { return time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC) },
	})
	return &harness{t: t, mr: mr, backend: fb, sessions: sessions, srv: srv.Mux()}
}

// signIn stores a fresh, recently verified session and returns its id.
func (h *harness) signIn(role domain.Role, token string) string {
	h.t.Helper()
	now := time.Now()
	s, err := h.sessions.Create(context.Background(), domain.Session{
		Token: token, RefreshToken: "r-" + token, Username: strings.ToLower(string(role)) + "1",
		Role: role, ExpiresAt: now.Add(time.Hour), VerifiedAt: now,
	}, time.Hour)
	if err != nil {
		h.t.Fatalf("create session: %v", err)
	}
	return s.ID
}

func (h *harness) do(method, target, sid string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)
	return rec
}

var pageField = regexp.MustCompile(`name="page" value="([^"]+)"`)

// ---- gate ----

func TestGate_AnonymousRedirectsToLogin(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/bookings", "/profile", "/host", "/host/checkin/B123", "/admin/bookings"} {
		rec := h.do(http.MethodGet, path, "", nil)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
		want := "/login?next=" + url.QueryEscape(path)
		if got := rec.Header().Get("Location"); got != want {
			t.Fatalf("%s: location %q, want %q", path, got, want)
		}
	}
}

func TestGate_RoleMismatchRedirectsHome(t *testing.T) {
	h := newHarness(t)
	cases := []struct {
		role domain.Role
		path string
	}{
		{domain.RoleUser, "/host"},
		{domain.RoleUser, "/admin"},
		{domain.RoleAdmin, "/host/bookings"},
		{domain.RoleAdmin, "/host/checkin/B123"},
		{domain.RoleHost, "/admin/bookings"},
	}
	for _, tc := range cases {
		sid := h.signIn(tc.role, "tok-"+string(tc.role))
		rec := h.do(http.MethodGet, tc.path, sid, nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
			t.Fatalf("%s on %s: %d %q", tc.role, tc.path, rec.Code, rec.Header().Get("Location"))
		}
	}
	if n := h.backend.count("GET /bookings/host/B123"); n != 0 {
		t.Fatalf("gated page must not load data, got %d calls", n)
	}
}

func TestGate_StoreDownIsPendingNotRedirect(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn(domain.RoleHost, "tok-host")
	h.mr.SetError("ERR store unavailable")

	rec := h.do(http.MethodGet, "/host/bookings", sid, nil)
	if rec.Code != http.StatusServiceUnavailable || rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected pending page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http-equiv="refresh"`) {
		t.Fatalf("pending page should reload itself")
	}

	h.backend.set("GET /hotels/search/filters", ok(`{"content":[],"totalElements":0,"totalPages":0}`))
	if rec := h.do(http.MethodGet, "/", sid, nil); rec.Code != http.StatusOK {
		t.Fatalf("public route must render while loading, got %d", rec.Code)
	}
}

func TestUnknownRouteRedirectsHome(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/no/such/page", "", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

// ---- check-in ----

func TestCheckin_ConfirmScenario(t *testing.T) {
	h := newHarness(t)
	h.backend.set("GET /bookings/host/B123", ok(fmt.Sprintf(bookingB123, false)))
	h.backend.set("POST /bookings/host/B123/checkin", ok(fmt.Sprintf(bookingB123, true)))
	sid := h.signIn(domain.RoleHost, "tok-host")

	rec := h.do(http.MethodGet, "/host/checkin/B123", sid, nil)
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "REF-1") || !strings.Contains(body, "Confirm check-in") {
		t.Fatalf("unexpected page %d:\n%s", rec.Code, body)
	}
	if got := h.backend.bearers["GET /bookings/host/B123"]; got != "Bearer tok-host" {
		t.Fatalf("bearer: %q", got)
	}
	m := pageField.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no page id in form")
	}

	rec = h.do(http.MethodPost, "/host/checkin/B123", sid, url.Values{"page": {m[1]}})
	body = rec.Body.String()
	if !strings.Contains(body, "Guest is checked in.") || strings.Contains(body, "Confirm check-in") {
		t.Fatalf("expected terminal view:\n%s", body)
	}

	// a replayed submit sends nothing
	_ = h.do(http.MethodPost, "/host/checkin/B123", sid, url.Values{"page": {m[1]}})
	if n := h.backend.count("POST /bookings/host/B123/checkin"); n != 1 {
		t.Fatalf("expected one checkin request, got %d", n)
	}
}

func TestCheckin_AlreadyUsedHasNoAction(t *testing.T) {
	h := newHarness(t)
	h.backend.set("GET /bookings/host/B123", ok(fmt.Sprintf(bookingB123, true)))
	sid := h.signIn(domain.RoleHost, "tok-host")

	body := h.do(http.MethodGet, "/host/checkin/B123", sid, nil).Body.String()
	if !strings.Contains(body, "Guest is checked in.") || strings.Contains(body, "<button type=\"submit\">Confirm") {
		t.Fatalf("unexpected page:\n%s", body)
	}
}

func TestCheckin_LoadBusinessFailureShowsMessage(t *testing.T) {
	h := newHarness(t)
	h.backend.set("GET /bookings/host/B404", `{"code":2001,"success":false,"message":"Booking does not belong to your hotels"}`)
	sid := h.signIn(domain.RoleHost, "tok-host")

	body := h.do(http.MethodGet, "/host/checkin/B404", sid, nil).Body.String()
	if !strings.Contains(body, "Booking does not belong to your hotels") || strings.Contains(body, "Confirm check-in") {
		t.Fatalf("unexpected page:\n%s", body)
	}
}

func TestCheckin_ConfirmFailureKeepsAction(t *testing.T) {
	h := newHarness(t)
	h.backend.set("GET /bookings/host/B123", ok(fmt.Sprintf(bookingB123, false)))
	h.backend.set("POST /bookings/host/B123/checkin", `{"code":4012,"success":false,"message":"Booking already checked in"}`)
	sid := h.signIn(domain.RoleHost, "tok-host")

	m := pageField.FindStringSubmatch(h.do(http.MethodGet, "/host/checkin/B123", sid, nil).Body.String())
	if m == nil {
		t.Fatalf("no page id")
	}
	body := h.do(http.MethodPost, "/host/checkin/B123", sid, url.Values{"page": {m[1]}}).Body.String()
	if !strings.Contains(body, "Booking already checked in") || !strings.Contains(body, "Confirm check-in") {
		t.Fatalf("expected error with action re-enabled:\n%s", body)
	}
}

func TestCheckin_SubmitWhileLockedRendersDisabled(t *testing.T) {
	h := newHarness(t)
	h.backend.set("GET /bookings/host/B123", ok(fmt.Sprintf(bookingB123, false)))
	h.backend.set("POST /bookings/host/B123/checkin", ok(fmt.Sprintf(bookingB123, true)))
	sid := h.signIn(domain.RoleHost, "tok-host")

	m := pageField.FindStringSubmatch(h.do(http.MethodGet, "/host/checkin/B123", sid, nil).Body.String())
	if m == nil {
		t.Fatalf("no page id")
	}
	// another request for this page is in flight
	if err := h.mr.Set("page:"+m[1]+":lock", "1"); err != nil {
		t.Fatalf("lock: %v", err)
	}
	body := h.do(http.MethodPost, "/host/checkin/B123", sid, url.Values{"page": {m[1]}}).Body.String()
	if !strings.Contains(body, "disabled>Checking in") {
		t.Fatalf("expected disabled action:\n%s", body)
	}
	if n := h.backend.count("POST /bookings/host/B123/checkin"); n != 0 {
		t.Fatalf("duplicate submit reached the backend %d times", n)
	}
}

// ---- login ----

func TestLogin_SetsCookieAndLandsByRole(t *testing.T) {
	h := newHarness(t)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "host1", "scope": "ROLE_USER ROLE_HOST", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	h.backend.set("POST /auth/login", ok(`{"tokenType":"Bearer","token":"`+tok+`","refreshToken":"r1"}`))

	rec := h.do(http.MethodPost, "/login", "", url.Values{"username": {"host1"}, "password": {"pw"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/host" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	var sid string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatalf("no session cookie")
	}

	h.backend.set("GET /bookings/host/dashboard", ok(`{"totalHotels":2,"activeHotels":2,"totalBookings":7}`))
	if rec := h.do(http.MethodGet, "/host", sid, nil); rec.Code != http.StatusOK {
		t.Fatalf("host dashboard after login: %d", rec.Code)
	}
}

func TestLogin_OffSiteNextIsIgnored(t *testing.T) {
	h := newHarness(t)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "host1", "scope": "ROLE_HOST", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	h.backend.set("POST /auth/login", ok(`{"tokenType":"Bearer","token":"`+tok+`","refreshToken":"r1"}`))

	for _, next := range []string{"/\t/evil.example", "/\\evil.example", "https://evil.example"} {
		rec := h.do(http.MethodPost, "/login", "", url.Values{"username": {"host1"}, "password": {"pw"}, "next": {next}})
		if loc := rec.Header().Get("Location"); rec.Code != http.StatusSeeOther || loc != "/host" {
			t.Fatalf("next %q: got %d %q", next, rec.Code, loc)
		}
	}
}

func TestLogin_RejectedShowsBackendMessage(t *testing.T) {
	h := newHarness(t)
	h.backend.set("POST /auth/login", `{"code":1005,"success":false,"message":"Invalid username or password"}`)
	rec := h.do(http.MethodPost, "/login", "", url.Values{"username": {"x"}, "password": {"bad"}})
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Fatalf("got %d:\n%s", rec.Code, rec.Body.String())
	}
}

func TestLogout_DropsSession(t *testing.T) {
	h := newHarness(t)
	h.backend.set("POST /auth/logout", ok(`null`))
	sid := h.signIn(domain.RoleUser, "tok-user")

	rec := h.do(http.MethodPost, "/logout", sid, url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout: %d", rec.Code)
	}
	if rec := h.do(http.MethodGet, "/bookings", sid, nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("session should be gone, got %d", rec.Code)
	}
}

// ---- pages ----

func TestHotels_InvalidFormIsBadRequest(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/hotels?guests=0&sortBy=name", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d", rec.Code)
	}
	if n := h.backend.count("GET /hotels/search/filters"); n != 0 {
		t.Fatalf("invalid search must not reach the backend")
	}
}

func TestMyBooking_NotFound(t *testing.T) {
	h := newHarness(t)
	sid := h.signIn(domain.RoleUser, "tok-user")
	rec := h.do(http.MethodGet, "/bookings/B999", sid, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d", rec.Code)
	}
}
