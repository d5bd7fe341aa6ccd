package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"booking_web/internal/app"
	"booking_web/internal/auth"
	"booking_web/internal/domain"
)

const pageSize = 10

type Handlers struct {
	Hotels   *app.HotelQueries
	Bookings domain.BookingAPI
	Booking  *app.BookingService
	Admin    domain.AdminAPI
	Users    domain.AuthAPI
	Auth     *app.AuthService
	Checkin  *app.CheckinService
	Cookies  CookieConfig
	Now      func() time.Time

	render *Renderer
}

type errorView struct {
	Status  int
	Message string
}

// fail renders a load failure. Business failures show the backend's message,
// anything else the fallback.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusBadGateway
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		// the backend no longer accepts this session's token
		http.Redirect(w, r, loginURL(r), http.StatusSeeOther)
		return
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.As(err, &apiErr):
		status = http.StatusBadRequest
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			status = apiErr.Status
		}
	}
	log.Warn().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("page load failed")
	h.render.Page(w, r, status, "error", "Something went wrong",
		errorView{Status: status, Message: domain.UserMessage(err, fallback)})
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ---- public ----

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

type homeView struct {
	Form     app.SearchForm
	Featured []domain.Hotel
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	form := app.DefaultSearchForm()
	v := homeView{Form: form}
	if page, err := h.Hotels.Search(r.Context(), form.Query(6)); err == nil {
		v.Featured = page.Content
	} else {
		log.Warn().Err(err).Msg("featured hotels unavailable")
	}
	h.render.Page(w, r, http.StatusOK, "home", "Find your stay", v)
}

type hotelsView struct {
	Form      app.SearchForm
	Errors    app.FieldErrors
	Amenities []string
	Results   domain.Page[domain.Hotel]
	Error     string
}

func (h *Handlers) hotels(w http.ResponseWriter, r *http.Request) {
	form, fe := app.ParseSearchForm(r.URL.Query())
	v := hotelsView{Form: form, Errors: fe}
	if am, err := h.Hotels.Amenities(r.Context()); err == nil {
		v.Amenities = am
	}
	if fe != nil {
		h.render.Page(w, r, http.StatusBadRequest, "hotels", "Search hotels", v)
		return
	}
	res, err := h.Hotels.Search(r.Context(), form.Query(pageSize))
	if err != nil {
		v.Error = domain.UserMessage(err, "Failed to search hotels.")
		log.Warn().Err(err).Msg("hotel search failed")
		h.render.Page(w, r, http.StatusBadGateway, "hotels", "Search hotels", v)
		return
	}
	v.Results = res
	h.render.Page(w, r, http.StatusOK, "hotels", "Search hotels", v)
}

type hotelView struct {
	Hotel domain.Hotel
	Rooms []domain.RoomType
}

func (h *Handlers) hotel(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	ht, err := h.Hotels.GetHotel(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load hotel information.")
		return
	}
	rooms, err := h.Hotels.RoomTypes(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("hotel", id).Msg("room types unavailable")
	}
	h.render.Page(w, r, http.StatusOK, "hotel", ht.Name, hotelView{Hotel: ht, Rooms: rooms})
}

// ---- login / logout ----

type loginView struct {
	Form    app.LoginForm
	Errors  app.FieldErrors
	Message string
}

func (h *Handlers) loginPage(w http.ResponseWriter, r *http.Request) {
	next := app.SafeNext(r.URL.Query().Get("next"))
	if stateFrom(r.Context()).Status == auth.StatusAuthenticated {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	h.render.Page(w, r, http.StatusOK, "login", "Sign in", loginView{Form: app.LoginForm{Next: next}})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Page(w, r, http.StatusBadRequest, "login", "Sign in", loginView{Message: "Could not read the form."})
		return
	}
	form, fe := app.ParseLoginForm(r.PostForm)
	if fe != nil {
		form.Password = ""
		h.render.Page(w, r, http.StatusBadRequest, "login", "Sign in", loginView{Form: form, Errors: fe})
		return
	}
	sess, err := h.Auth.Login(r.Context(), form)
	if err != nil {
		log.Info().Err(err).Str("user", form.Username).Msg("login rejected")
		form.Password = ""
		h.render.Page(w, r, http.StatusUnauthorized, "login", "Sign in",
			loginView{Form: form, Message: app.LoginMessage(err)})
		return
	}
	h.Cookies.set(w, sess.ID)
	log.Info().Str("user", sess.Username).Str("role", string(sess.Role)).Msg("signed in")
	http.Redirect(w, r, landing(form.Next, sess.Role), http.StatusSeeOther)
}

// landing picks where a fresh sign-in goes when no page asked for it.
func landing(next string, role domain.Role) string {
	if next != "/" {
		return next
	}
	switch role {
	case domain.RoleHost:
		return "/host"
	case domain.RoleAdmin:
		return "/admin"
	}
	return "/"
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.Auth.Logout(r.Context(), c.Value); err != nil {
			log.Warn().Err(err).Msg("logout failed")
		}
	}
	h.Cookies.clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	me, err := h.Users.Me(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load your profile.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "profile", "Your profile", me)
}
