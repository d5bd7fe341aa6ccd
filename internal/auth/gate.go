// Package auth decides who may see which page. The decision is a UX convenience:
// the backend re-validates every role-scoped call on its own.
package auth

import "booking_web/internal/domain"

type Status int

const (
	// StatusLoading means the session exists but its validity could not be established yet.
	StatusLoading Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is the authentication state of one request.
type State struct {
	Status  Status
	Role    domain.Role
	Session *domain.Session
}

func Anonymous() State { return State{Status: StatusAnonymous} }
func Loading() State   { return State{Status: StatusLoading} }

func Authenticated(s *domain.Session) State {
	return State{Status: StatusAuthenticated, Role: s.Role, Session: s}
}

type reqKind int

const (
	reqNone reqKind = iota
	reqAuth
	reqRole
)

// Requirement is what a route declares about its audience.
type Requirement struct {
	kind reqKind
	role domain.Role
}

func Public() Requirement                   { return Requirement{kind: reqNone} }
func SignedIn() Requirement                 { return Requirement{kind: reqAuth} }
func RequireRole(r domain.Role) Requirement { return Requirement{kind: reqRole, role: r} }

func (r Requirement) String() string {
	switch r.kind {
	case reqAuth:
		return "auth"
	case reqRole:
		return "role:" + string(r.role)
	}
	return "none"
}

type Outcome int

const (
	Render Outcome = iota
	RedirectLogin
	RedirectHome
	Pending
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case Pending:
		return "pending"
	}
	return "unknown"
}

// Decide is evaluated on every request. Content renders iff the route is public,
// or it needs any signed-in user and there is one, or it needs role X and the
// user holds exactly X. A state still being verified never triggers a redirect.
func Decide(s State, req Requirement) Outcome {
	if req.kind == reqNone {
		return Render
	}
	switch s.Status {
	case StatusLoading:
		return Pending
	case StatusAuthenticated:
		if req.kind == reqAuth || s.Role == req.role {
			return Render
		}
		return RedirectHome
	}
	return RedirectLogin
}
