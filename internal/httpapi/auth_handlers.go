package httpapi

import (
	"errors"
	"net/http"

	"admincore.org/internal/audit"
	"admincore.org/internal/gate"
	"admincore.org/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Session sessionPayload `json:"session"`
}

func sessionToPayload(s session.Session) sessionPayload {
	return sessionPayload{ID: s.ID, Name: s.Name, Email: s.Email, Role: s.Role}
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := a.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredential) {
			writeError(w, r, http.StatusUnauthorized, "email and password are required")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "login failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"session_id": sess.ID,
		"email":      sess.Email,
	})
	writeJSON(w, http.StatusOK, loginResponse{
		Token:   sess.Token,
		Session: sessionToPayload(sess),
	})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	if err := a.sessions.Logout(r.Context()); err != nil {
		writeError(w, r, http.StatusInternalServerError, "logout failed")
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.logout", nil)
	w.WriteHeader(http.StatusNoContent)
}

// handleSession reports the access-gate decision so the presentation layer
// knows whether to render protected content, a login redirect, or a loading
// state. The endpoint is public, so the profile payload only ships to callers
// presenting the live session's own bearer token.
func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	decision := a.gate.Decide()
	body := map[string]any{"state": decision.String()}
	if decision == gate.Granted {
		if sess, ok := a.sessions.Current(); ok {
			if token, err := extractBearerToken(r.Header.Get(authHeader)); err == nil && token == sess.Token {
				body["session"] = sessionToPayload(sess)
			}
		}
	}
	writeJSON(w, http.StatusOK, body)
}
