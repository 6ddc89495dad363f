package httpapi

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/DorLamesh/devops-web-app/internal/common"
	"github.com/DorLamesh/devops-web-app/internal/server/models"
	"github.com/DorLamesh/devops-web-app/internal/server/passwd"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Custom enables the strict password policy requiring a special character.
	Custom bool `json:"custom"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password, clientIP(r))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	token, err := s.auth.Signup(r.Context(), req.Username, req.Email, req.Password, req.Custom, clientIP(r))
	if err != nil {
		var policyErr *passwd.PolicyError
		switch {
		case errors.As(err, &policyErr):
			writeError(w, http.StatusBadRequest, policyErr.Reason)
		case errors.Is(err, common.ErrorConflict):
			writeError(w, http.StatusConflict, "username or email already exists")
		default:
			s.serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(common.AuthTokenHeaderName)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := s.auth.Profile(r.Context(), token, clientIP(r))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		User *models.PublicUser `json:"user"`
	}{User: user})
}

func (s *Server) adminListUsers(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(common.AuthTokenHeaderName)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	users, err := s.auth.AdminListUsers(r.Context(), token, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, "invalid token")
		case errors.Is(err, common.ErrorForbidden):
			writeError(w, http.StatusForbidden, "admin access required")
		default:
			s.serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Users []*models.PublicUser `json:"users"`
	}{Users: users})
}

// serverError logs the internal detail server-side and returns a generic
// message to the caller.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	writeError(w, http.StatusInternalServerError, "server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// clientIP returns the originating address: the first X-Forwarded-For entry
// when present, otherwise the connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
