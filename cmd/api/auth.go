package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/omercouncil/budget-portal/internal/budget/access"
	"github.com/omercouncil/budget-portal/internal/response"
)

type contextKey string

const userContextKey contextKey = "user"

// sessionTable maps bearer tokens to resolved users. Sessions live in
// memory only; restarting the server logs everyone out, matching the
// source system's reload-to-logout behavior.
type sessionTable struct {
	mu    sync.RWMutex
	users map[string]access.User
}

func newSessionTable() *sessionTable {
	return &sessionTable{users: make(map[string]access.User)}
}

func (s *sessionTable) create(user access.User) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.users[token] = user
	s.mu.Unlock()
	return token, nil
}

func (s *sessionTable) lookup(token string) (access.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[token]
	return user, ok
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Scope      string `json:"scope,omitempty"`
	ParentWing string `json:"parent_wing,omitempty"`
}

type LoginResponse = response.APIResponse[loginResult]

func roleOf(scope access.Scope) (role, target string) {
	switch s := scope.(type) {
	case access.AdminScope:
		return "ADMIN", ""
	case access.WingScope:
		return "WING", s.Wing
	case access.DeptScope:
		return "DEPT", s.Dept
	}
	return "", ""
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := readJSON(w, r, &input); err != nil {
		return
	}

	user, err := access.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, access.ErrUnknownUser) {
			writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := app.sessions.create(user)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	role, target := roleOf(user.Scope)
	result := loginResult{Token: token, Username: user.Username, Role: role, Scope: target}
	if st, ok := app.manager.State(); ok {
		result.ParentWing = access.ParentWing(user, st.Lines, st.Tasks)
	}

	writeJSON(w, http.StatusOK, &LoginResponse{Success: true, Data: result})
}

// requireSession resolves the bearer token and stashes the user on the
// request context. No token, no pipeline.
func (app *application) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		user, ok := app.sessions.lookup(token)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(r *http.Request) access.User {
	user, _ := r.Context().Value(userContextKey).(access.User)
	return user
}
