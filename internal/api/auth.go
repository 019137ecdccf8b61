package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/fundbuero/internal/model"
	"github.com/erazemk/fundbuero/internal/store"
)

// AuthHandler handles login, signup, status and logout.
type AuthHandler struct {
	DB       *sql.DB
	Sessions *Sessions
}

type authRequest struct {
	Action   string `json:"action" validate:"required,oneof=login signup"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Prename  string `json:"prename"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Prename  string `json:"prename" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// Post handles POST /api/auth, dispatching on the action field.
func (h *AuthHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	switch req.Action {
	case "login":
		h.login(w, r, loginRequest{Email: req.Email, Password: req.Password})
	case "signup":
		h.signup(w, r, signupRequest{
			Prename:  req.Prename,
			Surname:  req.Surname,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		})
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, req loginRequest) {
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := store.GetUserByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, r, unauthorized("invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		writeError(w, r, unauthorized("invalid email or password"))
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user logged in", "user", user.ID)
	jsonOK(w, http.StatusOK, "login successful", envelope{"user": user})
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request, req signupRequest) {
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := store.CreateUser(r.Context(), h.DB, &model.User{
		Prename:      req.Prename,
		Surname:      req.Surname,
		Username:     model.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user signed up", "user", user.ID)
	jsonOK(w, http.StatusCreated, "user created successfully", envelope{"user": user})
}

// Status handles GET /api/auth.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonOK(w, http.StatusOK, "", envelope{"isAuthenticated": false})
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		// Account deleted since login.
		clearSessionCookie(w)
		jsonOK(w, http.StatusOK, "", envelope{"isAuthenticated": false})
		return
	}
	jsonOK(w, http.StatusOK, "", envelope{"isAuthenticated": true, "user": user})
}

// Logout handles DELETE /api/auth.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if err := h.Sessions.Revoke(r.Context(), w, claims); err != nil {
		writeError(w, r, err)
		return
	}
	if claims != nil {
		slog.Info("user logged out", "user", claims.UserID)
	}
	jsonOK(w, http.StatusOK, "logged out successfully", nil)
}
