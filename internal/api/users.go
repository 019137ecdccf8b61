package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/fundbuero/internal/model"
	"github.com/erazemk/fundbuero/internal/store"
)

// UsersHandler handles user account endpoints.
type UsersHandler struct {
	DB *sql.DB
}

type createUserRequest struct {
	Prename  string `json:"prename" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

type updateUserRequest struct {
	ID       string `json:"id" validate:"required"`
	Prename  string `json:"prename" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	// Password is optional; empty keeps the current one.
	Password string `json:"password"`
}

// hashPassword checks the password rules and returns a bcrypt hash.
func hashPassword(password string) (string, error) {
	if err := model.ValidatePassword(password); err != nil {
		return "", badRequest(err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// List handles GET /api/userdb, or a single user with ?id=.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		h.get(w, r, id)
		return
	}

	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonOK(w, http.StatusOK, "", envelope{"users": users})
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, r, notFound("user not found"))
		return
	}
	jsonOK(w, http.StatusOK, "user found", envelope{"user": user})
}

// Create handles POST /api/userdb.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}
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
		Username:     req.Username,
		PasswordHash: hash,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user created", "id", user.ID, "username", user.Username)
	jsonOK(w, http.StatusCreated, "user added", envelope{"id": user.ID})
}

// Update handles PUT /api/userdb. Users may only change their own account.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, badRequest("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ID != callerID(r) {
		writeError(w, r, forbidden("users may only change their own account"))
		return
	}

	existing, err := store.GetUser(r.Context(), h.DB, req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if existing == nil {
		writeError(w, r, notFound("user not found"))
		return
	}

	hash := existing.PasswordHash
	if req.Password != "" {
		if hash, err = hashPassword(req.Password); err != nil {
			writeError(w, r, err)
			return
		}
	}

	found, err := store.UpdateUser(r.Context(), h.DB, &model.User{
		ID:           req.ID,
		Prename:      req.Prename,
		Surname:      req.Surname,
		Username:     req.Username,
		PasswordHash: hash,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, notFound("user not found"))
		return
	}

	slog.Info("user updated", "id", req.ID)
	jsonOK(w, http.StatusOK, "user updated", nil)
}

// Delete handles DELETE /api/userdb?id=. Users may only delete their own
// account, and only once they no longer own items.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, r, badRequest("attributes missing (id)"))
		return
	}
	if id != callerID(r) {
		writeError(w, r, forbidden("users may only delete their own account"))
		return
	}

	found, err := store.DeleteUser(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, notFound("user not found"))
		return
	}

	slog.Info("user deleted", "id", id)
	jsonOK(w, http.StatusOK, "user deleted", nil)
}

// Contact handles GET /api/getemail?id=, returning a reporter's contact
// details to logged-in users.
func (h *UsersHandler) Contact(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, r, badRequest("user id required"))
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		writeError(w, r, notFound("user not found"))
		return
	}
	jsonOK(w, http.StatusOK, "", envelope{"user": user.Contact()})
}
