package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"

	"github.com/foundermafstat/mafstat2-sub002/internal/middleware"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

// UserStore is the slice of the datastore the user handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (string, error)
	UpdateProfile(ctx context.Context, u *models.User) error
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Country  string `json:"country"`
}

// CreateUserHandler registers a new account with the default 'user' role.
func CreateUserHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.Email == "" || req.Password == "" || req.Nickname == "" {
			http.Error(w, "email, password and nickname are required", http.StatusBadRequest)
			return
		}

		user := models.User{
			Email:    req.Email,
			Password: req.Password,
			Nickname: req.Nickname,
			Name:     req.Name,
			Surname:  req.Surname,
			Country:  req.Country,
			Role:     models.RoleUser,
		}

		if err := store.CreateUser(r.Context(), &user); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				http.Error(w, "email already exists", http.StatusConflict)
				return
			}
			log.WithError(err).Error("create user")
			http.Error(w, "error creating user", http.StatusInternalServerError)
			return
		}

		user.Password = ""
		writeJSON(w, http.StatusCreated, user)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginHandler verifies credentials and sets the auth_token cookie. The
// token is also returned in the body for non-browser clients.
func LoginHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request payload", http.StatusBadRequest)
			return
		}

		token, err := store.AuthenticateUser(r.Context(), req.Email, req.Password)
		if err != nil {
			log.WithError(err).Info("failed login attempt")
			http.Error(w, "authentication failed", http.StatusForbidden)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.CookieName,
			Value:    token,
			HttpOnly: true,
			Path:     "/",
		})
		writeJSON(w, http.StatusOK, loginResponse{Token: token})
	}
}

// MeHandler returns the authenticated user's own record.
func MeHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := store.GetUserByID(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		user.Password = ""
		writeJSON(w, http.StatusOK, user)
	}
}

type profileRequest struct {
	Nickname string     `json:"nickname"`
	Name     string     `json:"name"`
	Surname  string     `json:"surname"`
	Country  string     `json:"country"`
	ClubID   *uuid.UUID `json:"club_id"`
}

// UpdateProfileHandler edits the caller's own profile fields.
func UpdateProfileHandler(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.Nickname == "" {
			http.Error(w, "nickname is required", http.StatusBadRequest)
			return
		}

		u := models.User{
			ID:       middleware.UserID(r.Context()),
			Nickname: req.Nickname,
			Name:     req.Name,
			Surname:  req.Surname,
			Country:  req.Country,
			ClubID:   req.ClubID,
		}
		if err := store.UpdateProfile(r.Context(), &u); err != nil {
			log.WithError(err).Error("update profile")
			http.Error(w, "failed to update profile", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
