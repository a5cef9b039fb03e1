package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/abefas/taskapi/apierror"
	"github.com/abefas/taskapi/models"
	"github.com/abefas/taskapi/validation"
)

const tokenTTL = 24 * time.Hour

// hashPassword generates a bcrypt hash of the plain-text password.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a bcrypt password hash with a plain-text password.
func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// issueToken signs an HS256 token carrying userID.
func issueToken(key []byte, userID string, now time.Time) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// RegisterUser handles a new user registration.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	payload, err := validation.Decode(r.Body)
	if err != nil {
		apierror.Write(w, err)
		return
	}
	creds, err := validation.ValidateCredentials(payload)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	hashedPassword, err := hashPassword(creds.Password)
	if err != nil {
		log.Printf("Password hashing error: %v", err)
		apierror.Write(w, apierror.New(http.StatusInternalServerError, "Failed to hash password"))
		return
	}

	user, err := h.Users.Create(r.Context(), creds.Username, hashedPassword)
	if errors.Is(err, models.ErrUsernameTaken) {
		apierror.Write(w, apierror.New(http.StatusConflict, "Username already exists"))
		return
	} else if err != nil {
		log.Printf("Database error inserting new user: %v", err)
		apierror.Write(w, apierror.New(http.StatusInternalServerError, "Failed to register user"))
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// LoginUser handles user authentication and returns a JWT.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	payload, err := validation.Decode(r.Body)
	if err != nil {
		apierror.Write(w, err)
		return
	}
	creds, err := validation.ValidateCredentials(payload)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	user, err := h.Users.FindByUsername(r.Context(), creds.Username)
	if errors.Is(err, models.ErrUserNotFound) {
		apierror.Write(w, apierror.New(http.StatusUnauthorized, "Invalid username or password"))
		return
	} else if err != nil {
		log.Printf("Database error retrieving user for login: %v", err)
		apierror.Write(w, apierror.New(http.StatusInternalServerError, "Database error"))
		return
	}

	if !checkPasswordHash(creds.Password, user.PasswordHash) {
		apierror.Write(w, apierror.New(http.StatusUnauthorized, "Invalid username or password"))
		return
	}

	tokenString, err := issueToken(h.JWTKey, user.ID, time.Now())
	if err != nil {
		log.Printf("Error signing token: %v", err)
		apierror.Write(w, apierror.New(http.StatusInternalServerError, "Failed to generate token"))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Login successful!", "token": tokenString})
}
