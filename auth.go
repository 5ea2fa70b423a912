package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a pre-computed bcrypt hash used when a login username isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based username enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// loginRequest is the request body for POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the bearer token and whether the body profile is
// filled in enough for metrics; clients send users to onboarding when not.
type loginResponse struct {
	Token           string `json:"token"`
	UserID          int    `json:"user_id"`
	ProfileComplete bool   `json:"profile_complete"`
}

// login verifies username/password and returns the user's auth token.
// POST /api/login (public, no auth required).
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || body.Password == "" {
		apiError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": body.Username})
	if lookupErr != nil && !errors.Is(lookupErr, pgx.ErrNoRows) {
		log.Printf("[login] user lookup failed: %v", lookupErr)
		apiError(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	// bcrypt runs for unknown usernames too so timing doesn't reveal which
	// usernames exist.
	hash := dummyHash
	if lookupErr == nil {
		hash = []byte(u.Password)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil || lookupErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	p, err := h.engineProfile(c, u.ID)
	if err != nil {
		log.Printf("[login] profile lookup failed for user %d: %v", u.ID, err)
	}
	c.JSON(http.StatusOK, loginResponse{Token: u.AuthToken, UserID: u.ID, ProfileComplete: p.Complete()})
}

// authMiddleware validates the Bearer token and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		var userID int
		err := h.db.QueryRow(c, "SELECT id FROM users WHERE auth_token = @token",
			pgx.NamedArgs{"token": token}).Scan(&userID)
		if err != nil || token == "" {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// logout rotates the caller's token so the current one stops working.
// POST /api/logout. The next login returns the new token.
func (h *Handler) logout(c *gin.Context) {
	userID := c.GetInt("user_id")

	result, err := h.db.Exec(c,
		"UPDATE users SET auth_token = @token WHERE id = @userID",
		pgx.NamedArgs{"token": uuid.New().String(), "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to log out")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusUnauthorized, "invalid token")
		return
	}

	c.Status(http.StatusNoContent)
}
