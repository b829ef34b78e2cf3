// Package auth provides account signup and login over gin, argon2id password
// hashing and the JWT session cookie the websocket handshake verifies.
package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"adrenaline/domain"
	"adrenaline/shared/configs"
	"adrenaline/shared/logger"
)

var usernameRe = regexp.MustCompile("^[a-z0-9_]{3,20}$")

// UserRepo is the slice of storage the auth handlers need.
type UserRepo interface {
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	CreateUser(ctx context.Context, username string, passwordHash string) (string, error)
}

type Handler struct {
	users  UserRepo
	hasher *Argon2idHasher
}

func NewHandler(users UserRepo, hasher *Argon2idHasher) *Handler {
	return &Handler{users: users, hasher: hasher}
}

func (h *Handler) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/authentication/signup", h.signupHandler)
	engine.POST("/authentication/login", h.loginHandler)
	engine.POST("/authentication/logout", h.logoutHandler)
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signupHandler(ctx *gin.Context) {
	var body credentials
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid-format", "message": "You must send 'username' and 'password'"})
		return
	}
	body.Username = strings.ToLower(body.Username)
	if !usernameRe.MatchString(body.Username) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid-username", "message": "Username must contain only alphabets, numbers, underscores and be between 3 and 20 characters"})
		return
	}
	if len(body.Password) < 8 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "weak-password", "message": "Password should be at least 8 characters"})
		return
	}

	hash, err := h.hasher.Hash(body.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "server-error"})
		logger.Criticalf("signup: hashing failed: %v", err)
		return
	}

	id, err := h.users.CreateUser(ctx.Request.Context(), body.Username, hash)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "username-already-exists", "message": "This username is already taken"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "server-error"})
		logger.Criticalf("signup: user not created: %v", err)
		return
	}

	h.setSessionCookie(ctx, id)
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) loginHandler(ctx *gin.Context) {
	var body credentials
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid-format", "message": "You must send 'username' and 'password'"})
		return
	}
	body.Username = strings.ToLower(body.Username)

	user, err := h.users.GetUserByUsername(ctx.Request.Context(), body.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user-not-found", "message": "Username not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "server-error"})
		logger.Criticalf("login: lookup failed: %v", err)
		return
	}

	match, err := h.hasher.Compare(user.PasswordHash, body.Password)
	if err != nil || !match {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect-password", "message": "Entered password is incorrect"})
		return
	}

	h.setSessionCookie(ctx, user.Id)
	ctx.JSON(http.StatusCreated, gin.H{"id": user.Id})
}

func (h *Handler) logoutHandler(ctx *gin.Context) {
	ctx.SetCookie(configs.JWTCookie.Name, "", -1, configs.JWTCookie.Path, configs.JWTCookie.Domain, configs.JWTCookie.Secure, configs.JWTCookie.HttpOnly)
	ctx.JSON(http.StatusOK, nil)
}

func (h *Handler) setSessionCookie(ctx *gin.Context, userId string) {
	token, err := IssueJWT(userId)
	if err != nil {
		logger.Criticalf("auth: signing session token failed: %v", err)
		return
	}
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie(configs.JWTCookie.Name,
		token,
		configs.JWTCookie.MaxAge,
		configs.JWTCookie.Path,
		configs.JWTCookie.Domain,
		configs.JWTCookie.Secure,
		configs.JWTCookie.HttpOnly,
	)
}
