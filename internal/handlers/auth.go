package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/avudaiappan/blog-api/internal/middleware"
	"github.com/avudaiappan/blog-api/internal/models"
	"github.com/avudaiappan/blog-api/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the fixed work factor used for all stored
// password hashes.
const bcryptCost = 8

// tokenTTL is the lifetime of an issued session token.
const tokenTTL = 5 * time.Hour

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, authMiddleware echo.MiddlewareFunc) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/logout", h.Logout, authMiddleware)
}

// Signup registers a user with email and password. The password is
// hashed before it ever reaches the store.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ValidationFailed("", "Please provide email and Password!")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return apperror.ValidationFailed("", "Please provide email and Password!")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Login authenticates a user and issues a session token. An unknown
// email and a wrong password produce the identical error.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ValidationFailed("", "Please provide email and password!")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return apperror.ValidationFailed("", "Please provide email and password!")
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.InvalidCredentials()
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return apperror.InvalidCredentials()
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return err
	}

	if err := h.userRepository.AppendToken(c.Request().Context(), user.ID.Hex(), token); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// Logout removes the presented session token from the user's active
// token list. Other sessions stay valid.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := c.Get(middleware.ContextUserKey).(*models.JwtCustomClaims)
	if !ok {
		return apperror.Unauthenticated("Please login to continue!")
	}
	token, ok := c.Get(middleware.ContextTokenKey).(string)
	if !ok {
		return apperror.Unauthenticated("Please login to continue!")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil || user == nil {
		return apperror.Unauthenticated("Please login to continue!")
	}

	if err := h.userRepository.RemoveToken(c.Request().Context(), user.ID.Hex(), token); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// generateJWT signs a session token carrying the user's id and email.
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}
