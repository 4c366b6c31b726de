package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/auth"
)

// AuthController serves registration, login and the OAuth2 password grant.
type AuthController struct {
	accounts AccountService
}

func NewAuthController(accounts AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email,max=100"`
	Password  string `json:"password" binding:"required"`
	Phone     string `json:"phone"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest holds the OAuth2 password grant form fields.
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is the OAuth2 token endpoint body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	reg, err := ac.accounts.Register(c.Request.Context(), auth.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		respondServiceError(c, err, "register")
		return
	}

	respondSuccess(c, http.StatusCreated, "Registration successful", AuthData{
		AccessToken: reg.AccessToken,
		User:        reg.User,
	})
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "login")
		return
	}

	token, err := ac.accounts.IssueToken(user)
	if err != nil {
		respondInternalError(c, err, "issue token")
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", AuthData{
		AccessToken: token,
		User:        user,
	})
}

// Token handles POST /api/token, the OAuth2 password grant. The username
// field carries the email address.
func (ac *AuthController) Token(c *gin.Context) {
	var req TokenRequest
	if !bindForm(c, &req) {
		return
	}

	user, err := ac.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
			return
		}
		respondInternalError(c, err, "token")
		return
	}

	token, err := ac.accounts.IssueToken(user)
	if err != nil {
		respondInternalError(c, err, "issue token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
