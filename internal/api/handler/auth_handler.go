package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// Client-facing messages. Signup errors use the "error" key and login errors
// the "message" key; clients depend on both shapes.
const (
	msgInvalidBody       = "Invalid request body"
	msgAllFieldsRequired = "All fields are required"
	msgPasswordTooShort  = "Password must be at least 6 characters long"
	msgPasswordTooLong   = "Password must be at most 72 bytes long"
	msgInvalidEmail      = "Invalid email format"
	msgEmailExists       = "Email already exists"
	msgInvalidLogin      = "Invalid email or password"
	msgSignupInternal    = "Internal server error"
	msgLoginInternal     = "Internal Server Error"
	msgLogoutOK          = "Logout successful"
)

type AuthHandler struct {
	authService        ports.AuthService
	cookies            SessionCookies
	exposePasswordHash bool
	log                zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookies SessionCookies, exposePasswordHash bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:        authService,
		cookies:            cookies,
		exposePasswordHash: exposePasswordHash,
		log:                log,
	}
}

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email_pattern"`
	Password string `json:"password" validate:"required,min_length=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// errorResponse is the signup (and middleware) error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the login error envelope.
type messageResponse struct {
	Message string `json:"message"`
}

// signupUser echoes the created row. Password carries the stored bcrypt hash
// unless exposure is turned off in configuration.
type signupUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type publicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type signupResponse struct {
	Success bool       `json:"success"`
	User    signupUser `json:"user"`
}

type userResponse struct {
	Success bool       `json:"success"`
	User    publicUser `json:"user"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toPublicUser(u *domain.User) publicUser {
	return publicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Signup creates a new account and opens a session for it.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindBody(c, &req); err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
	}

	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: signupValidationMessage(err)})
	}

	sess, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.SignupsTotal.WithLabelValues(metrics.ResultDuplicateEmail).Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: msgEmailExists})
		case errors.Is(err, domain.ErrPasswordTooLong):
			metrics.SignupsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: msgPasswordTooLong})
		}
		metrics.SignupsTotal.WithLabelValues(metrics.ResultInternalFailure).Inc()
		h.log.Error().Err(err).Str("request_id", requestID(c)).Msg("error during signup")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgSignupInternal})
	}

	h.cookies.Set(c, sess.Token)
	metrics.SignupsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("signup").Inc()

	user := signupUser{
		ID:        sess.User.ID,
		Name:      sess.User.Name,
		Email:     sess.User.Email,
		CreatedAt: sess.User.CreatedAt,
		UpdatedAt: sess.User.UpdatedAt,
	}
	if h.exposePasswordHash {
		user.Password = sess.User.PasswordHash
	}
	return c.JSON(http.StatusCreated, signupResponse{Success: true, User: user})
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
	}

	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalidInput).Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgAllFieldsRequired})
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues(metrics.ResultBadCredentials).Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: msgInvalidLogin})
		}
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInternalFailure).Inc()
		h.log.Error().Err(err).Str("request_id", requestID(c)).Msg("error in login handler")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: msgLoginInternal})
	}

	h.cookies.Set(c, sess.Token)
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("login").Inc()

	return c.JSON(http.StatusOK, userResponse{Success: true, User: toPublicUser(sess.User)})
}

// Logout clears the session cookie. It never fails and is idempotent.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, logoutResponse{Success: true, Message: msgLogoutOK})
}

// Me returns the user owning the session cookie.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	// domain.ErrUserNotFound is rendered as 401 by the central error handler.
	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{Success: true, User: toPublicUser(user)})
}

// bindBody decodes the request body into req. A body not declared as JSON is
// ignored and req stays zero-valued, so the field checks report it.
func bindBody(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil && !errors.Is(err, echo.ErrUnsupportedMediaType) {
		return err
	}
	return nil
}

// signupValidationMessage maps the first validation failure to the signup
// error text.
func signupValidationMessage(err error) string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return msgAllFieldsRequired
	}
	switch ve.Tag {
	case "min_length":
		return msgPasswordTooShort
	case "email_pattern":
		return msgInvalidEmail
	default:
		return msgAllFieldsRequired
	}
}
