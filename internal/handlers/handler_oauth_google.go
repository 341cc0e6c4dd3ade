package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles Google OAuth related requests. The frontend runs
// the Google sign-in flow itself and posts the resulting ID token here.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	authHandler        *authHandler
}

// newGoogleOAuthHandler creates a new googleOAuthHandler.
func newGoogleOAuthHandler(gs portssvc.GoogleOAuthHandlerSvcFacade, us portssvc.UserSvcFacade, ah *authHandler) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: gs,
		userService:        us,
		authHandler:        ah,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the auth group.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, ah *authHandler) {
	h := newGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, ah)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.POST("", h.loginWithGoogle)
	}
}

// loginWithGoogle godoc
// @Summary Login with a Google ID token
// @Description Validates a Google ID token, creates or retrieves the matching
// user, and returns application tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param idToken body dto.GoogleAuthRequest true "Google ID token"
// @Success 200 {object} dto.LoginSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid Google ID token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *googleOAuthHandler) loginWithGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Essential user information missing from Google token"})
		return
	}

	user, err := h.userService.RegisterGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		VerifiedEmail: emailVerified,
		Name:          name,
	})
	if err != nil {
		logger.Error("Failed to register Google user", slog.String("error", err.Error()), slog.String("google_user_id", payload.Subject))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process user authentication"})
		return
	}

	if err := h.authHandler.issueTokens(c, user); err != nil {
		logger.Error("Failed to issue tokens", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
}
