package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/server/http/dto"
	"github.com/dahorta/freshmarket/internal/server/http/middleware"
)

// AuthHandler processes registration and login. Successful calls set the
// session cookie and echo the session so clients can route staff users to
// the admin surface without a second request.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Register(c.Request.Context(), strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	h.respondSession(c, token)
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	h.respondSession(c, token)
}

// respondSession resolves the staff flag from the freshly issued token and
// writes the cookie alongside the session body.
func (h *AuthHandler) respondSession(c *gin.Context, token string) {
	claims, err := h.facade.ParseToken(token)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.SessionResponse{Staff: claims.Staff})
}
