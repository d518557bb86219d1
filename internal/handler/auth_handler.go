package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zokirzonovbek1-art/school-food-system/internal/service"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBad(c, validator.FormatValidationError(err))
		return
	}

	user, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"user": user.ToAPI()})
}
