package handler

import (
	"main/dto"
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *usecase.UserService
}

func NewAuthHandler(userService *usecase.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register creates a user and returns the generated API key in
// plaintext. This and Regenerate are the only places the key is ever
// returned in the clear.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	req.Normalize()
	if errs := utils.ValidateStruct(&req); errs != nil {
		utils.ValidationFailed(c, errs)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		if err == usecase.ErrEmailTaken || err == usecase.ErrUsernameTaken {
			utils.BadRequest(c, err.Error())
			return
		}
		c.Error(err)
		return
	}

	utils.Created(c, "User registered successfully", dto.ToRegisteredUserResponse(user))
}

// Regenerate issues a fresh API key; the old one is invalid
// immediately.
func (h *AuthHandler) Regenerate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	updated, err := h.userService.RegenerateAPIKey(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessWithMessage(c, "API key regenerated successfully", gin.H{
		"apiKey": updated.APIKey,
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Invalid API key")
		return
	}

	utils.Success(c, dto.ToUserProfileResponse(user))
}
