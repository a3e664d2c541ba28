package handlers

import (
	"bloodlink_backend/internal/middleware"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/services"
	"bloodlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	deps        *middleware.Deps
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, deps *middleware.Deps) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		deps:        deps,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/onboard-donor", h.OnboardDonor)
		auth.POST("/onboard-facility", h.OnboardFacility)
		auth.POST("/login", h.Login)
		auth.POST("/look-up", h.LookUp)
		auth.GET("/verify-email/:token", h.VerifyEmail)
	}

	// Profile completion needs a session but deliberately not the profile
	// gate: it is how the profile gets completed in the first place.
	completion := rg.Group("/auth")
	completion.Use(middleware.Auth(h.deps.Tokens))
	{
		completion.POST("/complete-donor-profile",
			middleware.RequireRoles(models.UserRoleDonor), h.CompleteDonorProfile)
		completion.POST("/complete-facility-profile",
			middleware.RequireRoles(models.UserRoleFacility), h.CompleteFacilityProfile)
	}
}

func (h *AuthHandler) OnboardDonor(c *gin.Context) {
	var req dto.OnboardDonorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.OnboardDonor(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Registration successful. Please check your email to verify your account.", resp)
}

func (h *AuthHandler) OnboardFacility(c *gin.Context) {
	var req dto.OnboardFacilityRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.OnboardFacility(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Registration successful. Please check your email to verify your account.", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Login successful", resp)
}

func (h *AuthHandler) LookUp(c *gin.Context) {
	var req dto.LookUpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.LookUp(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Look-up complete", resp)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token, ok := h.RequireParam(c, "token")
	if !ok {
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Email verified", nil)
}

func (h *AuthHandler) CompleteDonorProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteDonorProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.CompleteDonorProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Profile completed", user)
}

func (h *AuthHandler) CompleteFacilityProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteFacilityProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.CompleteFacilityProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Profile completed. Verification is pending review.", user)
}
