package handlers

import (
	"bloodlink_backend/internal/middleware"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/services"
	"bloodlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	authService         services.AuthService
	verificationService services.VerificationService
	deps                *middleware.Deps
}

func NewAdminHandler(base *BaseHandler, authService services.AuthService, verificationService services.VerificationService, deps *middleware.Deps) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		authService:         authService,
		verificationService: verificationService,
		deps:                deps,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.POST("/login", h.Login)

	protected := admin.Group("")
	protected.Use(
		middleware.Auth(h.deps.Tokens),
		middleware.RequireRoles(models.UserRoleAdmin),
	)
	{
		protected.GET("/unverified-facilities", h.UnverifiedFacilities)
		protected.PATCH("/verify-facility/:facilityId", h.VerifyFacility)
		protected.POST("/reject-facility/:facilityId", h.RejectFacility)
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Login successful", resp)
}

func (h *AdminHandler) UnverifiedFacilities(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.verificationService.ListUnverified(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Unverified facilities fetched", resp)
}

func (h *AdminHandler) VerifyFacility(c *gin.Context) {
	facilityID, ok := h.RequireParam(c, "facilityId")
	if !ok {
		return
	}

	facility, err := h.verificationService.Verify(c.Request.Context(), facilityID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Facility verified", facility)
}

func (h *AdminHandler) RejectFacility(c *gin.Context) {
	facilityID, ok := h.RequireParam(c, "facilityId")
	if !ok {
		return
	}

	var body dto.RejectFacilityBody
	if !h.BindAndValidateJSON(c, &body) {
		return
	}

	facility, err := h.verificationService.Reject(c.Request.Context(), facilityID, body.RejectionReason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Facility verification rejected", facility)
}
