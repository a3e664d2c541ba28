package handlers

import (
	"bloodlink_backend/internal/middleware"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/services"
	"bloodlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DonorHandler struct {
	*BaseHandler
	requestService services.RequestService
	deps           *middleware.Deps
}

func NewDonorHandler(base *BaseHandler, requestService services.RequestService, deps *middleware.Deps) *DonorHandler {
	return &DonorHandler{
		BaseHandler:    base,
		requestService: requestService,
		deps:           deps,
	}
}

func (h *DonorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	donor := rg.Group("/donor")
	donor.Use(
		middleware.Auth(h.deps.Tokens),
		middleware.RequireRoles(models.UserRoleDonor),
		middleware.ProfileCheck(h.deps.Users),
	)
	{
		donor.GET("/get-requests", h.GetRequests)
		donor.POST("/accept-request/:requestId", h.AcceptRequest)
		donor.POST("/reject-request/:requestId", h.RejectRequest)
	}
}

func (h *DonorHandler) GetRequests(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListForDonor(c.Request.Context(), donorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Requests fetched", requests)
}

func (h *DonorHandler) AcceptRequest(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	requestID, ok := h.RequireParam(c, "requestId")
	if !ok {
		return
	}

	request, err := h.requestService.Accept(c.Request.Context(), donorID, requestID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Request accepted", request)
}

func (h *DonorHandler) RejectRequest(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	requestID, ok := h.RequireParam(c, "requestId")
	if !ok {
		return
	}

	var body dto.RejectRequestBody
	if !h.BindAndValidateJSON(c, &body) {
		return
	}

	request, err := h.requestService.Reject(c.Request.Context(), donorID, requestID, &body)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Request rejected", request)
}
