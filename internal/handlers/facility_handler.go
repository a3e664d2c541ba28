package handlers

import (
	"bloodlink_backend/internal/middleware"
	"bloodlink_backend/internal/models"
	"bloodlink_backend/internal/services"
	"bloodlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	*BaseHandler
	userService    services.UserService
	requestService services.RequestService
	deps           *middleware.Deps
}

func NewFacilityHandler(base *BaseHandler, userService services.UserService, requestService services.RequestService, deps *middleware.Deps) *FacilityHandler {
	return &FacilityHandler{
		BaseHandler:    base,
		userService:    userService,
		requestService: requestService,
		deps:           deps,
	}
}

func (h *FacilityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	facility := rg.Group("/facility")
	facility.Use(
		middleware.Auth(h.deps.Tokens),
		middleware.RequireRoles(models.UserRoleFacility),
		middleware.ProfileCheck(h.deps.Users),
	)
	{
		facility.GET("/get-donors", h.GetDonors)
		facility.POST("/request-donor/:donorId", h.RequestDonor)
		facility.GET("/get-requests", h.GetRequests)
	}
}

func (h *FacilityHandler) GetDonors(c *gin.Context) {
	var query dto.SearchDonorsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.userService.SearchDonors(c.Request.Context(), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Donors fetched", resp)
}

func (h *FacilityHandler) RequestDonor(c *gin.Context) {
	facilityID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	donorID, ok := h.RequireParam(c, "donorId")
	if !ok {
		return
	}

	var body dto.CreateRequestBody
	if !h.BindAndValidateJSON(c, &body) {
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), facilityID, donorID, &body)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, "Donation request sent", request)
}

func (h *FacilityHandler) GetRequests(c *gin.Context) {
	facilityID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	status := models.RequestStatus(c.Query("status"))

	resp, err := h.requestService.ListForFacility(c.Request.Context(), facilityID, status, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, "Requests fetched", resp)
}
