package handlers

// AppHandlers holds every HTTP handler in the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	FacilityHandler *FacilityHandler
	DonorHandler    *DonorHandler
	AdminHandler    *AdminHandler
}
