package handlers

import (
	"net/http"
	"strconv"

	"awards-api/internal/repository"
	"awards-api/internal/service"
)

// CategoryHandler handles the public category and nominee listings
type CategoryHandler struct {
	categoryRepo      *repository.CategoryRepository
	nominationService *service.NominationService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryRepo *repository.CategoryRepository, nominationService *service.NominationService) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo:      categoryRepo,
		nominationService: nominationService,
	}
}

// ListCategories retrieves all category groups with subcategories
// @Summary List categories
// @Description Get all award category groups and their subcategories
// @Tags Categories
// @Produce json
// @Success 200 {object} handlers.Envelope
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	groups, err := h.categoryRepo.ListGroups()
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, groups)
}

// ListNominees retrieves the approved nominees for a subcategory
// @Summary List nominees
// @Description Get the approved nominees for a subcategory with vote totals
// @Tags Categories
// @Produce json
// @Param id path int true "Subcategory ID"
// @Success 200 {object} handlers.Envelope
// @Failure 404 {object} handlers.Envelope "Unknown subcategory"
// @Router /subcategories/{id}/nominees [get]
func (h *CategoryHandler) ListNominees(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Invalid subcategory ID", nil)
		return
	}

	nominees, err := h.nominationService.ListPublicNominees(uint(id))
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	RespondData(w, http.StatusOK, nominees)
}
