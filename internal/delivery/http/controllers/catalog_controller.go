package controllers

import (
	"log/slog"
	"net/http"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// CatalogController serves the fixed event category and tag catalogs.
type CatalogController struct {
	Logger     *slog.Logger
	Categories domain.CategoryRepository
	Tags       domain.TagRepository
}

func NewCatalogController(logger *slog.Logger, categories domain.CategoryRepository, tags domain.TagRepository) *CatalogController {
	return &CatalogController{
		Logger:     logger,
		Categories: categories,
		Tags:       tags,
	}
}

// ListCategories godoc
// @Summary List event categories
// @Tags catalog
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the categories"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Categories.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if categories == nil {
		categories = []*domain.EventCategory{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, categories)
}

// ListTags godoc
// @Summary List event tags
// @Tags catalog
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the tags"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tags [get]
func (c *CatalogController) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := c.Tags.List(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if tags == nil {
		tags = []*domain.EventTag{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, tags)
}
