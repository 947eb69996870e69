package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/service"
)

// ResourceHandler serves curated social resources.
type ResourceHandler struct {
	resources service.ResourceService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resources service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// AddResourceRequest defines the expected JSON for adding a resource.
type AddResourceRequest struct {
	URL           string            `json:"url"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ThumbnailURL  string            `json:"thumbnailUrl"`
	FollowerCount string            `json:"followerCount"`
	IsVerified    bool              `json:"isVerified"`
	Visibility    domain.Visibility `json:"visibility" binding:"omitempty,oneof=public private"`
}

// DetectResourceRequest carries a URL to classify.
type DetectResourceRequest struct {
	URL string `json:"url"`
}

// ListResources godoc
// @Summary List visible resources
// @Tags Resources
// @Produce json
// @Success 200 {array} domain.Resource
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.resources.LoadVisible(c.Request.Context(), principal))
}

// AddResource godoc
// @Summary Add a resource
// @Description Platform and default name are derived from the URL. Re-adding a URL creates a second entry.
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource body AddResourceRequest true "Resource details"
// @Success 201 {object} domain.Resource
// @Failure 400 {object} gin.H "Missing URL or unsupported platform"
// @Router /resources [post]
func (h *ResourceHandler) AddResource(c *gin.Context) {
	var req AddResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, ok := principalID(c)
	if !ok {
		return
	}

	res, err := h.resources.Add(c.Request.Context(), principal, service.ResourceInput{
		URL:           req.URL,
		Name:          req.Name,
		Description:   req.Description,
		ThumbnailURL:  req.ThumbnailURL,
		FollowerCount: req.FollowerCount,
		IsVerified:    req.IsVerified,
		Visibility:    req.Visibility,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to add resource.")
		return
	}
	c.JSON(http.StatusCreated, res)
}

// PatchResource godoc
// @Summary Partially update a resource
// @Description Fields left out of the body keep their previous value.
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param patch body domain.ResourcePatch true "Fields to change"
// @Success 200 {object} domain.Resource
// @Failure 400 {object} gin.H "Invalid field value"
// @Failure 404 {object} gin.H "Resource not found"
// @Failure 500 {object} gin.H "Could not persist the change"
// @Router /resources/{id} [patch]
func (h *ResourceHandler) PatchResource(c *gin.Context) {
	var patch domain.ResourcePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res, err := h.resources.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err, "Failed to update resource.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteResource godoc
// @Summary Remove a resource
// @Tags Resources
// @Param id path string true "Resource ID"
// @Success 204
// @Failure 404 {object} gin.H "Resource not found"
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	removed, err := h.resources.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove resource.")
		return
	}
	if !removed {
		abortWithError(c, http.StatusNotFound, service.ErrResourceNotFound.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// DetectResource godoc
// @Summary Detect the platform and a display name for a URL
// @Tags Resources
// @Accept json
// @Produce json
// @Param body body DetectResourceRequest true "URL"
// @Success 200 {object} service.DetectedResource
// @Failure 400 {object} gin.H "Unsupported platform"
// @Router /resources/detect [post]
func (h *ResourceHandler) DetectResource(c *gin.Context) {
	var req DetectResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	detected, err := h.resources.Detect(req.URL)
	if err != nil {
		respondServiceError(c, err, "Failed to detect platform.")
		return
	}
	c.JSON(http.StatusOK, detected)
}
