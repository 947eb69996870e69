package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/service"
)

// PlanHandler serves training plans.
type PlanHandler struct {
	plans service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plans service.PlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// CreatePlanRequest defines the expected JSON for a new plan. Item ids may be
// left empty and are minted on save.
type CreatePlanRequest struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Items       []domain.TrainingUnitItem `json:"items"`
	Visibility  domain.Visibility         `json:"visibility" binding:"omitempty,oneof=public private"`
}

// ListPlans godoc
// @Summary List visible training plans
// @Tags Plans
// @Produce json
// @Success 200 {array} domain.TrainingPlan
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.plans.LoadVisible(c.Request.Context(), principal))
}

// CreatePlan godoc
// @Summary Create a training plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param plan body CreatePlanRequest true "Plan"
// @Success 201 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "Missing title, no items or bad item"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, ok := principalID(c)
	if !ok {
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), principal, domain.TrainingPlan{
		Title:       req.Title,
		Description: req.Description,
		Items:       req.Items,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create plan.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlan godoc
// @Summary Get one visible plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} domain.TrainingPlan
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to load plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// PutPlan godoc
// @Summary Save a training plan
// @Description Full-record replacement. createdAt is kept from the stored plan; updatedAt advances.
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param plan body domain.TrainingPlan true "Complete plan"
// @Success 200 {object} domain.TrainingPlan
// @Router /plans/{id} [put]
func (h *PlanHandler) PutPlan(c *gin.Context) {
	var plan domain.TrainingPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	id := c.Param("id")
	if plan.ID != "" && plan.ID != id {
		abortWithError(c, http.StatusBadRequest, "Plan id in body does not match the URL.")
		return
	}
	plan.ID = id

	principal, ok := principalID(c)
	if !ok {
		return
	}
	plans, err := h.plans.Upsert(c.Request.Context(), principal, plan)
	if err != nil {
		respondServiceError(c, err, "Failed to save plan.")
		return
	}
	for _, p := range plans {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	abortWithError(c, http.StatusInternalServerError, "Saved plan is missing.")
}

// DeletePlan godoc
// @Summary Remove a training plan
// @Description Removing an unknown id is not an error.
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {array} domain.TrainingPlan
// @Router /plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	plans, err := h.plans.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove plan.")
		return
	}
	c.JSON(http.StatusOK, domain.FilterVisible(plans, principal))
}

// GetResolvedPlan godoc
// @Summary Get a plan with its items joined to library entries
// @Description Items whose video or exercise is gone or hidden are skipped.
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} service.ResolvedPlan
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{id}/resolved [get]
func (h *PlanHandler) GetResolvedPlan(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	resolved, err := h.plans.Resolve(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to resolve plan.")
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// AddPlanItemRequest references a library entry to append to a plan.
type AddPlanItemRequest struct {
	Type  domain.UnitType `json:"type" binding:"required,oneof=video exercise"`
	RefID string          `json:"refId" binding:"required"`
}

// MovePlanItemRequest moves an item one step: -1 up, 1 down.
type MovePlanItemRequest struct {
	Direction int `json:"direction" binding:"required,oneof=-1 1"`
}

// AddPlanItem godoc
// @Summary Append an item to a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param item body AddPlanItemRequest true "Item"
// @Success 200 {object} domain.TrainingPlan
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{id}/items [post]
func (h *PlanHandler) AddPlanItem(c *gin.Context) {
	var req AddPlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, ok := principalID(c)
	if !ok {
		return
	}
	plan, err := h.plans.AddItem(c.Request.Context(), principal, c.Param("id"), req.Type, req.RefID)
	if err != nil {
		respondServiceError(c, err, "Failed to add plan item.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// RemovePlanItem godoc
// @Summary Remove an item from a plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} domain.TrainingPlan
// @Failure 400 {object} gin.H "The plan would be left without items"
// @Failure 404 {object} gin.H "Plan or item not found"
// @Router /plans/{id}/items/{itemId} [delete]
func (h *PlanHandler) RemovePlanItem(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	plan, err := h.plans.RemoveItem(c.Request.Context(), principal, c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove plan item.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// MovePlanItem godoc
// @Summary Move a plan item up or down
// @Description Moving the first item up or the last item down leaves the plan unchanged.
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param itemId path string true "Item ID"
// @Param move body MovePlanItemRequest true "Direction"
// @Success 200 {object} domain.TrainingPlan
// @Failure 404 {object} gin.H "Plan or item not found"
// @Router /plans/{id}/items/{itemId}/move [post]
func (h *PlanHandler) MovePlanItem(c *gin.Context) {
	var req MovePlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	principal, ok := principalID(c)
	if !ok {
		return
	}
	plan, err := h.plans.MoveItem(c.Request.Context(), principal, c.Param("id"), c.Param("itemId"), req.Direction)
	if err != nil {
		respondServiceError(c, err, "Failed to move plan item.")
		return
	}
	c.JSON(http.StatusOK, plan)
}
