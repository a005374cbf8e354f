package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	categoryapp "github.com/shopsync/backend/internal/application/category"
)

// CategoryTreeHandler handles category tree and mapping workflow endpoints.
type CategoryTreeHandler struct {
	BaseHandler
	service *categoryapp.Service
}

// NewCategoryTreeHandler creates a new CategoryTreeHandler.
func NewCategoryTreeHandler(service *categoryapp.Service) *CategoryTreeHandler {
	return &CategoryTreeHandler{service: service}
}

// ConfirmMappingRequest pins one canonical category to a shop category.
// @Description Confirm a category pairing as operator-verified
type ConfirmMappingRequest struct {
	CategoryNodeID string `json:"category_node_id" binding:"required,uuid"`
	ShopNodeID     string `json:"shop_node_id" binding:"required,uuid"`
	Notes          string `json:"notes" binding:"max=2000"`
}

// RejectMappingRequest marks a canonical category as having no counterpart.
// @Description Reject a category pairing for one shop
type RejectMappingRequest struct {
	CategoryNodeID string `json:"category_node_id" binding:"required,uuid"`
	ShopID         string `json:"shop_id" binding:"required,uuid"`
	Notes          string `json:"notes" binding:"max=2000"`
}

// PreMapRequest asks the suggestion backend for category pairings.
// @Description Request AI category pairing proposals; nothing is persisted
type PreMapRequest struct {
	MasterShopID  string `json:"master_shop_id" binding:"omitempty,uuid"`
	TargetShopID  string `json:"target_shop_id" binding:"required,uuid"`
	IncludeMapped bool   `json:"include_mapped"`
	Instructions  string `json:"instructions" binding:"max=4000"`
}

// UpdateDescriptionRequest replaces a canonical category's description texts.
// @Description Update category descriptions; with target_shop_id they are also pushed to the confirmed shop category
type UpdateDescriptionRequest struct {
	Description       string `json:"description"`
	SecondDescription string `json:"second_description"`
	TargetShopID      string `json:"target_shop_id" binding:"omitempty,uuid"`
}

// GetTrees godoc
// @Summary      Build category trees
// @Description  Returns the canonical tree with mapping status for the target shop plus the shop's own tree
// @Tags         categories
// @Produce      json
// @Param        target_shop_id query string true "Target shop ID" format(uuid)
// @Param        master_shop_id query string false "Master shop ID (defaults to the flagged master)" format(uuid)
// @Success      200 {object} dto.Response{data=categoryapp.TreesResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/tree [get]
func (h *CategoryTreeHandler) GetTrees(c *gin.Context) {
	targetShopID, err := uuid.Parse(c.Query("target_shop_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing target shop ID")
		return
	}
	masterShopID, valid := parseOptionalUUIDQuery(c, "master_shop_id")
	if !valid {
		h.BadRequest(c, "Invalid master shop ID format")
		return
	}

	trees, err := h.service.BuildTrees(c.Request.Context(), masterShopID, targetShopID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, trees)
}

// Confirm godoc
// @Summary      Confirm a category mapping
// @Description  Pins a canonical category to a shop category as ground truth. Idempotent.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body ConfirmMappingRequest true "Confirmation request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/mappings/confirm [post]
func (h *CategoryTreeHandler) Confirm(c *gin.Context) {
	var req ConfirmMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	categoryNodeID := uuid.MustParse(req.CategoryNodeID)
	shopNodeID := uuid.MustParse(req.ShopNodeID)

	mapping, err := h.service.Confirm(c.Request.Context(), categoryNodeID, shopNodeID, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, mapping)
}

// Reject godoc
// @Summary      Reject a category mapping
// @Description  Marks a canonical category as having no counterpart in the shop and clears any previous pairing. Idempotent.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body RejectMappingRequest true "Rejection request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/mappings/reject [post]
func (h *CategoryTreeHandler) Reject(c *gin.Context) {
	var req RejectMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	categoryNodeID := uuid.MustParse(req.CategoryNodeID)
	shopID := uuid.MustParse(req.ShopID)

	mapping, err := h.service.Reject(c.Request.Context(), categoryNodeID, shopID, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, mapping)
}

// UpdateDescription godoc
// @Summary      Update category descriptions
// @Description  Stores the canonical category's description texts. With target_shop_id they are also pushed to the shop category confirmed for that node; a failed push rolls the local change back.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        nodeId path string true "Canonical category node ID" format(uuid)
// @Param        request body UpdateDescriptionRequest true "Description update"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/nodes/{nodeId}/description [put]
func (h *CategoryTreeHandler) UpdateDescription(c *gin.Context) {
	nodeID, valid := parseUUIDParam(c, "nodeId")
	if !valid {
		h.BadRequest(c, "Invalid category node ID format")
		return
	}
	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	targetShopID := uuid.Nil
	if req.TargetShopID != "" {
		targetShopID = uuid.MustParse(req.TargetShopID)
	}

	node, err := h.service.UpdateDescription(c.Request.Context(), nodeID, targetShopID, req.Description, req.SecondDescription)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, node)
}

// PreMap godoc
// @Summary      Pre-map categories with AI
// @Description  Sends both category sets to the suggestion backend and returns pairing proposals. Confirmation is a separate call.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body PreMapRequest true "Pre-mapping request"
// @Success      200 {object} dto.Response{data=[]categoryapp.PreMapProposal}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/mappings/premap [post]
func (h *CategoryTreeHandler) PreMap(c *gin.Context) {
	var req PreMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	targetShopID := uuid.MustParse(req.TargetShopID)
	masterShopID := uuid.Nil
	if req.MasterShopID != "" {
		masterShopID = uuid.MustParse(req.MasterShopID)
	}

	proposals, err := h.service.PreMapWithAI(c.Request.Context(), masterShopID, targetShopID, req.IncludeMapped, req.Instructions)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, proposals)
}

// RegisterRoutes registers category tree and mapping routes.
func (h *CategoryTreeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/categories")
	group.GET("/tree", h.GetTrees)
	group.PUT("/nodes/:nodeId/description", h.UpdateDescription)
	group.POST("/mappings/confirm", h.Confirm)
	group.POST("/mappings/reject", h.Reject)
	group.POST("/mappings/premap", h.PreMap)
}
