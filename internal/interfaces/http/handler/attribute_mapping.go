package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	taxonomyapp "github.com/shopsync/backend/internal/application/taxonomy"
	"github.com/shopsync/backend/internal/domain/taxonomy"
)

// AttributeMappingHandler handles attribute mapping API endpoints.
type AttributeMappingHandler struct {
	BaseHandler
	service *taxonomyapp.Service
}

// NewAttributeMappingHandler creates a new AttributeMappingHandler.
func NewAttributeMappingHandler(service *taxonomyapp.Service) *AttributeMappingHandler {
	return &AttributeMappingHandler{service: service}
}

// SubmittedValueRequest pairs one master attribute value with a target value.
// @Description One value-level pairing inside an attribute mapping
type SubmittedValueRequest struct {
	MasterValueKey string `json:"master_value_key" binding:"required"`
	TargetValueKey string `json:"target_value_key"`
}

// SubmittedMappingRequest is one attribute pairing in a save submission.
// @Description One attribute pairing; empty target_key clears the mapping
type SubmittedMappingRequest struct {
	MasterKey string                  `json:"master_key" binding:"required"`
	TargetKey string                  `json:"target_key"`
	Values    []SubmittedValueRequest `json:"values" binding:"omitempty,dive"`
}

// SaveMappingsRequest is the full mapping submission for one scope.
// @Description Full-replace submission of attribute mappings for one scope
type SaveMappingsRequest struct {
	MasterShopID string                    `json:"master_shop_id"`
	Mappings     []SubmittedMappingRequest `json:"mappings" binding:"dive"`
}

// SuggestMappingsRequest selects the scope for AI pairing suggestions.
type SuggestMappingsRequest struct {
	MasterShopID string `json:"master_shop_id"`
}

// SyncAttributesRequest selects which attribute types to refresh. Empty
// means all types.
type SyncAttributesRequest struct {
	Types []string `json:"types" binding:"omitempty,dive,attrtype"`
}

// bindScope extracts the target shop and attribute type from the path plus
// the optional master shop from the query string.
func (h *AttributeMappingHandler) bindScope(c *gin.Context) (master, target uuid.UUID, typ taxonomy.AttributeType, ok bool) {
	target, valid := parseUUIDParam(c, "shopId")
	if !valid {
		h.BadRequest(c, "Invalid shop ID format")
		return
	}
	typ, err := taxonomy.ParseAttributeType(c.Param("type"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	master, valid = parseOptionalUUIDQuery(c, "master_shop_id")
	if !valid {
		h.BadRequest(c, "Invalid master shop ID format")
		return
	}
	return master, target, typ, true
}

// GetView godoc
// @Summary      Get the attribute mapping view
// @Description  Returns merged master and target item sets plus the stored mappings for one scope
// @Tags         taxonomy
// @Produce      json
// @Param        shopId path string true "Target shop ID" format(uuid)
// @Param        type path string true "Attribute type" Enums(flags, filtering_parameters, variants)
// @Param        master_shop_id query string false "Master shop ID (defaults to the flagged master)" format(uuid)
// @Success      200 {object} dto.Response{data=taxonomyapp.MappingView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /taxonomy/shops/{shopId}/attributes/{type}/view [get]
func (h *AttributeMappingHandler) GetView(c *gin.Context) {
	master, target, typ, ok := h.bindScope(c)
	if !ok {
		return
	}
	view, err := h.service.GetView(c.Request.Context(), master, target, typ)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Save godoc
// @Summary      Save attribute mappings
// @Description  Replaces the mapping set for one scope and returns the refreshed view. Mappings absent from the submission are deleted.
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        shopId path string true "Target shop ID" format(uuid)
// @Param        type path string true "Attribute type" Enums(flags, filtering_parameters, variants)
// @Param        request body SaveMappingsRequest true "Mapping submission"
// @Success      200 {object} dto.Response{data=taxonomyapp.MappingView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /taxonomy/shops/{shopId}/attributes/{type}/mappings [put]
func (h *AttributeMappingHandler) Save(c *gin.Context) {
	_, target, typ, ok := h.bindScope(c)
	if !ok {
		return
	}

	var req SaveMappingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	master := uuid.Nil
	if req.MasterShopID != "" {
		parsed, err := uuid.Parse(req.MasterShopID)
		if err != nil {
			h.BadRequest(c, "Invalid master shop ID format")
			return
		}
		master = parsed
	}

	submitted := make([]taxonomyapp.SubmittedMapping, 0, len(req.Mappings))
	for _, m := range req.Mappings {
		sub := taxonomyapp.SubmittedMapping{
			MasterKey: m.MasterKey,
			TargetKey: m.TargetKey,
		}
		if m.Values != nil {
			sub.Values = make([]taxonomyapp.SubmittedValue, 0, len(m.Values))
			for _, v := range m.Values {
				sub.Values = append(sub.Values, taxonomyapp.SubmittedValue{
					MasterValueKey: v.MasterValueKey,
					TargetValueKey: v.TargetValueKey,
				})
			}
		}
		submitted = append(submitted, sub)
	}

	view, err := h.service.Save(c.Request.Context(), master, target, typ, submitted)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Suggest godoc
// @Summary      Suggest attribute mappings
// @Description  Forwards both merged item sets to the suggestion backend and returns its pairings. Persists nothing.
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        shopId path string true "Target shop ID" format(uuid)
// @Param        type path string true "Attribute type" Enums(flags, filtering_parameters, variants)
// @Param        request body SuggestMappingsRequest false "Scope selection"
// @Success      200 {object} dto.Response{data=[]integration.AttributePairing}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /taxonomy/shops/{shopId}/attributes/{type}/suggest [post]
func (h *AttributeMappingHandler) Suggest(c *gin.Context) {
	_, target, typ, ok := h.bindScope(c)
	if !ok {
		return
	}

	master := uuid.Nil
	var req SuggestMappingsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		if req.MasterShopID != "" {
			parsed, err := uuid.Parse(req.MasterShopID)
			if err != nil {
				h.BadRequest(c, "Invalid master shop ID format")
				return
			}
			master = parsed
		}
	}

	pairings, err := h.service.Suggest(c.Request.Context(), master, target, typ)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, pairings)
}

// Sync godoc
// @Summary      Sync the attribute cache
// @Description  Re-fetches remote attribute listings and folds them into the shop's persisted cache. Cache-only entries survive.
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        shopId path string true "Shop ID" format(uuid)
// @Param        request body SyncAttributesRequest false "Types to sync; empty means all"
// @Success      200 {object} dto.Response{data=taxonomyapp.SyncResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /taxonomy/shops/{shopId}/attributes/sync [post]
func (h *AttributeMappingHandler) Sync(c *gin.Context) {
	shopID, valid := parseUUIDParam(c, "shopId")
	if !valid {
		h.BadRequest(c, "Invalid shop ID format")
		return
	}

	var req SyncAttributesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}
	types := make([]taxonomy.AttributeType, 0, len(req.Types))
	for _, raw := range req.Types {
		typ, err := taxonomy.ParseAttributeType(raw)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		types = append(types, typ)
	}

	result, err := h.service.Sync(c.Request.Context(), shopID, types)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers attribute mapping routes.
func (h *AttributeMappingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/taxonomy/shops/:shopId/attributes")
	group.GET("/:type/view", h.GetView)
	group.PUT("/:type/mappings", h.Save)
	group.POST("/:type/suggest", h.Suggest)
	group.POST("/sync", h.Sync)
}
