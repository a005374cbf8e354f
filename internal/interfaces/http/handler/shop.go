package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	shopapp "github.com/shopsync/backend/internal/application/shop"
	"github.com/shopsync/backend/internal/domain/shop"
)

// ShopHandler handles the read-only shop registry endpoints.
type ShopHandler struct {
	BaseHandler
	service *shopapp.Service
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(service *shopapp.Service) *ShopHandler {
	return &ShopHandler{service: service}
}

// ShopResponse represents a shop in the response. The API token reference is
// deliberately not exposed.
// @Description Registered shop
type ShopResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Code      string `json:"code" example:"cz-main"`
	Name      string `json:"name" example:"Main CZ shop"`
	URL       string `json:"url" example:"https://shop.example.cz"`
	IsMaster  bool   `json:"is_master" example:"true"`
	CreatedAt string `json:"created_at" example:"2025-01-15T10:30:00Z"`
}

func toShopResponse(s *shop.Shop) ShopResponse {
	return ShopResponse{
		ID:        s.ID.String(),
		Code:      s.Code,
		Name:      s.Name,
		URL:       s.URL,
		IsMaster:  s.IsMaster,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

// List godoc
// @Summary      List shops
// @Description  Returns all registered shops
// @Tags         shops
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ShopResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shops [get]
func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	out := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		out = append(out, toShopResponse(&shops[i]))
	}
	h.Success(c, out)
}

// GetByID godoc
// @Summary      Get shop by ID
// @Description  Returns one registered shop
// @Tags         shops
// @Produce      json
// @Param        id path string true "Shop ID" format(uuid)
// @Success      200 {object} dto.Response{data=ShopResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shops/{id} [get]
func (h *ShopHandler) GetByID(c *gin.Context) {
	id, valid := parseUUIDParam(c, "id")
	if !valid {
		h.BadRequest(c, "Invalid shop ID format")
		return
	}
	sh, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toShopResponse(sh))
}

// GetMaster godoc
// @Summary      Get the master shop
// @Description  Returns the shop flagged as master
// @Tags         shops
// @Produce      json
// @Success      200 {object} dto.Response{data=ShopResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shops/master [get]
func (h *ShopHandler) GetMaster(c *gin.Context) {
	sh, err := h.service.GetMaster(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, toShopResponse(sh))
}

// RegisterRoutes registers shop registry routes.
func (h *ShopHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/shops")
	group.GET("", h.List)
	group.GET("/master", h.GetMaster)
	group.GET("/:id", h.GetByID)
}
