package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	productapp "github.com/shopsync/backend/internal/application/product"
	"github.com/shopsync/backend/internal/domain/shared"
)

// DefaultCategoryHandler handles default-category validation and updates.
type DefaultCategoryHandler struct {
	BaseHandler
	service *productapp.Service
}

// NewDefaultCategoryHandler creates a new DefaultCategoryHandler.
func NewDefaultCategoryHandler(service *productapp.Service) *DefaultCategoryHandler {
	return &DefaultCategoryHandler{service: service}
}

// ApplyDefaultCategoryRequest assigns a default category. Exactly one of
// category_node_id (master assignment) or shop_id+shop_node_id (per-shop
// assignment) must be given.
// @Description Assign a default category on the master product or a shop overlay
type ApplyDefaultCategoryRequest struct {
	CategoryNodeID string `json:"category_node_id" binding:"omitempty,uuid"`
	ShopID         string `json:"shop_id" binding:"omitempty,uuid"`
	ShopNodeID     string `json:"shop_node_id" binding:"omitempty,uuid"`
	SyncToShoptet  bool   `json:"sync_to_shoptet"`
}

// ImportProductsRequest selects the shop whose remote catalog to import.
// @Description Import the shop's product catalog from the remote platform
type ImportProductsRequest struct {
	ShopID string `json:"shop_id" binding:"required,uuid"`
}

// Import godoc
// @Summary      Import products
// @Description  Mirrors the shop's remote catalog locally: known products get their name, code and price snapshot refreshed, unknown ones are created. For the master shop, remote default categories seed unassigned products.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body ImportProductsRequest true "Import request"
// @Success      200 {object} dto.Response{data=productapp.ImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/import [post]
func (h *DefaultCategoryHandler) Import(c *gin.Context) {
	var req ImportProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ImportProducts(c.Request.Context(), uuid.MustParse(req.ShopID))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, result)
}

// Validate godoc
// @Summary      Validate default categories
// @Description  Sweeps master products and reports assignments inconsistent with the confirmed category mapping for the target shop
// @Tags         products
// @Produce      json
// @Param        target_shop_id query string true "Target shop ID" format(uuid)
// @Param        master_shop_id query string false "Master shop ID (defaults to the flagged master)" format(uuid)
// @Param        search query string false "Filter by product name or code"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        all query bool false "Return every issue, ignoring pagination"
// @Success      200 {object} dto.Response{data=productapp.ValidationReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/default-categories/validate [get]
func (h *DefaultCategoryHandler) Validate(c *gin.Context) {
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

	filter := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil {
		filter.PageSize = pageSize
	}
	filter.Search = c.Query("search")
	all := c.Query("all") == "true"

	report, err := h.service.Validate(c.Request.Context(), masterShopID, targetShopID, filter, all)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, report, report.Total, report.Page, report.PageSize)
}

// Apply godoc
// @Summary      Apply a default category
// @Description  Assigns a default category on the master product or, when shop_id is given, on the product's overlay in that shop. With sync_to_shoptet the assignment is pushed; a failed push rolls the local change back.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Param        request body ApplyDefaultCategoryRequest true "Assignment request"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{productId}/default-category [post]
func (h *DefaultCategoryHandler) Apply(c *gin.Context) {
	productID, valid := parseUUIDParam(c, "productId")
	if !valid {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	var req ApplyDefaultCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	switch {
	case req.CategoryNodeID != "" && req.ShopID == "" && req.ShopNodeID == "":
		err := h.service.ApplyToMaster(c.Request.Context(), productID, uuid.MustParse(req.CategoryNodeID), req.SyncToShoptet)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
	case req.CategoryNodeID == "" && req.ShopID != "" && req.ShopNodeID != "":
		err := h.service.ApplyToShop(c.Request.Context(), productID, uuid.MustParse(req.ShopID), uuid.MustParse(req.ShopNodeID), req.SyncToShoptet)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
	default:
		h.BadRequest(c, "Provide either category_node_id or shop_id with shop_node_id")
		return
	}
	h.NoContent(c)
}

// Clear godoc
// @Summary      Clear a default category
// @Description  Removes the default category on the master product or, when shop_id is given, on the product's overlay in that shop
// @Tags         products
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Param        shop_id query string false "Target shop ID for a per-shop clear" format(uuid)
// @Param        sync_to_shoptet query bool false "Push the clear to the remote platform"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{productId}/default-category [delete]
func (h *DefaultCategoryHandler) Clear(c *gin.Context) {
	productID, valid := parseUUIDParam(c, "productId")
	if !valid {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	shopID, valid := parseOptionalUUIDQuery(c, "shop_id")
	if !valid {
		h.BadRequest(c, "Invalid shop ID format")
		return
	}
	sync := c.Query("sync_to_shoptet") == "true"

	var err error
	if shopID == uuid.Nil {
		err = h.service.ClearMaster(c.Request.Context(), productID, sync)
	} else {
		err = h.service.ClearShop(c.Request.Context(), productID, shopID, sync)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Debug godoc
// @Summary      Describe the default-category sync context
// @Description  Recomputes what a push for this product and shop would do and returns the full decision trail. Strictly read-only.
// @Tags         products
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Param        shop_id query string true "Target shop ID" format(uuid)
// @Param        category_guid query string false "Explicit category GUID to trace instead of the stored assignment"
// @Success      200 {object} dto.Response{data=productapp.SyncContext}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{productId}/default-category/debug [get]
func (h *DefaultCategoryHandler) Debug(c *gin.Context) {
	productID, valid := parseUUIDParam(c, "productId")
	if !valid {
		h.BadRequest(c, "Invalid product ID format")
		return
	}
	shopID, err := uuid.Parse(c.Query("shop_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing shop ID")
		return
	}

	sc, err := h.service.DescribeSyncContext(c.Request.Context(), productID, shopID, c.Query("category_guid"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, sc)
}

// RegisterRoutes registers default-category routes.
func (h *DefaultCategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/products")
	group.POST("/import", h.Import)
	group.GET("/default-categories/validate", h.Validate)
	group.POST("/:productId/default-category", h.Apply)
	group.DELETE("/:productId/default-category", h.Clear)
	group.GET("/:productId/default-category/debug", h.Debug)
}
