package handlers

import (
	"errors"
	"net/http"

	"rp_admin_backend/internal/services"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultMovementLimit = 100
	maxMovementLimit     = 1000
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) GetInventory(c *gin.Context) {
	items, err := h.inventoryService.ListInventory()
	if err != nil {
		utils.LogError(err, "GetInventory: Error from inventoryService.ListInventory")
		utils.RespondInternalError(c, "Failed to fetch inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "item_name required", err.Error())
		return
	}

	item, err := h.inventoryService.CreateInventoryItem(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, "item_name required", err.Error())
		case errors.Is(err, services.ErrInventoryItemExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Inventory item already exists", err.Error()))
		default:
			utils.LogError(err, "CreateInventoryItem: Error from inventoryService.CreateInventoryItem")
			utils.RespondInternalError(c, "Failed to create inventory item", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": item.ID})
}

// UpdateInventory is either a stock adjustment (adjustment + type) or a field patch.
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	var req services.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "UpdateInventory", err)
		return
	}

	if req.IsAdjustment() {
		result, err := h.inventoryService.AdjustStock(req.ID, req.Type, *req.Adjustment, req.Notes)
		if err != nil {
			h.respondInventoryError(c, "AdjustStock", err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	if err := h.inventoryService.UpdateInventoryItem(req.ID, req.InventoryPatch); err != nil {
		h.respondInventoryError(c, "UpdateInventoryItem", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *InventoryHandler) respondInventoryError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrInventoryItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found", err.Error()))
	case errors.Is(err, services.ErrInvalidMovementType), errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, "Invalid inventory update", err.Error())
	case errors.Is(err, services.ErrInventoryItemExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Inventory item already exists", err.Error()))
	default:
		utils.LogError(err, op+": Error from inventoryService")
		utils.RespondInternalError(c, "Failed to update inventory", err)
	}
}

// GetStockMovements lists the audit trail, optionally for one item (?inventory_id=).
func (h *InventoryHandler) GetStockMovements(c *gin.Context) {
	var inventoryID *int64
	if raw := c.Query("inventory_id"); raw != "" {
		id, err := utils.ParsePositiveID(raw)
		if err != nil {
			utils.RespondValidationFailed(c, "Invalid inventory_id format", err.Error())
			return
		}
		inventoryID = &id
	}

	movements, err := h.inventoryService.ListStockMovements(inventoryID, queryLimit(c, defaultMovementLimit, maxMovementLimit))
	if err != nil {
		utils.LogError(err, "GetStockMovements: Error from inventoryService.ListStockMovements")
		utils.RespondInternalError(c, "Failed to fetch stock movements", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements})
}
