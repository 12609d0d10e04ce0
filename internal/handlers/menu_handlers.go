package handlers

import (
	"errors"
	"net/http"

	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/services"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// GetMenu lists every menu item.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	items, err := h.menuService.ListMenu()
	if err != nil {
		utils.LogError(err, "GetMenu: Error from menuService.ListMenu")
		utils.RespondInternalError(c, "Failed to fetch menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "category, name, price required", err.Error())
		return
	}

	item, err := h.menuService.CreateMenuItem(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "category, name, price required", err.Error())
			return
		}
		utils.LogError(err, "CreateMenuItem: Error from menuService.CreateMenuItem")
		utils.RespondInternalError(c, "Failed to create menu item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": item.ID})
}

// UpdateMenuItem applies a partial update. Keys outside the patch type never reach SQL.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var patch models.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindFailed(c, "UpdateMenuItem", err)
		return
	}

	if err := h.menuService.UpdateMenuItem(patch); err != nil {
		switch {
		case errors.Is(err, services.ErrNoFieldsToUpdate):
			utils.RespondValidationFailed(c, "No valid fields", err.Error())
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, "Invalid menu item", err.Error())
		case errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found", err.Error()))
		default:
			utils.LogError(err, "UpdateMenuItem: Error from menuService.UpdateMenuItem")
			utils.RespondInternalError(c, "Failed to update menu item", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
