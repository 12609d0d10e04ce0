package handlers

import (
	"errors"
	"net/http"

	"rp_admin_backend/internal/services"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler holds the purchase service.
type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

func NewPurchaseHandler(ps services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: ps}
}

func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	purchases, err := h.purchaseService.ListPurchases()
	if err != nil {
		utils.LogError(err, "GetPurchases: Error from purchaseService.ListPurchases")
		utils.RespondInternalError(c, "Failed to fetch purchases", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req services.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "vendor, total_amount, purchase_date required", err.Error())
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "vendor, total_amount, purchase_date required", err.Error())
			return
		}
		utils.LogError(err, "CreatePurchase: Error from purchaseService.CreatePurchase")
		utils.RespondInternalError(c, "Failed to create purchase", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": purchase.ID})
}

func (h *PurchaseHandler) GetPurchaseByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	purchase, err := h.purchaseService.GetPurchase(id)
	if err != nil {
		if errors.Is(err, services.ErrPurchaseNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Purchase not found", err.Error()))
			return
		}
		utils.LogError(err, "GetPurchaseByID: Error from purchaseService.GetPurchase")
		utils.RespondInternalError(c, "Failed to fetch purchase", err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}
