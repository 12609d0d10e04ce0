package handlers

import (
	"errors"
	"net/http"

	"rp_admin_backend/internal/services"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

func (h *SaleHandler) GetSales(c *gin.Context) {
	sales, err := h.saleService.ListSales()
	if err != nil {
		utils.LogError(err, "GetSales: Error from saleService.ListSales")
		utils.RespondInternalError(c, "Failed to fetch sales", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// CreateSale records a bill and answers with its generated bill number.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req services.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "total_amount, sale_date required", err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, "total_amount, sale_date required", err.Error())
			return
		}
		utils.LogError(err, "CreateSale: Error from saleService.CreateSale")
		utils.RespondInternalError(c, "Failed to create sale", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sale.ID, "bill_number": sale.BillNumber})
}

func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sale, err := h.saleService.GetSale(id)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found", err.Error()))
			return
		}
		utils.LogError(err, "GetSaleByID: Error from saleService.GetSale")
		utils.RespondInternalError(c, "Failed to fetch sale", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}
