package handlers

import (
	"fmt"
	"net/http"
	"time"

	"rp_admin_backend/internal/services"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the analytics and finance dashboards.
type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.reportService.GetAnalytics(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetAnalytics: Error from reportService.GetAnalytics")
		utils.RespondInternalError(c, "Failed to build analytics", err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (h *ReportHandler) GetFinance(c *gin.Context) {
	finance, err := h.reportService.GetFinance()
	if err != nil {
		utils.LogError(err, "GetFinance: Error from reportService.GetFinance")
		utils.RespondInternalError(c, "Failed to build finance overview", err)
		return
	}
	c.JSON(http.StatusOK, finance)
}

// ExportFinance streams sales and purchases as an XLSX workbook.
func (h *ReportHandler) ExportFinance(c *gin.Context) {
	workbook, err := h.reportService.ExportFinance()
	if err != nil {
		utils.LogError(err, "ExportFinance: Error from reportService.ExportFinance")
		utils.RespondInternalError(c, "Failed to export finance data", err)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("finance-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := workbook.Write(c.Writer); err != nil {
		utils.LogError(err, "ExportFinance: failed to write workbook")
	}
}
