package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"rp_admin_backend/internal/services"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MaxUploadBytes caps receipt and statement uploads.
const MaxUploadBytes = 10 << 20

const (
	defaultBankTxLimit = 200
	maxBankTxLimit     = 2000
)

// ScanHandler serves receipt and bank statement ingestion.
type ScanHandler struct {
	scanService services.ScanService
}

func NewScanHandler(ss services.ScanService) *ScanHandler {
	return &ScanHandler{scanService: ss}
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > MaxUploadBytes {
		return nil, errors.New("file exceeds 10MB")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxUploadBytes))
}

func (h *ScanHandler) respondScanError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrNoTextExtracted):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeUnprocessable, "Could not extract text from image", err.Error()))
	case errors.Is(err, services.ErrNoTextToParse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeUnprocessable, "No text to parse", err.Error()))
	case errors.Is(err, services.ErrUnreadableUpload):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeUnprocessable, "Could not read uploaded file", err.Error()))
	default:
		utils.LogError(err, op+": Error from scanService")
		utils.RespondInternalError(c, "Scan failed", err)
	}
}

// ScanReceipt expects a multipart form with the image in the "receipt" field.
func (h *ScanHandler) ScanReceipt(c *gin.Context) {
	fh, err := c.FormFile("receipt")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "No file uploaded", err.Error()))
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Could not read uploaded file", err.Error()))
		return
	}

	result, err := h.scanService.ScanReceipt(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		h.respondScanError(c, "ScanReceipt", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type statementTextRequest struct {
	Text string `json:"text"`
}

// ScanBankStatement accepts either a multipart "statement" file or a JSON body {"text": ...}.
func (h *ScanHandler) ScanBankStatement(c *gin.Context) {
	ctx := c.Request.Context()

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("statement")
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "No file uploaded", err.Error()))
			return
		}
		data, err := readUpload(fh)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Could not read uploaded file", err.Error()))
			return
		}
		result, err := h.scanService.ScanBankStatement(ctx, fh.Filename, data)
		if err != nil {
			h.respondScanError(c, "ScanBankStatement", err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	var req statementTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "ScanBankStatement", err)
		return
	}
	result, err := h.scanService.ParseStatementText(ctx, req.Text)
	if err != nil {
		h.respondScanError(c, "ScanBankStatement", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SaveBankTransactions persists the reviewed transaction list.
func (h *ScanHandler) SaveBankTransactions(c *gin.Context) {
	var req services.SaveTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if len(req.Transactions) > 0 {
			utils.RespondValidationFailed(c, "Invalid transactions", err.Error())
			return
		}
		utils.RespondValidationFailed(c, "transactions array required", err.Error())
		return
	}

	result, err := h.scanService.SaveBankTransactions(req.Transactions)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoTransactions):
			utils.RespondValidationFailed(c, "transactions array required", err.Error())
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, "Invalid transactions", err.Error())
		default:
			utils.LogError(err, "SaveBankTransactions: Error from scanService.SaveBankTransactions")
			utils.RespondInternalError(c, "Failed to save transactions", err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ScanHandler) GetBankTransactions(c *gin.Context) {
	txs, err := h.scanService.ListBankTransactions(queryLimit(c, defaultBankTxLimit, maxBankTxLimit))
	if err != nil {
		utils.LogError(err, "GetBankTransactions: Error from scanService.ListBankTransactions")
		utils.RespondInternalError(c, "Failed to fetch bank transactions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
