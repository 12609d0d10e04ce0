package handlers

import (
	"net/http"
	"strconv"

	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// bindFailed answers a body that failed to bind or validate.
func bindFailed(c *gin.Context, handler string, err error) {
	utils.LogDebug(handler+": invalid payload", map[string]interface{}{"error": err.Error()})
	utils.RespondValidationFailed(c, "Invalid request payload", err.Error())
}

// pathID parses the :id path parameter, answering 400 when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := utils.ParsePositiveID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid ID", err.Error()))
		return 0, false
	}
	return id, true
}

// queryLimit reads ?limit=, falling back to def and capping at ceiling.
func queryLimit(c *gin.Context, def, ceiling int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
