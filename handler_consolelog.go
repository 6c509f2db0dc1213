package logdash

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConsoleLogs
// @Summary Get the console log
// @Description Returns reported failures and added logs, newest first
// @Tags ConsoleLog
// @Produce json
// @Param operation query string false "query, count or submit"
// @Success 200 {array} model.ConsoleLogDTO
// @Router /v1/console-logs [GET]
func (api *api) GetConsoleLogs(c *gin.Context) {
	c.JSON(http.StatusOK, api.consoleLogService.GetConsoleLogs(c.Query("operation")))
}
