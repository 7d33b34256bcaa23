package handler

import (
	"strconv"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst and writes a validation error on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		common.HandleError(c, common.Validation(err.Error()))
		return false
	}
	return true
}

// versionParam parses the :version path segment (positive integer)
func versionParam(c *gin.Context) (int, bool) {
	v, err := strconv.Atoi(c.Param("version"))
	if err != nil || v < 1 {
		common.HandleError(c, common.Validation("version must be a positive integer"))
		return 0, false
	}
	return v, true
}
