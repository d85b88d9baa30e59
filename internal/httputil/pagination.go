package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// History pages default to the stored history size; callers can raise the
// limit up to maxPageSize for wider views.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePagination reads and validates the offset and limit query parameters.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offsetStr := c.DefaultQuery("offset", "0")
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultPageSize))
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > maxPageSize {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", maxPageSize)
	}

	return offset, limit, nil
}
