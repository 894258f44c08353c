package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/apperr"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, apperr.BadRequest(fmt.Sprintf("invalid %s", name)))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def, lo, hi int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < lo || n > hi {
		return def
	}
	return n
}
