package httpresp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const HeaderTotalCount = "X-Total-Count"

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Text answers 200 with a plain-text confirmation.
func Text(c *gin.Context, message string) {
	c.String(http.StatusOK, message)
}

// List writes a bare JSON array ([] when empty) and reports the size in a
// header, so clients that expect an array keep working.
func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.Header(HeaderTotalCount, strconv.Itoa(len(data)))
	c.JSON(http.StatusOK, data)
}
