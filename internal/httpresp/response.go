package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse is the envelope for collection endpoints: the items plus a
// total, so clients never have to count.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
