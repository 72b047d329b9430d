package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/anatomica-backend/internal/services"
)

type DigestHandler struct {
	digestService services.DigestService
}

func NewDigestHandler(digestService services.DigestService) *DigestHandler {
	return &DigestHandler{digestService: digestService}
}

func (dh *DigestHandler) GetDigest(c *gin.Context) {
	maxItems := 0
	if raw := c.Query("max_items"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_items"})
			return
		}
		maxItems = n
	}
	resp, err := dh.digestService.GetDigest(c.Request.Context(), maxItems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
