package handlers

import (
	"errors"
	"log"
	"net/http"

	"greensnap/internal/services"

	"github.com/gin-gonic/gin"
)

// WriteServiceError 把服务层错误映射成对外 JSON 响应
// 对外只暴露不透明承诺和封禁/重复布尔量，
// 派生细节（哈希算法、盐、编码）永远不出现在任何响应里
func WriteServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var dErr *services.DuplicateSubmissionError
	var bErr *services.BannedCommitmentError
	var tErr *services.StorageTimeoutError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"field":   vErr.Field,
			"message": vErr.Message,
		})
	case errors.As(err, &dErr):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate"})
	case errors.As(err, &bErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error":       "banned",
			"strikeCount": bErr.StrikeCount,
		})
	case errors.As(err, &tErr):
		// 所有派生都是确定性的，重试安全
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error":     "storage_timeout",
			"retryable": true,
		})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
