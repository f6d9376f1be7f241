package handlers

import (
	"errors"
	"net/http"

	"greensnap/internal/services"
	"greensnap/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

type strikeRequest struct {
	Commitment string `json:"commitment"`
	Reason     string `json:"reason"`
}

// AddStrike 给承诺记一次违规，达到阈值自动封禁
func (h *AdminHandler) AddStrike(c *gin.Context) {
	var req strikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid request body"})
		return
	}

	count, banned, err := services.AddStrike(req.Commitment, req.Reason)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strikeCount": count,
		"banned":      banned,
	})
}

// StrikeStatus 查询承诺的违规状态
func (h *AdminHandler) StrikeStatus(c *gin.Context) {
	commitment := c.Param("commitment")

	count, banned, err := services.CheckStatus(commitment)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	reasons, err := services.StrikeReasons(commitment)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strikeCount": count,
		"banned":      banned,
		"reasons":     reasons,
	})
}

// ListFlagged 被标记提交的复核列表，支持按等级/分类过滤
func (h *AdminHandler) ListFlagged(c *gin.Context) {
	limit := utils.ClampInt(utils.StringToInt(c.Query("limit")), 0, 200)

	subs, err := services.ListFlagged(c.Query("risk_level"), c.Query("classification"), limit)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}

// ListAlerts 复核提示列表
func (h *AdminHandler) ListAlerts(c *gin.Context) {
	unackedOnly := c.Query("unacked") == "1"
	limit := utils.ClampInt(utils.StringToInt(c.Query("limit")), 0, 200)

	alerts, err := services.ListReviewAlerts(unackedOnly, limit)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// AckAlert 确认一条复核提示
func (h *AdminHandler) AckAlert(c *gin.Context) {
	if err := services.AcknowledgeAlert(c.Param("aid")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true})
}
