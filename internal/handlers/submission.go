package handlers

import (
	"errors"
	"net/http"

	"greensnap/internal/middleware"
	"greensnap/internal/models"
	"greensnap/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmissionHandler struct{}

func NewSubmissionHandler() *SubmissionHandler {
	return &SubmissionHandler{}
}

type submitRequest struct {
	ContentHash    string  `json:"contentHash"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Classification string  `json:"classification"`
	SessionSecret  string  `json:"sessionSecret"`
	PrivacyLevel   string  `json:"privacyLevel"`
}

// Create 处理匿名提交
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid request body"})
		return
	}

	// 请求体里显式的 sessionSecret 优先，否则用会话层补发的；
	// 两者都没有时走公共池（有意保留的降级行为）
	secret := req.SessionSecret
	if secret == "" {
		if v, ok := c.Get(middleware.SessionSecretKey); ok {
			secret, _ = v.(string)
		}
	}

	// public 隐私级别仅限携带管理授权的请求
	_, hasGrant := c.Get(middleware.GrantKey)

	result, err := services.Submit(services.SubmitInput{
		ContentHash:    req.ContentHash,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Classification: req.Classification,
		SessionSecret:  secret,
		PrivacyLevel:   models.PrivacyLevel(req.PrivacyLevel),
		AllowPublic:    hasGrant,
	})
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sid":        result.Sid,
		"commitment": result.Commitment,
		"nullifier":  result.Nullifier,
		"zone": gin.H{
			"centerLat": result.Zone.CenterLat,
			"centerLng": result.Zone.CenterLng,
			"radiusKm":  result.Zone.RadiusKm,
		},
		"classification": result.Classification,
		"points":         result.Points,
		"flagged":        result.Flagged,
		"riskLevel":      result.RiskLevel,
	})
}

// Detail 按对外 ID 查询提交（只含匿名区域，没有精确坐标可泄露）
func (h *SubmissionHandler) Detail(c *gin.Context) {
	sub, err := services.GetSubmission(c.Param("sid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		WriteServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
