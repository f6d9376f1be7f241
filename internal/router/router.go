package router

import (
	"greensnap/internal/handlers"
	"greensnap/internal/middleware"
	"greensnap/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	submissionHandler := handlers.NewSubmissionHandler()
	adminHandler := handlers.NewAdminHandler()

	// 匿名提交接口 (Public API)
	api := r.Group("/api")
	api.Use(middleware.EnsureSessionSecret(), middleware.LoadGrant())
	{
		api.POST("/submissions", submissionHandler.Create)    // 提交匿名分类
		api.GET("/submissions/:sid", submissionHandler.Detail) // 查询提交（仅匿名区域）
	}

	// 管理接口：复核队列对 reviewer 开放，违规操作仅限 admin
	review := r.Group("/admin")
	review.Use(middleware.GrantRequired(models.RoleReviewer))
	{
		review.GET("/submissions/flagged", adminHandler.ListFlagged) // 被标记提交列表
		review.GET("/alerts", adminHandler.ListAlerts)               // 复核提示列表
		review.POST("/alerts/:aid/ack", adminHandler.AckAlert)       // 确认提示
	}

	enforce := r.Group("/admin")
	enforce.Use(middleware.GrantRequired(models.RoleAdmin))
	{
		enforce.POST("/strikes", adminHandler.AddStrike)                 // 记违规
		enforce.GET("/strikes/:commitment", adminHandler.StrikeStatus)   // 查违规状态
	}
}
