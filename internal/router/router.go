package router

import (
	"github.com/roywong35/human-art-social-sub000/internal/handlers"
	"github.com/roywong35/human-art-social-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	feedHandler := handlers.NewFeedHandler()
	userHandler := handlers.NewUserHandler()
	moderationHandler := handlers.NewModerationHandler()
	appealHandler := handlers.NewAppealHandler()
	trendingHandler := handlers.NewTrendingHandler()
	notificationHandler := handlers.NewNotificationHandler()

	// 公共路由 (Public Routes)
	r.GET("/feed", feedHandler.List)                                     // 信息流
	r.GET("/posts/:pid", postHandler.Detail)                             // 帖子详情
	r.GET("/posts/:pid/report-types", moderationHandler.ListReportTypes) // 可用举报类型
	r.GET("/trending", trendingHandler.List)                             // 趋势话题榜
	r.GET("/users/:id", userHandler.Profile)                             // 用户主页

	r.POST("/signup", authHandler.Register) // 注册
	r.POST("/login", authHandler.Login)     // 登录
	r.POST("/logout", authHandler.Logout)   // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", postHandler.Create)                        // 发布帖子
		authorized.DELETE("/posts/:pid", postHandler.Delete)                 // 软删除帖子
		authorized.POST("/posts/:pid/like", postHandler.Like)                // 点赞
		authorized.POST("/posts/:pid/report", moderationHandler.SubmitReport) // 提交举报
		authorized.POST("/posts/:pid/appeal", appealHandler.Create)          // 发起申诉
		authorized.GET("/posts/:pid/appeal", appealHandler.Status)           // 申诉状态

		authorized.GET("/notifications", notificationHandler.List)              // 我的通知
		authorized.POST("/notifications/:id/read", notificationHandler.Read)    // 标记单条已读
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll) // 全部已读
	}

	// 版主路由 (Moderator Routes)
	mod := r.Group("/mod")
	mod.Use(middleware.AuthRequired(), middleware.ModeratorRequired())
	{
		mod.GET("/reports", moderationHandler.ListPendingReports)      // 待处理举报队列
		mod.POST("/reports/resolve", moderationHandler.ResolveReports) // 批量终结举报
		mod.POST("/appeals/:id/approve", appealHandler.Approve)        // 通过申诉
		mod.POST("/appeals/:id/reject", appealHandler.Reject)          // 驳回申诉
		mod.POST("/trending/invalidate", trendingHandler.Invalidate)   // 清除趋势缓存
	}
}
