package router

import (
	"devflow/internal/handlers"
	"devflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	feedHandler := handlers.NewFeedHandler()
	postHandler := handlers.NewPostHandler()
	voteHandler := handlers.NewVoteHandler()
	userHandler := handlers.NewUserHandler()

	// 公共路由 (Public Routes)
	r.GET("/", feedHandler.Index)            // 首页 - 全部文章 + 热门榜 + 标签云
	r.GET("/post/tag/:id", feedHandler.ByTag) // 标签下的文章列表
	r.GET("/post/date", feedHandler.ByDate)   // 按时间窗口筛选
	r.GET("/search", feedHandler.Search)      // 关键词搜索
	r.GET("/post/:id", postHandler.Detail)    // 文章详情页

	r.GET("/signup", authHandler.ShowRegister) // 注册页面
	r.POST("/signup", authHandler.Register)    // 提交注册
	r.GET("/login", authHandler.ShowLogin)     // 登录页面
	r.POST("/login", authHandler.Login)        // 提交登录
	r.GET("/logout", authHandler.Logout)       // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/post/create", postHandler.ShowCreate)        // 发布文章页面
		authorized.POST("/post/create", postHandler.Create)           // 提交发布文章
		authorized.GET("/post/edit/:id", postHandler.ShowEdit)        // 编辑文章页面
		authorized.POST("/post/edit/:id", postHandler.Update)         // 提交更新或删除
		authorized.POST("/post/:id/comment", postHandler.CreateComment) // 发表评论
		authorized.POST("/comment/delete/:id", postHandler.DeleteComment) // 删除评论
		authorized.POST("/rating/:type/:id", voteHandler.Rate)        // 点赞/点踩

		authorized.GET("/profile", userHandler.Profile) // 个人主页

		authorized.GET("/send_post/:id", postHandler.ShowSendPost) // 邮件分享表单
		authorized.POST("/send_post/:id", postHandler.SendPost)    // 发送文章邮件
	}
}
