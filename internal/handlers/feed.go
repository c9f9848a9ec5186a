package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"devflow/internal/services"
	"devflow/internal/utils"

	"github.com/gin-gonic/gin"
)

const sidebarCacheKey = "feed:sidebar"

type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// sidebar 热门文章和标签云，带 1 分钟缓存
func (h *FeedHandler) sidebar() gin.H {
	if cached := utils.GetCache().Get(sidebarCacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			return data
		}
	}

	data := gin.H{
		"PopularPosts": services.PopularPosts(),
		"Tags":         services.TagCloud(),
	}
	utils.GetCache().Set(sidebarCacheKey, data, 1*time.Minute)
	return data
}

// Index 首页：全部文章（最新在前）+ 热门榜 + 标签云
func (h *FeedHandler) Index(c *gin.Context) {
	sidebar := h.sidebar()
	Render(c, http.StatusOK, "index.html", gin.H{
		"Title":        "DevFlow",
		"Posts":        services.AllPosts(),
		"PopularPosts": sidebar["PopularPosts"],
		"Tags":         sidebar["Tags"],
	})
}

// ByTag 某个标签下的文章列表
func (h *FeedHandler) ByTag(c *gin.Context) {
	tagID := utils.StringToUint(c.Param("id"))

	posts, err := services.PostsByTag(tagID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "标签不存在")
			return
		}
		RenderError(c, http.StatusInternalServerError, "查询失败")
		return
	}

	sidebar := h.sidebar()
	Render(c, http.StatusOK, "posts_content.html", gin.H{
		"Title": "按标签筛选",
		"Posts": posts,
		"Tags":  sidebar["Tags"],
	})
}

// ByDate 按时间窗口筛选，button 取 week / month / top
func (h *FeedHandler) ByDate(c *gin.Context) {
	window := c.Query("button")

	posts, err := services.PostsByWindow(window)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			RenderError(c, http.StatusBadRequest, "未知的筛选条件")
			return
		}
		RenderError(c, http.StatusInternalServerError, "查询失败")
		return
	}

	sidebar := h.sidebar()
	Render(c, http.StatusOK, "posts_content.html", gin.H{
		"Title":  "按时间筛选",
		"Posts":  posts,
		"Tags":   sidebar["Tags"],
		"Window": window,
	})
}

// Search 关键词搜索，空白关键词跳回首页
func (h *FeedHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	Render(c, http.StatusOK, "search.html", gin.H{
		"Title": "搜索 - " + query,
		"Query": query,
		"Posts": services.SearchPosts(query),
	})
}
