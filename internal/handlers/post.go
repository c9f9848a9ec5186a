package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"devflow/internal/middleware"
	"devflow/internal/models"
	"devflow/internal/services"
	"devflow/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	mailService *services.MailService
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		mailService: services.NewMailService(),
	}
}

// Detail 文章详情页：正文、评论、相关文章，并为登录用户记一次浏览
func (h *PostHandler) Detail(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	comments := services.PostComments(post.ID)
	related := services.RelatedPosts(post)
	rating := services.PostRating(post.ID)

	likedByUser := false
	likedComments := make(map[uint]bool)
	if user := currentUser(c); user != nil {
		// 登录用户的首次浏览记一条 Show，匿名浏览不记录
		services.RecordShow(post.ID, user.ID)

		likedByUser = services.UserLikedPost(post.ID, user.ID)
		for _, comment := range comments {
			if services.UserLikedComment(comment.ID, user.ID) {
				likedComments[comment.ID] = true
			}
		}
	}

	Render(c, http.StatusOK, "detail.html", gin.H{
		"Title":         post.Title,
		"Post":          post,
		"PostContent":   utils.RenderMarkdown(post.Content),
		"PostCode":      utils.RenderCode(post.ContentCode),
		"PostRating":    rating,
		"Comments":      comments,
		"RelatedPosts":  related,
		"LikedByUser":   likedByUser,
		"LikedComments": likedComments,
		"TagsString":    services.TagsToString(post.Tags),
	})
}

// ShowCreate 发布文章表单
func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "create.html", gin.H{"Title": "发布文章"})
}

// Create 提交发布
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	in := services.PostInput{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		ContentCode: c.PostForm("content_code"),
		Tags:        c.PostForm("tags"),
	}

	post, err := services.CreatePost(user.ID, in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			Render(c, http.StatusBadRequest, "create.html", gin.H{
				"Error": "标题、正文和标签不能为空",
				"Input": in,
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "发布失败")
		return
	}

	utils.GetCache().Delete(sidebarCacheKey)
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// ShowEdit 编辑表单，标签串回填
func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	// 只有作者能编辑
	if post.UserID == nil || *post.UserID != user.ID {
		RenderError(c, http.StatusForbidden, "无权编辑此文章")
		return
	}

	Render(c, http.StatusOK, "edit.html", gin.H{
		"Title":      "编辑文章",
		"Post":       post,
		"TagsString": services.TagsToString(post.Tags),
	})
}

// Update 提交编辑或删除（表单 button 区分 save / delete）
func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	if post.UserID == nil || *post.UserID != user.ID {
		RenderError(c, http.StatusForbidden, "无权操作此文章")
		return
	}

	if c.PostForm("button") == "delete" {
		if err := services.DeletePost(post.ID); err != nil {
			RenderError(c, http.StatusInternalServerError, "删除失败")
			return
		}
		utils.GetCache().Delete(sidebarCacheKey)
		c.Redirect(http.StatusFound, "/")
		return
	}

	in := services.PostInput{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		ContentCode: c.PostForm("content_code"),
		Tags:        c.PostForm("tags"),
	}

	updated, err := services.UpdatePost(post.ID, in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			Render(c, http.StatusBadRequest, "edit.html", gin.H{
				"Error":      "标题、正文和标签不能为空",
				"Post":       post,
				"TagsString": services.TagsToString(post.Tags),
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "保存失败")
		return
	}

	utils.GetCache().Delete(sidebarCacheKey)
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", updated.ID))
}

// CreateComment 发表评论
func (h *PostHandler) CreateComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))

	body := c.PostForm("comment")
	if _, err := services.CreateComment(postID, user.ID, body); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "文章不存在")
			return
		}
		// 空评论直接回详情页，表单层会提示
		c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}

// DeleteComment 删除评论，仅评论作者或文章作者可操作
func (h *PostHandler) DeleteComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	commentID := utils.StringToUint(c.Param("id"))

	comment, err := services.GetComment(commentID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "评论不存在")
		return
	}

	if !canDeleteComment(user, comment) {
		RenderError(c, http.StatusForbidden, "无权删除此评论")
		return
	}

	postID, err := services.DeleteComment(comment.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "删除失败")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}

// canDeleteComment 评论作者或所在文章的作者可以删除评论
func canDeleteComment(user *models.User, comment *models.Comment) bool {
	if comment.UserID != nil && *comment.UserID == user.ID {
		return true
	}
	post, err := services.GetPost(comment.PostID)
	if err != nil {
		return false
	}
	return post.UserID != nil && *post.UserID == user.ID
}

// ShowSendPost 邮件分享表单
func (h *PostHandler) ShowSendPost(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	Render(c, http.StatusOK, "send_post.html", gin.H{
		"Title": "分享文章",
		"Post":  post,
	})
}

// SendPost 把文章渲染成邮件发给指定收件人
func (h *PostHandler) SendPost(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "文章不存在")
		return
	}

	receiver := strings.TrimSpace(c.PostForm("receiver"))
	topic := strings.TrimSpace(c.PostForm("topic"))
	if receiver == "" || topic == "" {
		Render(c, http.StatusBadRequest, "send_post.html", gin.H{
			"Error": "收件人和主题不能为空",
			"Post":  post,
		})
		return
	}

	h.mailService.SendPost(receiver, topic, post.ID, post.Title,
		utils.RenderMarkdown(post.Content), utils.RenderCode(post.ContentCode))

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}
