package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"devflow/internal/middleware"
	"devflow/internal/models"
	"devflow/internal/services"
	"devflow/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// Rate 处理点赞/点踩。:type 取 post 或 comment，
// 表单 button 取 like / dislike，落库为 +1 / -1。
func (h *VoteHandler) Rate(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	itemType := c.Param("type")
	id := utils.StringToUint(c.Param("id"))
	value := services.VoteValue(c.PostForm("button"))

	var postID uint
	var err error
	switch itemType {
	case "post":
		postID = id
		err = services.LikePost(id, user.ID, value)
	case "comment":
		postID, err = services.LikeComment(id, user.ID, value)
	default:
		c.Status(http.StatusBadRequest)
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "目标不存在")
			return
		}
		RenderError(c, http.StatusInternalServerError, "投票失败")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", postID))
}
