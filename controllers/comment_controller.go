// File: /controllers/comment_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube-api/middleware"
	"yatube-api/services"
	"yatube-api/utils"
)

type CommentController struct {
	postService *services.PostService
}

func NewCommentController(postService *services.PostService) *CommentController {
	return &CommentController{postService: postService}
}

type CreateCommentRequest struct {
	Text string `json:"text" form:"text"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	comment, err := cc.postService.AddComment(c.Request.Context(), postID, c.GetString(middleware.UserIDKey), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendCreated(c, postLocation(postID), comment)
}

func (cc *CommentController) GetComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	comments, err := cc.postService.Comments(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
