// File: /controllers/post_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube-api/middleware"
	"yatube-api/services"
	"yatube-api/utils"
)

type PostController struct {
	postService *services.PostService
}

func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// PostRequest is bound from JSON or from a multipart form. The image can only
// be sent with the latter.
type PostRequest struct {
	Text  string `json:"text" form:"text"`
	Group uint   `json:"group" form:"group"`
}

func (pc *PostController) Index(c *gin.Context) {
	page, err := pc.postService.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (pc *PostController) Detail(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	detail, err := pc.postService.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// FollowIndex is the viewer's feed of followed authors.
func (pc *PostController) FollowIndex(c *gin.Context) {
	page, err := pc.postService.FollowFeed(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (pc *PostController) Create(c *gin.Context) {
	input, cleanup, ok := bindPost(c)
	if !ok {
		return
	}
	defer cleanup()

	post, err := pc.postService.Create(c.Request.Context(), c.GetString(middleware.UserIDKey), input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendCreated(c, profileLocation(post.Author.Username), post)
}

func (pc *PostController) Update(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	input, cleanup, ok := bindPost(c)
	if !ok {
		return
	}
	defer cleanup()

	post, err := pc.postService.Update(c.Request.Context(), id, c.GetString(middleware.UserIDKey), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", postLocation(post.ID))
	c.JSON(http.StatusOK, post)
}

func (pc *PostController) Delete(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := pc.postService.Delete(c.Request.Context(), id, c.GetString(middleware.UserIDKey)); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Post deleted", nil)
}

// bindPost reads the post fields and the optional image. cleanup closes the
// uploaded file.
func bindPost(c *gin.Context) (services.PostInput, func(), bool) {
	noop := func() {}

	var req PostRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return services.PostInput{}, noop, false
	}
	input := services.PostInput{Text: req.Text, GroupID: req.Group}

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return input, noop, true
	}

	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, noop, true
		}
		utils.SendValidationError(c, err.Error())
		return services.PostInput{}, noop, false
	}

	file, err := header.Open()
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return services.PostInput{}, noop, false
	}

	input.Image = &services.ImageUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	}
	return input, func() { _ = file.Close() }, true
}
