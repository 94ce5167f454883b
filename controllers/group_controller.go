package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube-api/services"
	"yatube-api/utils"
)

type GroupController struct {
	groupService *services.GroupService
	postService  *services.PostService
}

func NewGroupController(groupService *services.GroupService, postService *services.PostService) *GroupController {
	return &GroupController{groupService: groupService, postService: postService}
}

type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"required,max=50"`
	Description string `json:"description"`
}

func (gc *GroupController) List(c *gin.Context) {
	groups, err := gc.groupService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Posts is the group page: the group and a page of its posts.
func (gc *GroupController) Posts(c *gin.Context) {
	page, err := gc.postService.GroupPosts(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (gc *GroupController) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	group, err := gc.groupService.Create(c.Request.Context(), services.GroupInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendCreated(c, apiPrefix+"/groups/"+group.Slug+"/posts", group)
}

func (gc *GroupController) Delete(c *gin.Context) {
	if err := gc.groupService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Group deleted", nil)
}
