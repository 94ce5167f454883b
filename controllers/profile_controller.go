package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube-api/middleware"
	"yatube-api/services"
	"yatube-api/utils"
)

type ProfileController struct {
	postService   *services.PostService
	followService *services.FollowService
}

func NewProfileController(postService *services.PostService, followService *services.FollowService) *ProfileController {
	return &ProfileController{postService: postService, followService: followService}
}

func (pc *ProfileController) Get(c *gin.Context) {
	profile, err := pc.postService.Profile(
		c.Request.Context(),
		c.Param("username"),
		c.GetString(middleware.UserIDKey),
		c.Query("page"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Follow answers 201 for a new subscription and 200 when it already existed.
func (pc *ProfileController) Follow(c *gin.Context) {
	username := c.Param("username")
	created, err := pc.followService.Follow(c.Request.Context(), c.GetString(middleware.UserIDKey), username)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"following": true, "author": username}
	if created {
		utils.SendCreated(c, profileLocation(username), body)
		return
	}
	c.Header("Location", profileLocation(username))
	c.JSON(http.StatusOK, body)
}

func (pc *ProfileController) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := pc.followService.Unfollow(c.Request.Context(), c.GetString(middleware.UserIDKey), username); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", profileLocation(username))
	c.JSON(http.StatusOK, gin.H{"following": false, "author": username})
}

func (pc *ProfileController) Followers(c *gin.Context) {
	users, err := pc.followService.Followers(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

func (pc *ProfileController) Following(c *gin.Context) {
	users, err := pc.followService.Following(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}
