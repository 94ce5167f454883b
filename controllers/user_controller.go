// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube-api/middleware"
	"yatube-api/services"
	"yatube-api/utils"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Me returns the authenticated user.
func (uc *UserController) Me(c *gin.Context) {
	user, err := uc.userService.Get(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes a user and everything they wrote. Admin only.
func (uc *UserController) Delete(c *gin.Context) {
	if err := uc.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "User deleted", nil)
}
