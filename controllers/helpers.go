package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatube-api/logs"
	"yatube-api/services"
	"yatube-api/utils"
)

const apiPrefix = "/api/v1"

// respondError maps a service error to its HTTP status.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.SendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAuthor):
		utils.SendError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.SendError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrUsernameTaken):
		utils.SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrInvalidImage),
		errors.Is(err, services.ErrInvalidGroup),
		errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrEmptyText),
		errors.Is(err, services.ErrPasswordTooLong):
		utils.SendValidationError(c, err.Error())
	default:
		_ = c.Error(err)
		logs.LogJSON("ERROR", "Unhandled service error", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		utils.SendErrorMessage(c, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
	}
}

// postIDParam parses the :id segment. Invalid ids are reported as unknown
// posts.
func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.SendError(c, http.StatusNotFound, services.ErrPostNotFound.Error())
		return 0, false
	}
	return uint(id), true
}

func postLocation(id uint) string {
	return apiPrefix + "/posts/" + strconv.FormatUint(uint64(id), 10)
}

func profileLocation(username string) string {
	return apiPrefix + "/profiles/" + username
}
