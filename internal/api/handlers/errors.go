package routes

import (
	"errors"
	"net/http"

	"campusnav/internal/service/campus"
	"campusnav/internal/service/floorplan"
	"campusnav/internal/service/mission"

	"github.com/gin-gonic/gin"
)

var (
	errSessionNotFound = errors.New("session not found")
	errNoMatch         = errors.New("no building at this position")
	errNotAuthorized   = errors.New("location access not authorized")

	errInvalidAuthorization = errors.New("unknown authorization status")
	errInvalidViewport      = errors.New("viewport must have a positive size")
)

func respondError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, campus.ErrBuildingNotFound),
		errors.Is(err, floorplan.ErrFloorNotFound),
		errors.Is(err, floorplan.ErrRoomNotFound),
		errors.Is(err, mission.ErrMissionNotFound),
		errors.Is(err, errSessionNotFound),
		errors.Is(err, errNoMatch):
		return http.StatusNotFound
	case errors.Is(err, errNotAuthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
