package routes

import (
	"net/http"

	"campusnav/internal/model"
	"campusnav/internal/service/mission"
	"campusnav/internal/service/navigation"
	"campusnav/internal/service/storage"
	"campusnav/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NavigationHandler drives navigation sessions and mission progress
type NavigationHandler struct {
	sessions storage.Storage[string, *navigation.Session]
	tracker  *mission.Tracker
	logger   *zap.Logger
}

// NewNavigationHandler creates a NavigationHandler
func NewNavigationHandler(sessions storage.Storage[string, *navigation.Session], tracker *mission.Tracker, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{sessions: sessions, tracker: tracker, logger: logger}
}

// SetupNavigationHandlers registers session and mission endpoints
func SetupNavigationHandlers(router *gin.RouterGroup, h *NavigationHandler) {
	router.GET("/missions", h.ListMissions)

	sessions := router.Group("/navigation/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.CloseSession)
	sessions.POST("/:id/location", h.UpdateLocation)
	sessions.POST("/:id/heading", h.UpdateHeading)
	sessions.POST("/:id/authorization", h.UpdateAuthorization)
}

type createNavigationRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

type locationRequest struct {
	Lat *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" binding:"required,min=-180,max=180"`
}

type headingRequest struct {
	Degrees  *float64 `json:"degrees" binding:"required"`
	Accuracy float64  `json:"accuracy"`
}

type authorizationRequest struct {
	Status navigation.AuthorizationStatus `json:"status" binding:"required"`
}

type targetIndicator struct {
	MissionID string  `json:"mission_id"`
	Bearing   float64 `json:"bearing"`
	Relative  float64 `json:"relative"`
}

func (h *NavigationHandler) session(c *gin.Context) (*navigation.Session, bool) {
	id := c.Param("id")
	s, ok := h.sessions.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, errSessionNotFound)
		return nil, false
	}
	h.sessions.Touch(id)
	return s, true
}

// ListMissions returns the mission catalogue with ?player_id= progress
func (h *NavigationHandler) ListMissions(c *gin.Context) {
	missions, err := h.tracker.Missions(c.Request.Context(), c.Query("player_id"))
	if err != nil {
		h.logger.Error("failed to read mission progress", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, missions)
}

// CreateSession opens a navigation session for a player
func (h *NavigationHandler) CreateSession(c *gin.Context) {
	var req createNavigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	missions, err := h.tracker.Missions(c.Request.Context(), req.PlayerID)
	if err != nil {
		h.logger.Error("failed to read mission progress", zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	s := navigation.NewSession(util.ShortUUID(), req.PlayerID)
	h.sessions.Set(s.ID, s)
	h.logger.Debug("navigation session opened",
		zap.String("session", s.ID),
		zap.String("player", req.PlayerID))

	c.JSON(http.StatusCreated, gin.H{
		"session":  s.Snapshot(),
		"missions": missions,
	})
}

// GetSession returns the session snapshot
func (h *NavigationHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// CloseSession drops a session
func (h *NavigationHandler) CloseSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		respondError(c, http.StatusNotFound, errSessionNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateLocation records a position and evaluates every mission from it
func (h *NavigationHandler) UpdateLocation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	p := model.NewGeoPoint(*req.Lat, *req.Lng)
	if !s.OnLocation(p) {
		respondError(c, http.StatusForbidden, errNotAuthorized)
		return
	}

	statuses, err := h.tracker.OnLocation(c.Request.Context(), s.PlayerID, p)
	if err != nil {
		h.logger.Error("failed to evaluate missions",
			zap.String("session", s.ID),
			zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  s.Snapshot(),
		"missions": statuses,
	})
}

// UpdateHeading feeds a compass reading and returns the smoothed heading
// with the compass indicator angle of every open mission
func (h *NavigationHandler) UpdateHeading(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req headingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	heading, accepted := s.OnHeading(*req.Degrees, req.Accuracy)

	indicators := []targetIndicator{}
	if pos, known := s.Position(); known {
		missions, err := h.tracker.Missions(c.Request.Context(), s.PlayerID)
		if err != nil {
			respondError(c, statusFor(err), err)
			return
		}
		for _, m := range missions {
			if m.Completed {
				continue
			}
			bearing := navigation.BearingDegrees(pos, m.Point)
			indicators = append(indicators, targetIndicator{
				MissionID: m.ID,
				Bearing:   bearing,
				Relative:  navigation.RelativeBearing(bearing, heading),
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"heading":  heading,
		"accepted": accepted,
		"targets":  indicators,
	})
}

// UpdateAuthorization applies a location permission change
func (h *NavigationHandler) UpdateAuthorization(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req authorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !req.Status.Valid() {
		respondError(c, http.StatusBadRequest, errInvalidAuthorization)
		return
	}

	s.OnAuthorizationChange(req.Status)
	c.JSON(http.StatusOK, s.Snapshot())
}
