package routes

import (
	"net/http"

	"campusnav/internal/model"
	"campusnav/internal/service/floorplan"
	"campusnav/internal/service/storage"
	"campusnav/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FloorplanHandler drives floor-plan viewer sessions
type FloorplanHandler struct {
	catalog  *floorplan.Catalog
	sessions storage.Storage[string, *floorplan.Session]
	logger   *zap.Logger
}

// NewFloorplanHandler creates a FloorplanHandler
func NewFloorplanHandler(catalog *floorplan.Catalog, sessions storage.Storage[string, *floorplan.Session], logger *zap.Logger) *FloorplanHandler {
	return &FloorplanHandler{catalog: catalog, sessions: sessions, logger: logger}
}

// SetupFloorplanHandlers registers the floor-plan viewer endpoints
func SetupFloorplanHandlers(router *gin.RouterGroup, h *FloorplanHandler) {
	sessions := router.Group("/floorplan/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.CloseSession)
	sessions.POST("/:id/zoom", h.Zoom)
	sessions.POST("/:id/pan", h.Pan)
	sessions.POST("/:id/reset", h.Reset)
	sessions.POST("/:id/slider", h.Slider)
	sessions.POST("/:id/resize", h.Resize)
	sessions.POST("/:id/tap", h.Tap)
}

type createFloorplanRequest struct {
	BuildingID string         `json:"building_id"`
	Floor      int            `json:"floor"`
	Room       string         `json:"room"`
	Viewport   floorplan.Size `json:"viewport"`
}

type zoomRequest struct {
	Anchor floorplan.Vec `json:"anchor"`
	Scale  float64       `json:"scale" binding:"required,gt=0"`
}

type sliderRequest struct {
	Value *float64 `json:"value" binding:"required,min=0,max=1"`
}

type resizeRequest struct {
	Viewport floorplan.Size `json:"viewport"`
}

func validViewport(s floorplan.Size) bool {
	return s.Width > 0 && s.Height > 0
}

func (h *FloorplanHandler) session(c *gin.Context) (*floorplan.Session, bool) {
	id := c.Param("id")
	s, ok := h.sessions.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, errSessionNotFound)
		return nil, false
	}
	h.sessions.Touch(id)
	return s, true
}

// CreateSession opens a floor, either by building/floor or by room name.
// A room selects its own building and floor and is centred on open.
func (h *FloorplanHandler) CreateSession(c *gin.Context) {
	var req createFloorplanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !validViewport(req.Viewport) {
		respondError(c, http.StatusBadRequest, errInvalidViewport)
		return
	}

	var room *model.Room
	buildingID, index := req.BuildingID, req.Floor
	if req.Room != "" {
		r, err := h.catalog.FindRoom(req.Room)
		if err != nil {
			respondError(c, statusFor(err), err)
			return
		}
		room = &r
		buildingID, index = r.BuildingID, r.FloorIndex
	}

	floor, err := h.catalog.Floor(buildingID, index)
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}

	s := floorplan.NewSession(util.ShortUUID(), floor, req.Viewport, room)
	h.sessions.Set(s.ID, s)
	h.logger.Debug("floor plan session opened",
		zap.String("session", s.ID),
		zap.String("building", floor.BuildingID),
		zap.Int("floor", floor.Index))

	c.JSON(http.StatusCreated, s.View())
}

// GetSession returns the current viewer state
func (h *FloorplanHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// CloseSession drops a session
func (h *FloorplanHandler) CloseSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		respondError(c, http.StatusNotFound, errSessionNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// Zoom applies a pinch step around an anchor
func (h *FloorplanHandler) Zoom(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.Update(func(v *floorplan.Viewport) {
		v.Pinch(req.Anchor, req.Scale)
	}))
}

// Pan applies a drag translation
func (h *FloorplanHandler) Pan(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req floorplan.Vec
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.Update(func(v *floorplan.Viewport) {
		v.Drag(req)
	}))
}

// Reset is the double-tap gesture
func (h *FloorplanHandler) Reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Update(func(v *floorplan.Viewport) {
		v.DoubleTap()
	}))
}

// Slider pans horizontally from the slider position
func (h *FloorplanHandler) Slider(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req sliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.Update(func(v *floorplan.Viewport) {
		v.SetSlider(*req.Value)
	}))
}

// Resize refits the floor image to a new viewport size
func (h *FloorplanHandler) Resize(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if !validViewport(req.Viewport) {
		respondError(c, http.StatusBadRequest, errInvalidViewport)
		return
	}

	floor, err := h.catalog.Floor(s.BuildingID, s.FloorIndex)
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	image := floorplan.FitImage(floorplan.Size{Width: floor.ImageWidth, Height: floor.ImageHeight}, req.Viewport)
	c.JSON(http.StatusOK, s.Update(func(v *floorplan.Viewport) {
		v.Resize(req.Viewport, image)
	}))
}

// Tap returns the normalized image point and room under a tap given
// relative to the viewport centre
func (h *FloorplanHandler) Tap(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req floorplan.Vec
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	floor, err := h.catalog.Floor(s.BuildingID, s.FloorIndex)
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}

	p := s.Tap(req)
	resp := gin.H{"point": p}
	if room, found := floorplan.RoomAt(floor, p.X, p.Y); found {
		resp["room"] = room
	}
	c.JSON(http.StatusOK, resp)
}
