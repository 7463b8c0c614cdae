package routes

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"campusnav/internal/model"
	"campusnav/internal/service/campus"
	"campusnav/internal/service/floorplan"
	"campusnav/internal/util"

	"github.com/gin-gonic/gin"
)

// CampusHandler serves building lookup and floor data
type CampusHandler struct {
	resolver *campus.Resolver
	catalog  *floorplan.Catalog
}

// NewCampusHandler creates a CampusHandler
func NewCampusHandler(resolver *campus.Resolver, catalog *floorplan.Catalog) *CampusHandler {
	return &CampusHandler{resolver: resolver, catalog: catalog}
}

// SetupCampusHandlers registers the building and room endpoints
func SetupCampusHandlers(router *gin.RouterGroup, h *CampusHandler) {
	router.GET("/buildings", h.ListBuildings)
	router.GET("/buildings/:id", h.GetBuilding)
	router.GET("/buildings/:id/floors", h.ListFloors)
	router.GET("/buildings/resolve", h.Resolve)
	router.GET("/rooms/:name", h.GetRoom)
}

type buildingResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Kind     string           `json:"kind"`
	Centroid model.GeoPoint   `json:"centroid"`
	Floors   int              `json:"floors"`
	Outline  []model.GeoPoint `json:"outline,omitempty"`
}

func (h *CampusHandler) toResponse(b model.Building, withOutline bool) buildingResponse {
	resp := buildingResponse{
		ID:       b.ID,
		Name:     b.Name,
		Kind:     b.Kind,
		Centroid: b.Centroid,
		Floors:   len(h.catalog.Floors(b.ID)),
	}
	if withOutline {
		resp.Outline = make([]model.GeoPoint, len(b.Ring))
		for i, p := range b.Ring {
			resp.Outline[i] = model.GeoPointFromOrb(p)
		}
	}
	return resp
}

// ListBuildings returns all regions in registration order, or only those
// intersecting ?bbox=minLat,minLng,maxLat,maxLng
func (h *CampusHandler) ListBuildings(c *gin.Context) {
	bound, err := util.ParseBBox(c.Query("bbox"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var all []model.Building
	if bound != nil {
		all = h.resolver.InBounds(*bound)
	} else {
		all = h.resolver.Registry().All()
	}
	resp := make([]buildingResponse, len(all))
	for i, b := range all {
		resp[i] = h.toResponse(b, false)
	}
	c.JSON(http.StatusOK, resp)
}

// GetBuilding returns one region with its outline
func (h *CampusHandler) GetBuilding(c *gin.Context) {
	b, err := h.resolver.Registry().Get(c.Param("id"))
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(b, true))
}

// Resolve returns the building containing ?lat=&lng=
func (h *CampusHandler) Resolve(c *gin.Context) {
	lat, err := parseCoordinate(c, "lat", 90)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	lng, err := parseCoordinate(c, "lng", 180)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	b, ok := h.resolver.Locate(model.GeoPoint{Lat: lat, Lng: lng})
	if !ok {
		respondError(c, http.StatusNotFound, errNoMatch)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(b, false))
}

func parseCoordinate(c *gin.Context, name string, limit float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < -limit || v > limit {
		return 0, fmt.Errorf("%s must be a number in [-%g, %g]", name, limit, limit)
	}
	return v, nil
}

// ListFloors returns the floors of a building
func (h *CampusHandler) ListFloors(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.resolver.Registry().Get(id); err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, h.catalog.Floors(id))
}

// GetRoom looks up a room by name
func (h *CampusHandler) GetRoom(c *gin.Context) {
	room, err := h.catalog.FindRoom(c.Param("name"))
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, room)
}
