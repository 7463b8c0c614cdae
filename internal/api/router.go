package api

import (
	routes "campusnav/internal/api/handlers"
	"campusnav/internal/service/campus"
	"campusnav/internal/service/floorplan"
	"campusnav/internal/service/mission"
	"campusnav/internal/service/navigation"
	"campusnav/internal/service/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies groups what the handlers need
type Dependencies struct {
	Info               map[string]string
	Resolver           *campus.Resolver
	Catalog            *floorplan.Catalog
	Tracker            *mission.Tracker
	NavigationSessions storage.Storage[string, *navigation.Session]
	FloorplanSessions  storage.Storage[string, *floorplan.Session]
	Logger             *zap.Logger
}

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, deps Dependencies) {
	r.Use(RequestID(), Logger(deps.Logger), Recovery(deps.Logger))

	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), deps.Info, map[string]routes.Counter{
		"navigation": deps.NavigationSessions,
		"floorplan":  deps.FloorplanSessions,
	})

	routes.SetupCampusHandlers(api, routes.NewCampusHandler(deps.Resolver, deps.Catalog))
	routes.SetupNavigationHandlers(api, routes.NewNavigationHandler(deps.NavigationSessions, deps.Tracker, deps.Logger))
	routes.SetupFloorplanHandlers(api, routes.NewFloorplanHandler(deps.Catalog, deps.FloorplanSessions, deps.Logger))
}
