package api

import (
	"time"

	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/services"
	"github.com/Sandanu06/citf-backend-v1/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, files fileDeps, hasher services.PasswordHasher, maxBodyBytes int64, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(db, files.receiver, files.cleaner, maxBodyBytes),
		scrollImageHandler: newScrollImageHandler(db.ScrollImageRepo(), files.receiver, files.cleaner, maxBodyBytes),
		videoHandler:       newVideoHandler(db.VideoRepo(), maxBodyBytes),
		authHandler:        newAuthHandler(db.UserRepo(), hasher, maxBodyBytes),
		healthHandler:      newHealthHandler(db, startupTime),
	}
}

// fileDeps bundles the upload side of the file store.
type fileDeps struct {
	store    storage.FileStore
	route    string
	receiver *storage.Receiver
	cleaner  *storage.Cleaner
}

func newFileDeps(store storage.FileStore, route string) fileDeps {
	route = storage.NormalizeRoute(route)
	return fileDeps{
		store:    store,
		route:    route,
		receiver: storage.NewReceiver(store, route),
		cleaner:  storage.NewCleaner(store, route),
	}
}
