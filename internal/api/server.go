package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/amady/vitrine/internal/model"
)

// Server wraps the HTTP server for the admin panel API.
type Server struct {
	httpServer *http.Server
	watcher    *ContentWatcher
	wsHub      *WebSocketHub
	siteCtx    *SiteContext
}

// NewServer creates a new server with the given handler, port, and site
// context. The content tree is watched so out-of-band edits invalidate the
// cached collections and reach connected clients.
func NewServer(handler *Handler, port int, siteCtx *SiteContext) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub()
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	handler.SetNotifier(wsHub)

	watcher, err := NewContentWatcher(siteCtx.Paths.ContentRoot())
	if err != nil {
		log.Printf("Warning: failed to create content watcher: %v", err)
		watcher = nil
	} else {
		watcher.Subscribe(wsHub)
		watcher.Subscribe(&cacheRefresher{siteCtx: siteCtx, hub: wsHub})
	}

	wrapped := Logging(Cors(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
		siteCtx: siteCtx,
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Printf("Warning: failed to start content watcher: %v", err)
		}
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// cacheRefresher re-fetches a collection when one of its card documents
// changes on disk, so the in-memory cache tracks external edits.
type cacheRefresher struct {
	siteCtx *SiteContext
	hub     *WebSocketHub
}

func (r *cacheRefresher) OnContentChange(change ContentChange) {
	if change.Kind != ContentChangeKindCard {
		return
	}
	collection, ok := model.ParseCollection(change.Collection)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if r.siteCtx.Manager.Refresh(ctx, collection) {
		r.hub.CollectionRefreshed(collection.String())
	}
}
