package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/amady/vitrine/internal/config"
	"github.com/amady/vitrine/internal/manager"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/store"
)

func setupTestHandler(t *testing.T) (*Handler, *SiteContext, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "vitrine-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	paths := config.NewPaths(dir, "")
	docs := store.NewFileStore(paths)
	blobs := store.NewBlobStore(paths, "http://localhost:3000")
	mgr := manager.New(docs, blobs, nil)

	siteCtx := &SiteContext{
		Paths:    paths,
		Config:   &model.SiteConfig{Name: "Acme"},
		Docs:     docs,
		Blobs:    blobs,
		Manager:  mgr,
		SiteRoot: dir,
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return NewHandler(siteCtx), siteCtx, cleanup
}

func serveRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestHandler_GetSite(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	rec := serveRequest(h, httptest.NewRequest("GET", "/api/v1/site", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["name"] != "Acme" {
		t.Errorf("name: got %v", body["name"])
	}
	if body["admin_path"] != "/admin" {
		t.Errorf("admin_path: got %v", body["admin_path"])
	}
	collections := body["collections"].([]any)
	if len(collections) != 5 || collections[0] != "team" {
		t.Errorf("collections: got %v", collections)
	}
	// Config has no nav, so the default entries apply
	nav := body["nav"].([]any)
	if len(nav) != 5 {
		t.Errorf("nav entries: got %d, want 5", len(nav))
	}
	first := nav[0].(map[string]any)
	if first["anchor"] != true {
		t.Errorf("anchor entry not flagged: %v", first)
	}
	if _, present := body["is_admin"]; present {
		t.Error("is_admin must be omitted without a path query")
	}
}

func TestHandler_GetSite_AdminPathDerivation(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	rec := serveRequest(h, httptest.NewRequest("GET", "/api/v1/site?path=/admin", nil))
	if decodeBody(t, rec)["is_admin"] != true {
		t.Error("expected is_admin true for /admin")
	}

	rec = serveRequest(h, httptest.NewRequest("GET", "/api/v1/site?path=/about", nil))
	if decodeBody(t, rec)["is_admin"] != false {
		t.Error("expected is_admin false for /about")
	}
}

func TestHandler_GetState_Initial(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	rec := serveRequest(h, httptest.NewRequest("GET", "/api/v1/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["view"] != "team" {
		t.Errorf("view: got %v, want team", body["view"])
	}
	if body["state"] != "browsing" {
		t.Errorf("state: got %v, want browsing", body["state"])
	}
	if body["loading"] != false {
		t.Errorf("loading: got %v, want false", body["loading"])
	}
}

func TestHandler_SelectView(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	req := httptest.NewRequest("PUT", "/api/v1/view", strings.NewReader(`{"collection":"services"}`))
	rec := serveRequest(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["view"] != "services" {
		t.Errorf("view not switched: %s", rec.Body.String())
	}
}

func TestHandler_SelectView_UnknownCollection(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	req := httptest.NewRequest("PUT", "/api/v1/view", strings.NewReader(`{"collection":"blog"}`))
	rec := serveRequest(h, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestHandler_CreateCard_JSON(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	payload := `{"fields":{"Name":"Asha","Role":"Engineer"}}`
	req := httptest.NewRequest("POST", "/api/v1/collections/team/cards", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := serveRequest(h, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201\n%s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["id"] == "" || body["id"] == nil {
		t.Error("created card has no id")
	}
	if body["Name"] != "Asha" {
		t.Errorf("fields not flattened in response: %v", body)
	}

	// Card is in the cache after the post-write refresh
	rec = serveRequest(h, httptest.NewRequest("GET", "/api/v1/collections/team/cards", nil))
	cards := decodeBody(t, rec)["cards"].([]any)
	if len(cards) != 1 {
		t.Errorf("cached cards: got %d, want 1", len(cards))
	}
}

func TestHandler_CreateCard_Multipart(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("Name", "Asha")
	fw, _ := mw.CreateFormFile("image", "asha.png")
	fw.Write([]byte("png-bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/v1/collections/team/cards", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := serveRequest(h, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201\n%s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	imageURL, _ := body["imageUrl"].(string)
	if !strings.Contains(imageURL, "/images/teamImages/") {
		t.Errorf("imageUrl: got %q", imageURL)
	}
}

func TestHandler_CreateCard_UnknownCollection(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	req := httptest.NewRequest("POST", "/api/v1/collections/blog/cards", strings.NewReader(`{"fields":{}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serveRequest(h, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestHandler_UpdateCard_PreservesImage(t *testing.T) {
	h, siteCtx, cleanup := setupTestHandler(t)
	defer cleanup()

	ctx := context.Background()
	created, err := siteCtx.Manager.CreateCard(ctx, model.CollectionTeam,
		map[string]string{"Name": "Asha", "Role": "Engineer"},
		&manager.PendingImage{Name: "asha.png", Data: []byte("png")})
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}

	payload := `{"fields":{"Role":"Lead"}}`
	req := httptest.NewRequest("PUT", "/api/v1/collections/team/cards/"+created.ID, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := serveRequest(h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200\n%s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["Role"] != "Lead" {
		t.Errorf("Role: got %v", body["Role"])
	}
	if body["Name"] != "Asha" {
		t.Errorf("untouched field lost: %v", body["Name"])
	}
	// No image in the update body, prior URL stays
	if body["imageUrl"] != created.ImageURL {
		t.Errorf("imageUrl: got %v, want %q", body["imageUrl"], created.ImageURL)
	}

	// The edit session has ended
	if siteCtx.Manager.State() != manager.StateBrowsing {
		t.Error("manager stuck in editing state after update")
	}
}

func TestHandler_UpdateCard_NotFound(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	req := httptest.NewRequest("PUT", "/api/v1/collections/team/cards/nonexistent",
		strings.NewReader(`{"fields":{"Name":"X"}}`))
	req.Header.Set("Content-Type", "application/json")

	rec := serveRequest(h, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404\n%s", rec.Code, rec.Body.String())
	}
}

func TestHandler_DeleteCard(t *testing.T) {
	h, siteCtx, cleanup := setupTestHandler(t)
	defer cleanup()

	created, err := siteCtx.Manager.CreateCard(context.Background(), model.CollectionAbout,
		map[string]string{"Heading": "Our story"}, nil)
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}

	rec := serveRequest(h, httptest.NewRequest("DELETE", "/api/v1/collections/about/cards/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204\n%s", rec.Code, rec.Body.String())
	}

	rec = serveRequest(h, httptest.NewRequest("GET", "/api/v1/collections/about/cards", nil))
	cards := decodeBody(t, rec)["cards"].([]any)
	if len(cards) != 0 {
		t.Errorf("cards after delete: got %d, want 0", len(cards))
	}
}

func TestHandler_DeleteCard_NotFound(t *testing.T) {
	h, _, cleanup := setupTestHandler(t)
	defer cleanup()

	rec := serveRequest(h, httptest.NewRequest("DELETE", "/api/v1/collections/about/cards/nonexistent", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404\n%s", rec.Code, rec.Body.String())
	}
}

func TestHandler_RefreshCollection(t *testing.T) {
	h, siteCtx, cleanup := setupTestHandler(t)
	defer cleanup()

	// Written behind the cache's back, visible only after a refresh
	card := &model.Card{Fields: map[string]string{"Name": "Asha"}}
	if err := siteCtx.Docs.Create(context.Background(), model.CollectionTeam, card); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	rec := serveRequest(h, httptest.NewRequest("GET", "/api/v1/collections/team/cards", nil))
	if cards := decodeBody(t, rec)["cards"].([]any); len(cards) != 0 {
		t.Fatalf("cache unexpectedly warm: %d cards", len(cards))
	}

	rec = serveRequest(h, httptest.NewRequest("POST", "/api/v1/collections/team/refresh", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if cards := decodeBody(t, rec)["cards"].([]any); len(cards) != 1 {
		t.Errorf("cards after refresh: got %d, want 1", len(cards))
	}
}

func TestHandler_ListCollections(t *testing.T) {
	h, siteCtx, cleanup := setupTestHandler(t)
	defer cleanup()

	if _, err := siteCtx.Manager.CreateCard(context.Background(), model.CollectionHome,
		map[string]string{"Heading": "Welcome"}, nil); err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}

	rec := serveRequest(h, httptest.NewRequest("GET", "/api/v1/collections", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	entries := decodeBody(t, rec)["collections"].([]any)
	if len(entries) != 5 {
		t.Fatalf("collections: got %d, want 5", len(entries))
	}
	home := entries[4].(map[string]any)
	if home["name"] != "home" || home["count"] != float64(1) {
		t.Errorf("home entry: %v", home)
	}
}

func TestCorsMiddleware(t *testing.T) {
	handler := Cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/v1/site", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status: got %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
}
