package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	vitrerr "github.com/amady/vitrine/internal/errors"
	"github.com/amady/vitrine/internal/manager"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/site"
)

// maxUploadBytes caps multipart card bodies, image included.
const maxUploadBytes = 32 << 20

// Notifier receives live-update events for connected admin clients.
type Notifier interface {
	Status(message string)
	CollectionRefreshed(collection string)
}

// Handler contains all HTTP handlers for the admin API.
//
// Design: single-site, single-session. The Handler wraps one SiteContext and
// its Manager; all connected admin clients (browser tabs) share the same
// view and edit state, because the admin panel is a single-operator tool,
// not a multi-tenant CMS.
type Handler struct {
	ctx    *SiteContext
	notify Notifier
}

// NewHandler creates a new handler for the given site context.
func NewHandler(ctx *SiteContext) *Handler {
	return &Handler{ctx: ctx}
}

// SetNotifier wires the live-update sink. The manager's status messages are
// forwarded there as well.
func (h *Handler) SetNotifier(n Notifier) {
	h.notify = n
	h.ctx.Manager.SetStatusFunc(n.Status)
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Site metadata
	mux.HandleFunc("GET /api/v1/site", h.GetSite)
	mux.HandleFunc("GET /api/v1/state", h.GetState)
	mux.HandleFunc("PUT /api/v1/view", h.SelectView)

	// Collection routes
	mux.HandleFunc("GET /api/v1/collections", h.ListCollections)
	mux.HandleFunc("POST /api/v1/collections/{name}/refresh", h.RefreshCollection)

	// Card routes
	mux.HandleFunc("GET /api/v1/collections/{name}/cards", h.ListCards)
	mux.HandleFunc("POST /api/v1/collections/{name}/cards", h.CreateCard)
	mux.HandleFunc("PUT /api/v1/collections/{name}/cards/{id}", h.UpdateCard)
	mux.HandleFunc("DELETE /api/v1/collections/{name}/cards/{id}", h.DeleteCard)

	// Uploaded images
	mux.Handle("GET /images/", http.StripPrefix("/images/",
		http.FileServer(http.Dir(h.ctx.Paths.ImagesRoot()))))
}

// --- Responses ---

// CardResponse wraps a Card for JSON API responses. Free-form fields are
// flattened into the top level to match the card document format; the
// internal schema marker stays internal.
type CardResponse struct {
	ID       string            `json:"id"`
	ImageURL string            `json:"imageUrl,omitempty"`
	Fields   map[string]string `json:"-"` // Flattened into top level by MarshalJSON
}

// MarshalJSON flattens fields into the top level of the JSON output.
func (c CardResponse) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"id": c.ID,
	}
	if c.ImageURL != "" {
		m["imageUrl"] = c.ImageURL
	}
	for k, v := range c.Fields {
		m[k] = v
	}
	return json.Marshal(m)
}

func toCardResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:       card.ID,
		ImageURL: card.ImageURL,
		Fields:   card.Fields,
	}
}

func toCardResponses(cards []*model.Card) []CardResponse {
	responses := make([]CardResponse, len(cards))
	for i, card := range cards {
		responses[i] = toCardResponse(card)
	}
	return responses
}

// --- Site Handlers ---

// SiteResponse is the JSON response for site metadata.
type SiteResponse struct {
	Name        string     `json:"name"`
	AdminPath   string     `json:"admin_path"`
	Nav         []NavEntry `json:"nav"`
	Collections []string   `json:"collections"`

	// IsAdmin is derived from the optional ?path= query so the frontend
	// never duplicates the admin-route comparison.
	IsAdmin *bool `json:"is_admin,omitempty"`
}

// NavEntry is one navigation item in the site response.
type NavEntry struct {
	Label  string `json:"label"`
	Target string `json:"target"`
	Anchor bool   `json:"anchor"`
}

// GetSite returns the site metadata and navigation entries. When a ?path=
// query is present the response also reports whether that path is the
// admin route.
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	cfg := h.ctx.Config

	name := cfg.Name
	if name == "" {
		name = "Vitrine"
	}

	nav := cfg.Nav
	if len(nav) == 0 {
		nav = model.DefaultNav()
	}
	entries := make([]NavEntry, len(nav))
	for i, item := range nav {
		navItem := site.Item{Label: item.Label, Target: item.Target}
		entries[i] = NavEntry{
			Label:  navItem.Label,
			Target: navItem.Target,
			Anchor: navItem.IsAnchor(),
		}
	}

	collections := make([]string, 0, len(model.Collections()))
	for _, c := range model.Collections() {
		collections = append(collections, c.String())
	}

	resp := SiteResponse{
		Name:        name,
		AdminPath:   cfg.GetAdminPath(),
		Nav:         entries,
		Collections: collections,
	}
	if path := r.URL.Query().Get("path"); path != "" {
		isAdmin := site.IsAdminPath(path, cfg.GetAdminPath())
		resp.IsAdmin = &isAdmin
	}

	JSON(w, http.StatusOK, resp)
}

// StateResponse is the JSON response for the manager's current state.
type StateResponse struct {
	View    string `json:"view"`
	State   string `json:"state"`
	Loading bool   `json:"loading"`
}

// GetState returns the manager's view/edit/loading state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	m := h.ctx.Manager
	JSON(w, http.StatusOK, StateResponse{
		View:    m.View().String(),
		State:   string(m.State()),
		Loading: m.Loading(),
	})
}

// SelectViewRequest is the JSON body for switching the displayed collection.
type SelectViewRequest struct {
	Collection string `json:"collection"`
}

// SelectView switches the displayed collection. An active edit session is
// abandoned, matching the admin panel's behavior.
func (h *Handler) SelectView(w http.ResponseWriter, r *http.Request) {
	var req SelectViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	collection, ok := model.ParseCollection(req.Collection)
	if !ok {
		NotFound(w, "collection", req.Collection)
		return
	}

	if err := h.ctx.Manager.SelectView(collection); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, StateResponse{
		View:    collection.String(),
		State:   string(h.ctx.Manager.State()),
		Loading: h.ctx.Manager.Loading(),
	})
}

// --- Collection Handlers ---

// CollectionEntry summarizes one collection for listing.
type CollectionEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ListCollections returns all collections with their cached card counts.
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	entries := make([]CollectionEntry, 0, len(model.Collections()))
	for _, c := range model.Collections() {
		entries = append(entries, CollectionEntry{
			Name:  c.String(),
			Count: len(h.ctx.Manager.Cards(c)),
		})
	}
	JSON(w, http.StatusOK, map[string][]CollectionEntry{"collections": entries})
}

// RefreshCollection forces a re-fetch of one collection's cache slice.
func (h *Handler) RefreshCollection(w http.ResponseWriter, r *http.Request) {
	collection, ok := model.ParseCollection(r.PathValue("name"))
	if !ok {
		NotFound(w, "collection", r.PathValue("name"))
		return
	}

	if !h.ctx.Manager.Refresh(r.Context(), collection) {
		Error(w, vitrerr.Unavailable(collection.String(), vitrerr.ErrUnavailable))
		return
	}

	h.collectionRefreshed(collection)
	JSON(w, http.StatusOK, map[string]any{"cards": toCardResponses(h.ctx.Manager.Cards(collection))})
}

// --- Card Handlers ---

// ListCards returns the cached cards for a collection. The cache is the
// UI's source of truth; listing never triggers a store round trip.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	collection, ok := model.ParseCollection(r.PathValue("name"))
	if !ok {
		NotFound(w, "collection", r.PathValue("name"))
		return
	}

	JSON(w, http.StatusOK, map[string]any{"cards": toCardResponses(h.ctx.Manager.Cards(collection))})
}

// CreateCard creates a new card from a multipart form (text fields plus an
// optional "image" file) or a JSON body with a "fields" object.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	collection, ok := model.ParseCollection(r.PathValue("name"))
	if !ok {
		NotFound(w, "collection", r.PathValue("name"))
		return
	}

	fields, image, err := parseCardForm(r)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	card, err := h.ctx.Manager.CreateCard(r.Context(), collection, fields, image)
	if err != nil {
		Error(w, err)
		return
	}

	h.collectionRefreshed(collection)
	JSON(w, http.StatusCreated, toCardResponse(card))
}

// UpdateCard applies field edits (and an optional replacement image) to an
// existing card through the manager's edit session, so the merge semantics
// match the admin panel exactly: a missing image never clears the prior
// imageUrl.
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	collection, ok := model.ParseCollection(r.PathValue("name"))
	if !ok {
		NotFound(w, "collection", r.PathValue("name"))
		return
	}
	cardID := r.PathValue("id")

	fields, image, err := parseCardForm(r)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	m := h.ctx.Manager
	if err := m.SelectView(collection); err != nil {
		Error(w, err)
		return
	}
	if err := m.StartEdit(cardID); err != nil {
		// The card may exist in the store without being cached yet
		// (external edit, fresh start). Refresh once and retry.
		m.Refresh(r.Context(), collection)
		if err := m.StartEdit(cardID); err != nil {
			Error(w, err)
			return
		}
	}

	for name, value := range fields {
		if err := m.UpdateField(name, value); err != nil {
			m.CancelEdit()
			Error(w, err)
			return
		}
	}
	if image != nil {
		if err := m.ChooseImage(image.Name, image.Data); err != nil {
			m.CancelEdit()
			Error(w, err)
			return
		}
	}

	if err := m.SubmitEdit(r.Context()); err != nil {
		Error(w, err)
		return
	}

	h.collectionRefreshed(collection)

	for _, card := range m.Cards(collection) {
		if card.ID == cardID {
			JSON(w, http.StatusOK, toCardResponse(card))
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCard deletes a card.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	collection, ok := model.ParseCollection(r.PathValue("name"))
	if !ok {
		NotFound(w, "collection", r.PathValue("name"))
		return
	}

	if err := h.ctx.Manager.DeleteCard(r.Context(), collection, r.PathValue("id")); err != nil {
		Error(w, err)
		return
	}

	h.collectionRefreshed(collection)
	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

// createCardRequest is the JSON body accepted for image-less card writes.
type createCardRequest struct {
	Fields map[string]string `json:"fields"`
}

// parseCardForm extracts card fields and an optional image from the request.
// Multipart bodies carry text inputs plus an "image" file part; JSON bodies
// carry a "fields" object and no image.
func parseCardForm(r *http.Request) (map[string]string, *manager.PendingImage, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, nil, vitrerr.InvalidField("body", "invalid multipart form")
		}

		fields := make(map[string]string)
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}

		var image *manager.PendingImage
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return nil, nil, vitrerr.InvalidField("image", "failed to read upload")
			}
			image = &manager.PendingImage{Name: header.Filename, Data: data}
		}

		return fields, image, nil
	}

	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, vitrerr.InvalidField("body", "invalid JSON body")
	}
	if req.Fields == nil {
		req.Fields = map[string]string{}
	}
	return req.Fields, nil, nil
}

func (h *Handler) collectionRefreshed(collection model.Collection) {
	if h.notify != nil {
		h.notify.CollectionRefreshed(collection.String())
	}
}
