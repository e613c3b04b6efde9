package devstore

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/models"
)

// Handler holds the HTTP handlers over a Store.
type Handler struct {
	store *Store
}

// NewHandler creates a new Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func pageParams(r *http.Request) (int, int) {
	q := r.URL.Query()
	pageNum, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return pageNum, limit
}

// GetNote handles GET /notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note := h.store.GetNote(chi.URLParam(r, "id"))
	if note == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// CreateNote handles POST /notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.Note
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	note := h.store.CreateNote(req.ParentID, req.Title, req.Body)
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /notes/{id}.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req models.Note
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	note := h.store.UpdateNote(chi.URLParam(r, "id"), req.Title, req.Body)
	if note == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// CreateFolder handles POST /folders.
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req models.Folder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	folder := h.store.CreateFolder(req.ParentID, req.Title)
	writeJSON(w, http.StatusCreated, folder)
}

// GetFolder handles GET /folders/{id}.
func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folder := h.store.GetFolder(chi.URLParam(r, "id"))
	if folder == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// FolderNotes handles GET /folders/{id}/notes.
func (h *Handler) FolderNotes(w http.ResponseWriter, r *http.Request) {
	pageNum, limit := pageParams(r)
	items, hasMore := h.store.FolderNotes(chi.URLParam(r, "id"), pageNum, limit)
	writeJSON(w, http.StatusOK, pageBody(items, hasMore))
}

// ListTags handles GET /tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	pageNum, limit := pageParams(r)
	items, hasMore := h.store.Tags(pageNum, limit)
	writeJSON(w, http.StatusOK, pageBody(items, hasMore))
}

// CreateTag handles POST /tags.
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req models.Tag
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	tag := h.store.CreateTag(req.Title)
	writeJSON(w, http.StatusCreated, tag)
}

// AttachTag handles POST /tags/{id}/notes.
func (h *Handler) AttachTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	if !h.store.AttachTag(chi.URLParam(r, "id"), req.ID) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "attached"})
}

// Search handles GET /search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	limit, _ := strconv.Atoi(q.Get("limit"))
	switch q.Get("type") {
	case "", "note":
		writeJSON(w, http.StatusOK, pageBody(h.store.SearchNotes(query, limit), false))
	case "folder":
		writeJSON(w, http.StatusOK, pageBody(h.store.SearchFolders(query), false))
	case "tag":
		writeJSON(w, http.StatusOK, pageBody(h.store.SearchTags(query), false))
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("unknown type"))
	}
}

// GetSelection handles GET /selection.
func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	sel := h.store.Selection()
	writeJSON(w, http.StatusOK, &sel)
}

// PutSelection handles PUT /selection.
func (h *Handler) PutSelection(w http.ResponseWriter, r *http.Request) {
	var req models.Selection
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	h.store.SetSelection(req)
	writeJSON(w, http.StatusOK, &req)
}

func pageBody[T any](items []T, hasMore bool) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{
		"items":    items,
		"has_more": hasMore,
	}
}
