package blogs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"

	"log/slog"

	"github.com/google/uuid"

	"prefscale/internal/auth"
	"prefscale/internal/blob"
	"prefscale/internal/httpapi"
)

const uploadFolder = "prefscale/blogs"

// maxUploadBytes bounds the multipart form held in memory during an upload.
const maxUploadBytes = 32 << 20

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// BlogStore is the persistence surface the handlers need.
// *Store satisfies it; tests substitute fakes.
type BlogStore interface {
	Create(ctx context.Context, b *Blog) error
	List(ctx context.Context, f Filter) ([]Blog, error)
	Get(ctx context.Context, id uuid.UUID) (*Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UploadHandler struct {
	Store      BlogStore
	Blobs      blob.Store
	Logger     *slog.Logger
	AdminEmail string
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpapi.WriteError(w, httpapi.BadRequest("Invalid multipart form"))
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
	}
	if title == "" || description == "" || err != nil {
		httpapi.WriteError(w, httpapi.BadRequest("Title, description and file are required"))
		return
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		httpapi.WriteError(w, httpapi.BadRequest("File format not allowed"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	obj, err := h.Blobs.Upload(r.Context(), file, header.Size, contentType, uploadFolder, header.Filename)
	if err != nil {
		h.Logger.Error("upload blob", "err", err)
		httpapi.WriteError(w, httpapi.Internal("Upload failed"))
		return
	}

	uploadedBy := h.AdminEmail
	if id, ok := auth.IdentityFromContext(r.Context()); ok && id.Email != "" {
		uploadedBy = id.Email
	}
	if uploadedBy == "" {
		uploadedBy = "Admin"
	}

	b := &Blog{
		Title:       title,
		Description: description,
		Category:    Category(r.FormValue("category")),
		Section:     Section(r.FormValue("section")),
		FileURL:     obj.URL,
		ObjectKey:   obj.Key,
		UploadedBy:  uploadedBy,
	}
	if err := h.Store.Create(r.Context(), b); err != nil {
		h.Logger.Error("create blog", "err", err)
		// keep the bucket consistent with the store
		if derr := h.Blobs.Delete(r.Context(), obj.Key); derr != nil {
			h.Logger.Error("delete orphaned blob", "key", obj.Key, "err", derr)
		}
		httpapi.WriteError(w, httpapi.Internal("Upload failed"))
		return
	}

	httpapi.JSON(w, http.StatusOK, b)
}

type DeleteHandler struct {
	Store  BlogStore
	Blobs  blob.Store
	Logger *slog.Logger
}

func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Path is /api/admin/blog/{id}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 {
		httpapi.WriteError(w, httpapi.BadRequest("Missing blog id"))
		return
	}
	id, err := uuid.Parse(parts[3])
	if err != nil {
		httpapi.WriteError(w, httpapi.BadRequest("Invalid blog id"))
		return
	}

	b, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpapi.WriteError(w, httpapi.NotFound("Blog not found"))
			return
		}
		h.Logger.Error("get blog", "err", err)
		httpapi.WriteError(w, httpapi.Internal("Delete failed"))
		return
	}

	if b.ObjectKey != "" {
		if err := h.Blobs.Delete(r.Context(), b.ObjectKey); err != nil {
			// the row still goes; an orphaned object beats a dead link
			h.Logger.Error("delete blob", "key", b.ObjectKey, "err", err)
		}
	}

	if err := h.Store.Delete(r.Context(), id); err != nil && !errors.Is(err, ErrNotFound) {
		h.Logger.Error("delete blog", "err", err)
		httpapi.WriteError(w, httpapi.Internal("Delete failed"))
		return
	}

	httpapi.Message(w, http.StatusOK, "Blog deleted successfully")
}

type ListHandler struct {
	Store  BlogStore
	Logger *slog.Logger
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := Filter{
		Section:  Section(q.Get("section")),
		Category: Category(q.Get("category")),
	}

	list, err := h.Store.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("list blogs", "err", err)
		httpapi.WriteError(w, httpapi.Internal("Failed to fetch blogs"))
		return
	}
	if list == nil {
		list = []Blog{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
