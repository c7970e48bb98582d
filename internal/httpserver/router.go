package httpserver

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"prefscale/internal/auth"
	"prefscale/internal/blob"
	"prefscale/internal/blogs"
	"prefscale/internal/contact"
)

func NewRouter(
	logger *slog.Logger,
	authSvc *auth.Service,
	blogStore blogs.BlogStore,
	contactStore contact.MessageStore,
	blobs blob.Store,
	adminEmail string,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("Prefscale Backend Live"))
	})

	// Health check
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Auth
	mux.Handle("/api/signup", &auth.SignupHandler{Service: authSvc, Logger: logger})
	mux.Handle("/api/login", &auth.LoginHandler{Service: authSvc, Logger: logger})

	// Contact form
	mux.Handle("/api/contact", &contact.Handler{Store: contactStore, Logger: logger})

	// Blogs
	mux.Handle("/api/blogs", &blogs.ListHandler{Store: blogStore, Logger: logger})

	secured := auth.Middleware(authSvc)
	adminOnly := func(h http.Handler) http.Handler {
		return secured(auth.RequireAdmin(h))
	}

	uploadHandler := &blogs.UploadHandler{
		Store:      blogStore,
		Blobs:      blobs,
		Logger:     logger,
		AdminEmail: adminEmail,
	}
	deleteHandler := &blogs.DeleteHandler{
		Store:  blogStore,
		Blobs:  blobs,
		Logger: logger,
	}
	mux.Handle("/api/admin/blog", adminOnly(uploadHandler))
	mux.Handle("/api/admin/blog/", adminOnly(deleteHandler))

	// CORS wrapper (simple, for local UI/tools).
	return withCORS(mux)
}
