package presentation

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/RaikyD/wb-shipping-service/internal/presentation/helpers"
	"github.com/RaikyD/wb-shipping-service/internal/storage"
	"github.com/go-chi/chi/v5"
)

type PhotosHandler struct {
	store storage.PhotoStore
}

func NewPhotosHandler(store storage.PhotoStore) *PhotosHandler {
	return &PhotosHandler{store: store}
}

func (h *PhotosHandler) Register(r chi.Router) {
	r.Post("/photos", h.Upload)
}

// Upload stores the multipart "file" part and answers with its public URL.
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	mediatype, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediatype != "multipart/form-data" {
		helpers.HttpError(w, http.StatusUnsupportedMediaType, "unsupported content-type")
		return
	}

	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			helpers.HttpError(w, http.StatusBadRequest, "invalid multipart body: "+err.Error())
			return
		}
		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}
		url, err := h.store.Upload(r.Context(), part)
		_ = part.Close()
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		helpers.WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
		return
	}
	helpers.HttpError(w, http.StatusBadRequest, `multipart field "file" is required`)
}

// MountPhotos serves stored photos read-only under /photos/.
func MountPhotos(r chi.Router, dir string) {
	fs := http.StripPrefix("/photos/", http.FileServer(http.Dir(dir)))
	r.Get("/photos/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, r)
	})
}
