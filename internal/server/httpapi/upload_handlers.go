package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/portfolio/internal/common"
)

// multipartOverhead leaves room for boundaries and headers on top of the file.
const multipartOverhead = 64 << 10

func (a *API) uploadImage(w http.ResponseWriter, r *http.Request) {
	limit := a.uploads.MaxSize()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		fail(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		fail(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		a.failErr(w, r, err, "File")
		return
	}

	up, err := a.uploads.Save(r.Context(), header.Filename, body)
	if err != nil {
		a.failErr(w, r, err, "File")
		return
	}
	ok(w, http.StatusOK, up)
}

func (a *API) deleteUpload(w http.ResponseWriter, r *http.Request) {
	if err := a.uploads.Delete(r.Context(), chi.URLParam(r, "filename")); err != nil {
		a.failErr(w, r, err, "File")
		return
	}
	okMessage(w, "File deleted successfully")
}

// serveUpload redirects to a short-lived signed URL of the object.
func (a *API) serveUpload(w http.ResponseWriter, r *http.Request) {
	url, err := a.uploads.SignedURL(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fail(w, http.StatusNotFound, "File not found")
			return
		}
		a.failErr(w, r, err, "File")
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
