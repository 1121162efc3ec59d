package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Upload describes one stored file.
type Upload struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

// URLs returns the stored relative paths of uploads, in order.
func URLs(uploads []Upload) []string {
	urls := make([]string, 0, len(uploads))
	for _, u := range uploads {
		urls = append(urls, u.URL)
	}
	return urls
}

// Receiver writes multipart file parts to a FileStore under generated names.
type Receiver struct {
	store  FileStore
	route  string
	logger zerolog.Logger
}

func NewReceiver(store FileStore, route string) *Receiver {
	return &Receiver{
		store:  store,
		route:  NormalizeRoute(route),
		logger: log.With().Str("component", "uploadReceiver").Logger(),
	}
}

// Route is the URL prefix stored paths start with.
func (r *Receiver) Route() string {
	return r.route
}

// Files returns the file headers of field. Browsers that append "[]" to
// array field names are accepted too.
func Files(form *multipart.Form, field string) []*multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	files := append([]*multipart.FileHeader{}, form.File[field]...)
	return append(files, form.File[field+"[]"]...)
}

// Receive stores every file of field. max > 0 caps the number of files.
// Either all files are stored or none are: on a failed write the files
// already written by this call are removed again.
func (r *Receiver) Receive(form *multipart.Form, field string, max int) ([]Upload, error) {
	headers := Files(form, field)
	if max > 0 && len(headers) > max {
		return nil, errs.NewTooManyFilesError(field, max)
	}

	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		upload, err := r.storeOne(fh)
		if err != nil {
			r.rollback(uploads)
			return nil, errs.NewStorageWriteError("Failed to store uploaded file", err)
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func (r *Receiver) storeOne(fh *multipart.FileHeader) (Upload, error) {
	name, err := generateName(fh.Filename)
	if err != nil {
		return Upload{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("open part %q: %w", fh.Filename, err)
	}
	defer src.Close()

	if err := r.store.Save(name, src, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		return Upload{}, err
	}

	r.logger.Debug().Str("filename", name).Str("originalName", fh.Filename).Int64("size", fh.Size).Msg("stored upload")
	return Upload{
		Filename:     name,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		URL:          URLFor(r.route, name),
	}, nil
}

func (r *Receiver) rollback(uploads []Upload) {
	for _, u := range uploads {
		if err := r.store.Remove(u.Filename); err != nil && !IsNotExist(err) {
			r.logger.Warn().Err(err).Str("filename", u.Filename).Msg("failed to remove partial upload")
		}
	}
}

// generateName builds a time-ordered random name that keeps the lower-cased extension.
func generateName(original string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	return id.String() + extensionOf(original), nil
}

func extensionOf(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(strings.ReplaceAll(original, `\`, "/"))))
	if len(ext) > 16 || strings.ContainsAny(ext, " /\x00") {
		return ""
	}
	return ext
}
