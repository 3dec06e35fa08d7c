package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	"github.com/pribylovaa/go-article-feed/internal/http/response"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

// multipartOverhead — запас на заголовки multipart сверх лимита файла.
const multipartOverhead = 1 << 20

type uploadResult struct {
	URL string `json:"url"`
}

// UploadImage принимает multipart-поле "file".
// Тип определяется по содержимому файла, а не по заголовку клиента.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	if h.maxImageSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+multipartOverhead)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.WriteError(w, r, service.ErrImageTooLarge)
			return
		}
		apierrors.WriteError(w, r, &service.ValidationError{Reason: "multipart form with a file field is required"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, r, &service.ValidationError{Reason: "No file uploaded"})
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		apierrors.WriteError(w, r, apierrors.ErrBadRequest)
		return
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	body := io.MultiReader(bytes.NewReader(head), file)

	url, err := h.svc.UploadImage(r.Context(), uid, contentType, header.Size, body)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	response.OK(w, http.StatusCreated, "Image uploaded successfully", uploadResult{URL: url})
}
