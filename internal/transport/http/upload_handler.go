package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"quiz-trainer/internal/app"
	"quiz-trainer/internal/domain"
)

const defaultMaxUpload = 20 << 20

// UploadHandler implements POST /upload: a multipart "file" field in, the
// parsed question pool out.
type UploadHandler struct {
	uploader app.Uploader
	maxBytes int64
}

func NewUploadHandler(uploader app.Uploader, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploader: uploader, maxBytes: uploadLimit(maxBytes)}
}

func uploadLimit(maxBytes int64) int64 {
	if maxBytes <= 0 {
		return defaultMaxUpload
	}
	return maxBytes
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	file, header, err := r.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeDetail(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large. Limit is %d bytes.", tooLarge.Limit))
		return
	}
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if errors.As(err, &tooLarge) {
		writeDetail(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large. Limit is %d bytes.", tooLarge.Limit))
		return
	}
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	questions, err := h.uploader.Upload(r.Context(), header.Filename, content)
	if err != nil {
		status, detail := http.StatusInternalServerError, err.Error()
		var uerr *domain.UploadError
		if errors.As(err, &uerr) {
			if uerr.StatusCode != 0 {
				status = uerr.StatusCode
			}
			if uerr.Detail != "" {
				detail = uerr.Detail
			}
		}
		log.Printf("upload %s by %s failed: %v", header.Filename, UserFrom(r.Context()), err)
		writeDetail(w, status, detail)
		return
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	writeJSON(w, http.StatusOK, domain.UploadResponse{Questions: questions})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, domain.ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response failed: %v", err)
	}
}
