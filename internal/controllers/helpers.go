package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AUXLE/clavedeoroBackend/internal/services"
	"github.com/AUXLE/clavedeoroBackend/internal/storage"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

// memory threshold for multipart parsing; larger parts spill to disk
const multipartMemory = 32 << 20

// pathID parses the {id} path variable. A malformed id is reported as
// not_found: from the client's perspective no such resource exists.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No such resource", err)
		return uuid.Nil, false
	}
	return id, true
}

// readMultipartFiles pulls up to maxFiles parts from the named field,
// rejecting the whole request before any upload when a file is oversized or
// the count is exceeded.
func readMultipartFiles(r *http.Request, field string, maxFiles int) ([]services.UploadInput, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, fmt.Errorf("malformed multipart body: %w", err)
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, fmt.Errorf("multipart field %q is missing", field)
	}

	headers := r.MultipartForm.File[field]
	if len(headers) > maxFiles {
		return nil, fmt.Errorf("at most %d files per request, got %d", maxFiles, len(headers))
	}
	for _, fh := range headers {
		if fh.Size > storage.MaxFileSize {
			return nil, fmt.Errorf("file %q exceeds the %d byte limit", fh.Filename, storage.MaxFileSize)
		}
	}

	files := make([]services.UploadInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, storage.MaxFileSize+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", fh.Filename, err)
		}
		if len(data) > storage.MaxFileSize {
			return nil, fmt.Errorf("file %q exceeds the %d byte limit", fh.Filename, storage.MaxFileSize)
		}

		files = append(files, services.UploadInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// respondServiceError maps a service-layer failure onto the HTTP taxonomy.
// Everything a handler can see from an external call lands here; nothing
// propagates to the transport unhandled.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No such resource", err)
	case errors.Is(err, utils.ErrImageNotAttached):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeNotFound, "Image URL is not attached to this listing", err)
	case errors.Is(err, utils.ErrUnrecognizedReference):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Stored URL does not match the object-store template", err)
	case errors.Is(err, utils.ErrUpload):
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeUploadError, "Object store rejected the upload", err)
	case errors.Is(err, utils.ErrRemoval):
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to remove object from storage", err)
	case errors.Is(err, utils.ErrDelivery):
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeDeliveryError, "Failed to deliver notification email", err)
	case errors.Is(err, utils.ErrForbidden):
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, "Admin privileges required", err)
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidToken, "Invalid credentials", err)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Unexpected server error", err)
	}
}
