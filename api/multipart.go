package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/anasir-dev/portfolio-backend/errs"
	"github.com/anasir-dev/portfolio-backend/services"
)

// maxRequestBody bounds an entire multipart request. It sits above the 5 MiB
// asset cap so an oversized image still reaches upload validation and gets a
// proper 413 rather than an opaque parse failure.
const maxRequestBody = 16 << 20

// parseMultipart reads a create/update request body. Returns a bad-request
// error for anything that is not a well-formed multipart form.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseMultipartForm(maxRequestBody); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errs.NewMaxUploadSizeError(maxBytesErr.Limit)
		}
		return errs.NewBadRequestError("malformed multipart request body")
	}
	return nil
}

// formValue returns the value of key as a tri-state: nil when the form did not
// carry the key at all, a pointer otherwise. An explicitly supplied empty
// string stays distinguishable from an omitted field.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formString returns the value of key, or "" when absent.
func formString(r *http.Request, key string) string {
	if v := formValue(r, key); v != nil {
		return *v
	}
	return ""
}

// extractUpload pulls the optional image attachment out of the form. The read
// is bounded just past the asset cap so validation sees the oversize.
func extractUpload(r *http.Request) (*services.Upload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errs.NewBadRequestError("malformed image attachment")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		return nil, errs.NewBadRequestError("failed to read image attachment")
	}

	return &services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
