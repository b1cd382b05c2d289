package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bolhadev/blog-backend/errs"
	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxBodySize)
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// idParam reads a positive numeric id from the route.
func idParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil || id == 0 {
		return 0, errs.NewBadRequestErrorWithField("ID inválido", name, "")
	}
	return uint(id), nil
}

// queryInt returns the integer query parameter, or def when it is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}
