package api

import (
	"errors"
	"net/http"

	httperr "torqrides/internal/errors"
)

// writeServiceError maps service errors that carry an HTTP status onto the
// response. Anything else gets the fallback status.
func writeServiceError(w http.ResponseWriter, err error, fallback int) {
	var he *httperr.HTTPError
	if errors.As(err, &he) {
		http.Error(w, he.Message, he.Code)
		return
	}
	http.Error(w, err.Error(), fallback)
}
