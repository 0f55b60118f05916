package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/planet-api/internal/api/shared"
)

// Path parameter names used by the routes.
const (
	userIDParam    = "userid"
	groupNameParam = "group_name"
)

// pathParam returns the decoded value of a chi path parameter. chi matches
// against RawPath when the request path carried escapes.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if v, err := url.PathUnescape(value); err == nil {
		return v
	}
	return value
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		respondWithMappedError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return false
	}
	return true
}

// resourcePath builds the Location of a created resource.
func resourcePath(collection, key string) string {
	return "/" + collection + "/" + url.PathEscape(key)
}
