package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/planet-api/internal/api"
	"github.com/phrazzld/planet-api/internal/mocks"
)

// newTestRouter mounts the handlers on the same paths the server uses.
func newTestRouter(users *mocks.MockUserService, groups *mocks.MockGroupService) http.Handler {
	uh := api.NewUserHandler(users, nil)
	gh := api.NewGroupHandler(groups, nil)

	r := chi.NewRouter()
	r.Route("/users", func(r chi.Router) {
		r.Get("/", uh.ListUsers)
		r.Post("/", uh.CreateUser)
		r.Get("/{userid}", uh.GetUser)
		r.Put("/{userid}", uh.UpdateUser)
		r.Delete("/{userid}", uh.DeleteUser)
	})
	r.Route("/groups", func(r chi.Router) {
		r.Get("/", gh.ListGroups)
		r.Post("/", gh.CreateGroup)
		r.Get("/{group_name}", gh.GetMembers)
		r.Put("/{group_name}", gh.ReplaceMembers)
		r.Delete("/{group_name}", gh.DeleteGroup)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
