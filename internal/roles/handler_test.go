package roles_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice-hq/backoffice/internal/roles"
)

func newRolesRouter(store roles.Store) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/roles", roles.NewHandler(logger, store).MountRoutes)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestCreateRoleEndpoint(t *testing.T) {
	router := newRolesRouter(roles.NewMemoryStore())

	res := doJSON(t, router, http.MethodPost, "/roles", map[string]any{
		"name":          "admin",
		"permissionIds": []string{"1", "2", "3", "4", "5"},
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var created roles.Role
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, created.PermissionIDs)

	// Duplicate name, different case.
	res = doJSON(t, router, http.MethodPost, "/roles", map[string]any{"name": "Admin"})
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.JSONEq(t, `{"error":"Role name must be unique"}`, res.Body.String())

	// Missing name.
	res = doJSON(t, router, http.MethodPost, "/roles", map[string]any{"description": "no name"})
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.JSONEq(t, `{"error":"Name is required"}`, res.Body.String())
}

func TestGetRoleByNameEndpoint(t *testing.T) {
	router := newRolesRouter(roles.NewMemoryStore())

	res := doJSON(t, router, http.MethodPost, "/roles", map[string]any{
		"name":          "admin",
		"permissionIds": []string{"1", "2", "3", "4", "5"},
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var created roles.Role
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))

	res = doJSON(t, router, http.MethodGet, "/roles/by-name/ADMIN", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var found roles.Role
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &found))
	assert.Equal(t, created.ID, found.ID)

	res = doJSON(t, router, http.MethodGet, "/roles/by-name/ghost", nil)
	require.Equal(t, http.StatusNotFound, res.Code)
	assert.JSONEq(t, `{"error":"Role not found"}`, res.Body.String())
}

func TestGetRoleEndpoint(t *testing.T) {
	store := roles.NewMemoryStore(roles.Role{ID: "1", Name: "user", PermissionIDs: []string{"1"}})
	router := newRolesRouter(store)

	res := doJSON(t, router, http.MethodGet, "/roles/1", nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodGet, "/roles/999", nil)
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestUpdateRoleEndpoint(t *testing.T) {
	store := roles.NewMemoryStore(
		roles.Role{ID: "1", Name: "user", PermissionIDs: []string{"1"}},
		roles.Role{ID: "2", Name: "admin", PermissionIDs: []string{"1", "2"}},
	)
	router := newRolesRouter(store)

	res := doJSON(t, router, http.MethodPut, "/roles/1", map[string]any{
		"permissionIds": []string{"1", "3"},
	})
	require.Equal(t, http.StatusOK, res.Code)
	var updated roles.Role
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	assert.Equal(t, []string{"1", "3"}, updated.PermissionIDs)
	assert.Equal(t, "user", updated.Name)

	res = doJSON(t, router, http.MethodPut, "/roles/1", map[string]any{"name": "Admin"})
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.JSONEq(t, `{"error":"Role name must be unique"}`, res.Body.String())

	res = doJSON(t, router, http.MethodPut, "/roles/999", map[string]any{"name": "x"})
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestListRolesEndpoint(t *testing.T) {
	router := newRolesRouter(roles.NewMemoryStore())
	res := doJSON(t, router, http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `[]`, res.Body.String())
}

func TestRoleDeleteNotExposed(t *testing.T) {
	store := roles.NewMemoryStore(roles.Role{ID: "1", Name: "user"})
	router := newRolesRouter(store)

	res := doJSON(t, router, http.MethodDelete, "/roles/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
}
