package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aescanero/treed/internal/application/forest"
	memoryevents "github.com/aescanero/treed/pkg/adapters/events/memory"
	memorystorage "github.com/aescanero/treed/pkg/adapters/storage/memory"
	"github.com/aescanero/treed/pkg/domain"
	"github.com/gin-gonic/gin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopMetrics struct{}

func (nopMetrics) RecordNodeCreated(string)            {}
func (nopMetrics) ObserveCreateDuration(time.Duration) {}
func (nopMetrics) SetForestSize(int)                   {}
func (nopMetrics) RecordTreeFetched()                  {}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := forest.NewManager(
		memorystorage.NewInMemoryNodeStorage(),
		memoryevents.NewInMemoryEventBus(),
		nopMetrics{},
		zap.NewNop(),
	)

	return NewServer(&Config{
		Port:    0,
		Manager: manager,
		Logger:  zap.NewNop(),
	})
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestGetTreeEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/tree", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "[]", rec.Body.String())
}

func TestCreateRootNode(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/tree", `{"label":"root"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var node domain.Node
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &node))
	assert.Equal(t, 1, node.ID)
	assert.Equal(t, "root", node.Label)
	assert.Nil(t, node.ParentID)
}

func TestCreateChildNode(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/tree", `{"label":"root"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/tree", `{"label":"child","parent_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var node domain.Node
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &node))
	assert.Equal(t, 2, node.ID)
	require.NotNil(t, node.ParentID)
	assert.Equal(t, 1, *node.ParentID)
}

func TestCreateNodeParentNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/tree", `{"label":"child","parent_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PARENT_NOT_FOUND", errorCode(t, rec))

	// The forest stays untouched.
	rec = doRequest(s, http.MethodGet, "/api/tree", "")
	assert.Equal(t, "[]", rec.Body.String())
}

func TestCreateNodeInvalidLabel(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{"label":""}`, `{}`} {
		rec := doRequest(s, http.MethodPost, "/api/tree", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "INVALID_LABEL", errorCode(t, rec), "body %s", body)
	}

	// Rejected requests never consume ids.
	rec := doRequest(s, http.MethodPost, "/api/tree", `{"label":"root"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var node domain.Node
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &node))
	assert.Equal(t, 1, node.ID)
}

func TestCreateNodeMalformedBody(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"label":"test","parent_id":"not an int"}`,
		`{not json`,
	} {
		rec := doRequest(s, http.MethodPost, "/api/tree", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "INVALID_REQUEST", errorCode(t, rec), "body %s", body)
	}
}

func TestGetTreeNestsChildren(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, doRequest(s, http.MethodPost, "/api/tree", `{"label":"root"}`).Code)
	require.Equal(t, http.StatusCreated, doRequest(s, http.MethodPost, "/api/tree", `{"label":"child","parent_id":1}`).Code)

	rec := doRequest(s, http.MethodGet, "/api/tree", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t,
		`[{"id":1,"label":"root","children":[{"id":2,"label":"child","children":[]}]}]`,
		rec.Body.String())
}

func TestGetTreeIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, doRequest(s, http.MethodPost, "/api/tree", `{"label":"root"}`).Code)

	first := doRequest(s, http.MethodGet, "/api/tree", "")
	second := doRequest(s, http.MethodGet, "/api/tree", "")

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetNode(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, doRequest(s, http.MethodPost, "/api/tree", `{"label":"root"}`).Code)

	rec := doRequest(s, http.MethodGet, "/api/nodes/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var node domain.Node
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &node))
	assert.Equal(t, "root", node.Label)

	rec = doRequest(s, http.MethodGet, "/api/nodes/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NODE_NOT_FOUND", errorCode(t, rec))

	rec = doRequest(s, http.MethodGet, "/api/nodes/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rec))
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestResponsesCarryRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/tree", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	req.Header.Set("X-Request-ID", "test-id")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "test-id", rec.Header().Get("X-Request-ID"))
}
