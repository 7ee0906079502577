package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	v1 "github.com/wattline/wattline/internal/api/v1"
	httperr "github.com/wattline/wattline/internal/core/errors"
	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/core/storage/memory"
	storagemocks "github.com/wattline/wattline/internal/mocks/storage"
)

func newTestRouter(t *testing.T, maxBodySizeMB int) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := memory.New()
	res := hourly()
	require.NoError(t, mem.SaveResource(context.Background(), &res))

	svc := NewService(NewResourceStore(mem, mem, DefaultOptions()), mem, maxBodySizeMB)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r, mem
}

func post(r *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestIngestHandler_Success(t *testing.T) {
	r, mem := newTestRouter(t, 1)

	// Out of order on purpose; the handler applies them by time.
	body, _ := json.Marshal([]v1.RawSample{
		{Time: at(13, 0), Value: 40, Unit: "W"},
		{Time: at(10, 0), Value: 10, Unit: "W"},
	})

	resp := post(r, "/v1/resources/meter-1/samples", body)
	require.Equal(t, http.StatusAccepted, resp.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "accepted", result["status"])
	require.Equal(t, 2.0, result["count"])

	require.Equal(t, 4, mem.Count(resource.TierDetailed, "meter-1"))
}

func TestIngestHandler_Errors(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		body      string
		wantCode  int
		wantError string
	}{
		{
			name:      "unknown resource",
			path:      "/v1/resources/missing/samples",
			body:      `[]`,
			wantCode:  http.StatusNotFound,
			wantError: httperr.HttpResourceNotFoundError,
		},
		{
			name:      "malformed json",
			path:      "/v1/resources/meter-1/samples",
			body:      `not json`,
			wantCode:  http.StatusBadRequest,
			wantError: httperr.HttpInvalidJsonError,
		},
		{
			name:      "missing time",
			path:      "/v1/resources/meter-1/samples",
			body:      `[{"value": 1, "unit": "W"}]`,
			wantCode:  http.StatusBadRequest,
			wantError: httperr.HttpInvalidSampleError,
		},
		{
			name:      "unit mismatch",
			path:      "/v1/resources/meter-1/samples",
			body:      `[{"time": "2026-02-11T10:00:00Z", "value": 1, "unit": "kWh"}]`,
			wantCode:  http.StatusBadRequest,
			wantError: httperr.HttpInvalidSampleError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newTestRouter(t, 1)

			resp := post(r, tc.path, []byte(tc.body))
			require.Equal(t, tc.wantCode, resp.Code)

			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, tc.wantError, errResp.ErrorType)
		})
	}
}

func TestIngestHandler_BodyTooLarge(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	body := "[" + strings.Repeat(" ", 1024*1024) + "]"
	resp := post(r, "/v1/resources/meter-1/samples", []byte(body))
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestIngestHandler_StorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	res := hourly()
	samples := storagemocks.NewSampleStore(t)
	resources := storagemocks.NewResourceRepository(t)
	resources.EXPECT().GetResource(mock.Anything, "meter-1").Return(&res, nil).Once()
	samples.EXPECT().
		LatestSampleAtOrBefore(mock.Anything, resource.TierDetailed, "meter-1", mock.Anything).
		Return(resource.Sample{}, false, errors.New("db down")).
		Once()

	svc := NewService(NewResourceStore(samples, resources, DefaultOptions()), resources, 1)
	r := gin.New()
	svc.RegisterRoutes(r)

	resp := post(r, "/v1/resources/meter-1/samples", []byte(`[{"time": "2026-02-11T10:00:00Z", "value": 1}]`))
	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInternalError, errResp.ErrorType)
}

func TestLatestHandler(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	require.Equal(t, http.StatusNoContent, get(r, "/v1/resources/meter-1/latest").Code)
	require.Equal(t, http.StatusNotFound, get(r, "/v1/resources/missing/latest").Code)

	body, _ := json.Marshal([]v1.RawSample{{Time: at(10, 15), Value: 12.5}})
	require.Equal(t, http.StatusAccepted, post(r, "/v1/resources/meter-1/samples", body).Code)

	resp := get(r, "/v1/resources/meter-1/latest")
	require.Equal(t, http.StatusOK, resp.Code)

	var value v1.ResourceValue
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &value))
	require.Equal(t, 12.5, value.Value)
	require.Equal(t, "W", value.Unit)
	require.True(t, value.Time.Equal(at(10, 0)))
}
