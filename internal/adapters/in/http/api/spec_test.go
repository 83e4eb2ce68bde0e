package api_test

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"jobmatch/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := api.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/jobs/{jobId}/matches",
		"/jobs/{jobId}/dispatch",
		"/jobs/{jobId}/offers",
		"/offers/{offerId}/accept",
		"/offers/{offerId}/reject",
		"/jobs/{jobId}/check-in",
		"/jobs/{jobId}/complete",
		"/sweeps",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
	offers := doc.Paths.Find("/jobs/{jobId}/offers")
	assert.Equal(t, "GetJobOffers", offers.Get.OperationID)
	assert.Equal(t, "ExtendOffer", offers.Post.OperationID)
}

func TestSweepReportMatchesDocument(t *testing.T) {
	doc, err := api.GetSwagger()
	require.NoError(t, err)
	schema := doc.Components.Schemas["SweepReport"]
	require.NotNil(t, schema)

	raw, err := json.Marshal(api.SweepReport{})
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.ElementsMatch(t, slices.Collect(maps.Keys(fields)), slices.Collect(maps.Keys(schema.Value.Properties)))
	assert.ElementsMatch(t, slices.Collect(maps.Keys(fields)), schema.Value.Required)
}

type capture struct {
	api.ServerInterface
	offerID  api.OfferId
	workerID api.WorkerId
	rematch  *bool
}

func (c *capture) RejectOffer(ctx echo.Context, offerId api.OfferId, params api.RejectOfferParams) error {
	c.offerID, c.workerID, c.rematch = offerId, params.XWorkerId, params.Rematch
	return ctx.NoContent(http.StatusNoContent)
}

func TestWrapper_BindsPathHeaderAndQuery(t *testing.T) {
	e := echo.New()
	handler := &capture{}
	api.RegisterHandlersWithBaseURL(e, handler, "/api/v1")

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/offers/0b5e6c82-5b5f-4e8b-9d56-1f0b8f1c2a10/reject?rematch=false", nil)
	req.Header.Set("X-Worker-Id", "7d9f0ad6-3b0e-4c56-8f5c-2b3f20a7e0c1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "0b5e6c82-5b5f-4e8b-9d56-1f0b8f1c2a10", handler.offerID.String())
	assert.Equal(t, "7d9f0ad6-3b0e-4c56-8f5c-2b3f20a7e0c1", handler.workerID.String())
	require.NotNil(t, handler.rematch)
	assert.False(t, *handler.rematch)
}

func TestWrapper_RejectsBadInput(t *testing.T) {
	e := echo.New()
	api.RegisterHandlersWithBaseURL(e, &capture{}, "/api/v1")

	tests := []struct {
		name   string
		path   string
		header string
	}{
		{"bad path id", "/api/v1/offers/not-a-uuid/reject", "7d9f0ad6-3b0e-4c56-8f5c-2b3f20a7e0c1"},
		{"missing header", "/api/v1/offers/0b5e6c82-5b5f-4e8b-9d56-1f0b8f1c2a10/reject", ""},
		{"bad header", "/api/v1/offers/0b5e6c82-5b5f-4e8b-9d56-1f0b8f1c2a10/reject", "nope"},
		{"bad query", "/api/v1/offers/0b5e6c82-5b5f-4e8b-9d56-1f0b8f1c2a10/reject?rematch=maybe", "7d9f0ad6-3b0e-4c56-8f5c-2b3f20a7e0c1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("X-Worker-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
