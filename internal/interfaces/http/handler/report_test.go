package handler

import (
	"net/http"
	"testing"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHandler_Summary(t *testing.T) {
	api := newTestAPI(t)

	_, env := api.do(t, http.MethodGet, "/api/v1/reports/summary", nil)
	empty := decodeData[dto.SummaryResponse](t, env)
	assert.Equal(t, int64(0), empty.TotalCustomers)
	assert.True(t, empty.TotalRevenue.IsZero())

	customerID, productIDs := seedOrderFixtures(t, api)
	for range 2 {
		w, _ := api.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
			"customer_id": customerID,
			"product_ids": productIDs[1:],
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := api.do(t, http.MethodGet, "/api/v1/reports/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeData[dto.SummaryResponse](t, env)
	assert.Equal(t, int64(1), summary.TotalCustomers)
	assert.Equal(t, int64(2), summary.TotalOrders)
	assert.Equal(t, "39.98", summary.TotalRevenue.StringFixed(2))
}
