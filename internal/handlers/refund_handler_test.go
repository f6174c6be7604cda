package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"taler-gateway-service/internal/models"
	"taler-gateway-service/internal/services"
	"taler-gateway-service/internal/taler"
)

func newRefundRouter(backend services.Backend, storefront services.Storefront) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewRefundService(backend, storefront, noopAudit{}, "-")
	router := gin.New()
	router.POST("/api/v1/orders/:orderId/refund", NewRefundHandler(svc).RefundOrder)
	return router
}

func postRefund(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/57/refund", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRefundOrderSuccess(t *testing.T) {
	backend := &fakeBackend{outcomes: map[string]models.Outcome{
		taler.PurposeCreateRefund: {Success: true, HTTPStatus: 200, Body: `{"refund_redirect_url":"https://refund/y"}`},
	}}
	order := handlerTestOrder()
	order.Status = "completed"
	storefront := &fakeStorefront{order: order}

	rec := postRefund(newRefundRouter(backend, storefront),
		`{"amount":"3.25","reason":"damaged goods","userId":"admin-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RefundOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Result)
	assert.Equal(t, "https://refund/y", resp.RefundURL)
	assert.Equal(t, "refunded", resp.OrderStatus)

	assert.Equal(t, "refunded", storefront.statuses["57"])
	assert.Contains(t, storefront.notes, "https://refund/y")
}

func TestRefundOrderStatusConflict(t *testing.T) {
	order := handlerTestOrder()
	order.Status = "pending"

	rec := postRefund(newRefundRouter(&fakeBackend{}, &fakeStorefront{order: order}),
		`{"amount":"3.25"}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "The status of the order does not allow for a refund.", resp.Message)
}

func TestRefundOrderBackendError(t *testing.T) {
	backend := &fakeBackend{outcomes: map[string]models.Outcome{
		taler.PurposeCreateRefund: {HTTPStatus: 500, ErrorMessage: "Internal Server Error"},
	}}
	order := handlerTestOrder()
	order.Status = "completed"

	rec := postRefund(newRefundRouter(backend, &fakeStorefront{order: order}),
		`{"amount":"3.25"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "An error occurred during the refund process")
	assert.Contains(t, resp.Error, "500 - Internal Server Error")
	assert.Equal(t, 500, resp.HTTPStatus)
}

func TestRefundOrderUnusableResponse(t *testing.T) {
	backend := &fakeBackend{outcomes: map[string]models.Outcome{
		taler.PurposeCreateRefund: {Success: true, HTTPStatus: 200, Body: `{"refund_granted":true}`},
	}}
	order := handlerTestOrder()
	order.Status = "completed"

	rec := postRefund(newRefundRouter(backend, &fakeStorefront{order: order}),
		`{"amount":"3.25"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRefundOrderRequiresAmount(t *testing.T) {
	rec := postRefund(newRefundRouter(&fakeBackend{}, &fakeStorefront{}), `{"reason":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
