package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/http/handlers"
)

func newOrderHandler(uc *stubOrderUsecase) *handlers.OrderHandler {
	return handlers.NewOrderHandler(testLogger(), uc, uc)
}

func TestOrderHandler_List_PassesFilter(t *testing.T) {
	t.Parallel()

	driverID := int64(3)
	uc := &stubOrderUsecase{
		listFn: func(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
			require.NotNil(t, f.Status)
			require.Equal(t, domain.OrderAssigned, *f.Status)
			require.Equal(t, "pizza", f.Search)
			return []domain.Order{{ID: 5, CustomerName: "Bob", Status: domain.OrderAssigned, AssignedDriverID: &driverID}}, nil
		},
	}

	w := httptest.NewRecorder()
	newOrderHandler(uc).List(w, httptest.NewRequest(http.MethodGet, "/orders?status=assigned&search=+pizza+", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Bob", resp[0]["customerName"])
	assert.Equal(t, float64(3), resp[0]["assignedDriverId"])
}

func TestOrderHandler_List_EmptyIsArray(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		listFn: func(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
			require.Nil(t, f.Status)
			return nil, nil
		},
	}
	w := httptest.NewRecorder()
	newOrderHandler(uc).List(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestOrderHandler_List_BadStatus(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		listFn: func(context.Context, domain.OrderFilter) ([]domain.Order, error) {
			return nil, apperr.New(apperr.ErrInvalid, "invalid status filter")
		},
	}
	w := httptest.NewRecorder()
	newOrderHandler(uc).List(w, httptest.NewRequest(http.MethodGet, "/orders?status=lost", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid status filter"}`, w.Body.String())
}

func TestOrderHandler_Create(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		createFn: func(_ context.Context, in domain.Order) (domain.Order, error) {
			require.Equal(t, 250.5, in.OrderValue)
			in.ID = 11
			in.Status = domain.OrderPending
			return in, nil
		},
	}
	body := `{"customerName":"Bob","customerAddress":"Main st","customerPhone":"+1","productInfo":"pizza","orderValue":250.5}`
	w := httptest.NewRecorder()
	newOrderHandler(uc).Create(w, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, float64(11), resp["id"])
	assert.Equal(t, "pending", resp["status"])
	assert.Nil(t, resp["assignedDriverId"])
}

func TestOrderHandler_Create_Invalid(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		createFn: func(context.Context, domain.Order) (domain.Order, error) {
			return domain.Order{}, apperr.New(apperr.ErrInvalid, "orderValue must be greater than 0")
		},
	}
	body := `{"customerName":"Bob","customerAddress":"a","customerPhone":"b","productInfo":"c","orderValue":0}`
	w := httptest.NewRecorder()
	newOrderHandler(uc).Create(w, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"orderValue must be greater than 0"}`, w.Body.String())
}

func TestOrderHandler_Assign_AcceptsNumbersAndStrings(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"orderId":4,"driverId":9}`,
		`{"orderId":"4","driverId":"9"}`,
		`{"orderId":4,"driverId":"9"}`,
	} {
		t.Run(body, func(t *testing.T) {
			t.Parallel()

			uc := &stubOrderUsecase{
				assignFn: func(_ context.Context, orderID, driverID int64) (domain.AssignResult, error) {
					require.Equal(t, int64(4), orderID)
					require.Equal(t, int64(9), driverID)
					return domain.AssignResult{
						Order:    domain.Order{ID: 4, Status: domain.OrderAssigned, AssignedDriverID: &driverID},
						Delivery: domain.Delivery{ID: 1, OrderID: 4, DriverID: 9, Status: domain.DeliveryPending},
					}, nil
				},
			}
			w := httptest.NewRecorder()
			newOrderHandler(uc).Assign(w, httptest.NewRequest(http.MethodPost, "/orders/assign", strings.NewReader(body)))

			require.Equal(t, http.StatusOK, w.Code)
			var resp struct {
				Order    map[string]any `json:"order"`
				Delivery map[string]any `json:"delivery"`
				Message  string         `json:"message"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "Driver assigned successfully", resp.Message)
			assert.Equal(t, "assigned", resp.Order["status"])
			assert.Equal(t, float64(9), resp.Order["assignedDriverId"])
			assert.Equal(t, "pending", resp.Delivery["status"])
			assert.Nil(t, resp.Delivery["pickupTime"])
			assert.Nil(t, resp.Delivery["deliveryTime"])
		})
	}
}

func TestOrderHandler_Assign_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "missing ids", err: apperr.New(apperr.ErrInvalid, "Order ID and Driver ID are required"), wantCode: http.StatusBadRequest},
		{name: "order not pending", err: apperr.New(apperr.ErrInvalid, "order is not available for assignment"), wantCode: http.StatusBadRequest},
		{name: "driver missing", err: apperr.New(apperr.ErrNotFound, "driver not found"), wantCode: http.StatusNotFound},
		{name: "lost race", err: apperr.New(apperr.ErrConflict, "order was assigned concurrently"), wantCode: http.StatusConflict},
		{name: "db", err: errors.New("connection refused"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &stubOrderUsecase{
				assignFn: func(context.Context, int64, int64) (domain.AssignResult, error) {
					return domain.AssignResult{}, tt.err
				},
			}
			w := httptest.NewRecorder()
			newOrderHandler(uc).Assign(w, httptest.NewRequest(http.MethodPost, "/orders/assign", strings.NewReader(`{"orderId":1,"driverId":2}`)))

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestOrderHandler_Assign_NonNumericID(t *testing.T) {
	t.Parallel()

	uc := &stubOrderUsecase{
		assignFn: func(context.Context, int64, int64) (domain.AssignResult, error) {
			require.FailNow(t, "usecase must not be called")
			return domain.AssignResult{}, nil
		},
	}
	w := httptest.NewRecorder()
	newOrderHandler(uc).Assign(w, httptest.NewRequest(http.MethodPost, "/orders/assign", strings.NewReader(`{"orderId":"abc","driverId":2}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
