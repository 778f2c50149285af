package handlers_test

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"delivery-manager/internal/auth"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/logx"
	"delivery-manager/internal/service/health"
)

func testLogger() logx.Logger { return logx.Nop() }

func withURLParam(r *http.Request, key, value string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rc))
}

func withSession(r *http.Request, id int64, role domain.Role) *http.Request {
	return r.WithContext(auth.WithSession(r.Context(), domain.Session{UserID: id, Role: role}))
}

type stubAuthUsecase struct {
	loginFn    func(ctx context.Context, email, password string) (domain.User, string, error)
	registerFn func(ctx context.Context, in domain.User, password string) (domain.User, string, error)
}

func (s *stubAuthUsecase) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthUsecase) Register(ctx context.Context, in domain.User, password string) (domain.User, string, error) {
	return s.registerFn(ctx, in, password)
}

type stubOrderUsecase struct {
	createFn func(ctx context.Context, in domain.Order) (domain.Order, error)
	listFn   func(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	assignFn func(ctx context.Context, orderID, driverID int64) (domain.AssignResult, error)
}

func (s *stubOrderUsecase) Create(ctx context.Context, in domain.Order) (domain.Order, error) {
	return s.createFn(ctx, in)
}

func (s *stubOrderUsecase) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	return s.listFn(ctx, f)
}

func (s *stubOrderUsecase) Assign(ctx context.Context, orderID, driverID int64) (domain.AssignResult, error) {
	return s.assignFn(ctx, orderID, driverID)
}

type stubDriverUsecase struct {
	listFn   func(ctx context.Context, f domain.DriverFilter) ([]domain.User, error)
	getFn    func(ctx context.Context, id int64) (domain.User, error)
	createFn func(ctx context.Context, in domain.User, password string) (domain.User, error)
	updateFn func(ctx context.Context, sess domain.Session, u domain.PartialDriverUpdate) (domain.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubDriverUsecase) List(ctx context.Context, f domain.DriverFilter) ([]domain.User, error) {
	return s.listFn(ctx, f)
}

func (s *stubDriverUsecase) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubDriverUsecase) Create(ctx context.Context, in domain.User, password string) (domain.User, error) {
	return s.createFn(ctx, in, password)
}

func (s *stubDriverUsecase) Update(ctx context.Context, sess domain.Session, u domain.PartialDriverUpdate) (domain.User, error) {
	return s.updateFn(ctx, sess, u)
}

func (s *stubDriverUsecase) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubDeliveryUsecase struct {
	listFn   func(ctx context.Context, sess domain.Session, f domain.DeliveryFilter) ([]domain.DeliveryWithOrder, error)
	updateFn func(ctx context.Context, sess domain.Session, upd domain.StatusUpdate) (domain.Delivery, error)
}

func (s *stubDeliveryUsecase) List(ctx context.Context, sess domain.Session, f domain.DeliveryFilter) ([]domain.DeliveryWithOrder, error) {
	return s.listFn(ctx, sess, f)
}

func (s *stubDeliveryUsecase) UpdateStatus(ctx context.Context, sess domain.Session, upd domain.StatusUpdate) (domain.Delivery, error) {
	return s.updateFn(ctx, sess, upd)
}

type stubDashboardUsecase struct {
	statsFn func(ctx context.Context) (domain.DashboardStats, error)
}

func (s *stubDashboardUsecase) Stats(ctx context.Context) (domain.DashboardStats, error) {
	return s.statsFn(ctx)
}

type stubHealthUsecase struct {
	report health.Report
}

func (s *stubHealthUsecase) Check(context.Context) health.Report { return s.report }
