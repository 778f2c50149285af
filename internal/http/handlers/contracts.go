package handlers

import (
	"context"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/service/health"
)

type authUsecase interface {
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Register(ctx context.Context, in domain.User, password string) (domain.User, string, error)
}

type orderUsecase interface {
	Create(ctx context.Context, in domain.Order) (domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
}

type assignUsecase interface {
	Assign(ctx context.Context, orderID, driverID int64) (domain.AssignResult, error)
}

type driverUsecase interface {
	List(ctx context.Context, f domain.DriverFilter) ([]domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, in domain.User, password string) (domain.User, error)
	Update(ctx context.Context, sess domain.Session, u domain.PartialDriverUpdate) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type deliveryUsecase interface {
	List(ctx context.Context, sess domain.Session, f domain.DeliveryFilter) ([]domain.DeliveryWithOrder, error)
	UpdateStatus(ctx context.Context, sess domain.Session, upd domain.StatusUpdate) (domain.Delivery, error)
}

type dashboardUsecase interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

type healthUsecase interface {
	Check(ctx context.Context) health.Report
}
