package handlers

import (
	"time"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/service/health"
)

func userToResponse(u domain.User) userDTO {
	out := userDTO{
		ID:            u.ID,
		Email:         u.Email,
		Role:          string(u.Role),
		Name:          u.Name,
		Phone:         u.Phone,
		VehicleInfo:   u.VehicleInfo,
		LicenseNumber: u.LicenseNumber,
		CreatedAt:     u.CreatedAt,
	}
	if u.IsDriver() {
		available := u.IsAvailable
		out.IsAvailable = &available
	}
	return out
}

func usersToResponse(list []domain.User) []userDTO {
	out := make([]userDTO, 0, len(list))
	for _, u := range list {
		out = append(out, userToResponse(u))
	}
	return out
}

func (r createDriverRequest) toModel() domain.User {
	return domain.User{
		Email:         r.Email,
		Name:          r.Name,
		Phone:         r.Phone,
		VehicleInfo:   r.VehicleInfo,
		LicenseNumber: r.LicenseNumber,
	}
}

func (r updateDriverRequest) toModel(id int64) domain.PartialDriverUpdate {
	return domain.PartialDriverUpdate{
		ID:            id,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		VehicleInfo:   r.VehicleInfo,
		LicenseNumber: r.LicenseNumber,
		IsAvailable:   r.IsAvailable,
	}
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		ID:               o.ID,
		CustomerName:     o.CustomerName,
		CustomerAddress:  o.CustomerAddress,
		CustomerPhone:    o.CustomerPhone,
		ProductInfo:      o.ProductInfo,
		OrderValue:       o.OrderValue,
		Status:           string(o.Status),
		AssignedDriverID: o.AssignedDriverID,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}

func (r createOrderRequest) toModel() domain.Order {
	return domain.Order{
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		CustomerPhone:   r.CustomerPhone,
		ProductInfo:     r.ProductInfo,
		OrderValue:      r.OrderValue,
	}
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:           d.ID,
		OrderID:      d.OrderID,
		DriverID:     d.DriverID,
		Status:       string(d.Status),
		PickupTime:   d.PickupTime,
		DeliveryTime: d.DeliveryTime,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func deliveriesToResponse(list []domain.DeliveryWithOrder) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		dto := deliveryToResponse(d.Delivery)
		if d.Order != nil {
			o := orderToResponse(*d.Order)
			dto.Order = &o
		}
		out = append(out, dto)
	}
	return out
}

func assignResultToResponse(res domain.AssignResult) assignResponse {
	return assignResponse{
		Order:    orderToResponse(res.Order),
		Delivery: deliveryToResponse(res.Delivery),
		Message:  "Driver assigned successfully",
	}
}

func statsToResponse(s domain.DashboardStats) dashboardResponse {
	return dashboardResponse{
		TotalOrders:           s.TotalOrders,
		TotalAvailableDrivers: s.TotalAvailableDrivers,
		TotalCompletedOrders:  s.TotalCompletedOrders,
		TotalInProgressOrders: s.TotalInProgressOrders,
	}
}

func probeToResponse(p health.Probe) probeDTO {
	out := probeDTO{Status: p.Status, Error: p.Error}
	if p.ResponseTime != nil {
		ms := float64(*p.ResponseTime) / float64(time.Millisecond)
		out.ResponseTime = &ms
	}
	return out
}

func reportToResponse(r health.Report) healthResponse {
	out := healthResponse{
		Status:      r.Status,
		Timestamp:   r.Timestamp,
		Database:    r.Database,
		Environment: r.Environment,
		Uptime:      r.Uptime.Seconds(),
		Version:     r.Version,
	}
	out.Services.Database = probeToResponse(r.Services.Database)
	out.Services.API = probeToResponse(r.Services.API)
	return out
}
