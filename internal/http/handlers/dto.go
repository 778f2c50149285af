package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

type authResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

// userDTO never carries the password hash. isAvailable is only set for drivers.
type userDTO struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	IsAvailable   *bool     `json:"isAvailable,omitempty"`
	VehicleInfo   string    `json:"vehicleInfo,omitempty"`
	LicenseNumber string    `json:"licenseNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type createDriverRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	Phone         string `json:"phone,omitempty"`
	VehicleInfo   string `json:"vehicleInfo,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	// только "driver" или пусто
	Role          string `json:"role,omitempty"`
}

type updateDriverRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	VehicleInfo   *string `json:"vehicleInfo,omitempty"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
	IsAvailable   *bool   `json:"isAvailable,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type orderDTO struct {
	ID               int64     `json:"id"`
	CustomerName     string    `json:"customerName"`
	CustomerAddress  string    `json:"customerAddress"`
	CustomerPhone    string    `json:"customerPhone"`
	ProductInfo      string    `json:"productInfo"`
	OrderValue       float64   `json:"orderValue"`
	Status           string    `json:"status"`
	AssignedDriverID *int64    `json:"assignedDriverId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type createOrderRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerAddress string  `json:"customerAddress"`
	CustomerPhone   string  `json:"customerPhone"`
	ProductInfo     string  `json:"productInfo"`
	OrderValue      float64 `json:"orderValue"`
}

type assignRequest struct {
	OrderID  flexID `json:"orderId"`
	DriverID flexID `json:"driverId"`
}

type assignResponse struct {
	Order    orderDTO    `json:"order"`
	Delivery deliveryDTO `json:"delivery"`
	Message  string      `json:"message"`
}

type deliveryDTO struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"orderId"`
	DriverID     int64      `json:"driverId"`
	Status       string     `json:"status"`
	PickupTime   *time.Time `json:"pickupTime"`
	DeliveryTime *time.Time `json:"deliveryTime"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Order        *orderDTO  `json:"order,omitempty"`
}

type updateDeliveryRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type dashboardResponse struct {
	TotalOrders           int64 `json:"totalOrders"`
	TotalAvailableDrivers int64 `json:"totalAvailableDrivers"`
	TotalCompletedOrders  int64 `json:"totalCompletedOrders"`
	TotalInProgressOrders int64 `json:"totalInProgressOrders"`
}

type probeDTO struct {
	Status       string   `json:"status"`
	ResponseTime *float64 `json:"responseTime,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Database    string    `json:"database"`
	Environment string    `json:"environment"`
	Uptime      float64   `json:"uptime"`
	Version     string    `json:"version"`
	Services    struct {
		Database probeDTO `json:"database"`
		API      probeDTO `json:"api"`
	} `json:"services"`
}

var errBadID = errors.New("id must be a positive integer")

// flexID accepts both 42 and "42". Missing, null and "" decode to 0.
type flexID int64

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		b = []byte(s)
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return errBadID
	}
	*id = flexID(v)
	return nil
}
