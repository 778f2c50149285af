package domain

// DashboardStats holds the admin dashboard counters.
type DashboardStats struct {
	TotalOrders           int64
	TotalAvailableDrivers int64
	TotalCompletedOrders  int64
	TotalInProgressOrders int64
}
