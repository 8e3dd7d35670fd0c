package dashboard

// Summary is the wire shape of the admin dashboard counters.
type Summary struct {
	TotalCustomers     int     `json:"totalCustomers"`
	PendingDeposits    int     `json:"pendingDeposits"`
	PendingWithdrawals int     `json:"pendingWithdrawals"`
	PendingKYC         int     `json:"pendingKyc"`
	TotalGoldHeld      float64 `json:"totalGoldHeld"`
	GoldRate           float64 `json:"goldRate"`
	TodayDeposits      float64 `json:"todayDeposits"`
	TodayWithdrawals   float64 `json:"todayWithdrawals"`
}

// Snapshot pairs a summary with its provenance so the UI can mark stale data
// while the backend is unreachable.
type Snapshot struct {
	Summary Summary
	Stale   bool
}
