package apitest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Envelope shapes vary per endpoint on purpose. The real backend grew by
// accretion and wraps responses inconsistently, and callers must cope with
// every shape, so the fake reproduces the spread: some routes nest twice,
// some name the resource, some return the payload bare.

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[loginRequest](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password == "" || (req.Email == "" && req.Phone == "") {
		s.writeValidationError(w, map[string]string{"password": "password is required"})
		return
	}

	s.store.mu.RLock()
	acct, ok := s.store.accounts[strings.ToLower(req.Email)]
	s.store.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"user": map[string]any{
				"_id":   acct.ID,
				"name":  acct.Name,
				"email": acct.Email,
				"role":  acct.Role,
			},
			"token": s.IssueToken(acct.Role),
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "logged out"})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	users := make([]map[string]any, 0, len(s.store.accounts))
	for _, acct := range s.store.accounts {
		users = append(users, map[string]any{
			"_id":   acct.ID,
			"name":  acct.Name,
			"email": acct.Email,
			"role":  acct.Role,
		})
	}
	// Double-nested shape.
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"data": users},
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[registerRequest](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeValidationError(w, map[string]string{
			"email":    "email is required",
			"password": "password is required",
		})
		return
	}

	email := strings.ToLower(req.Email)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, exists := s.store.accounts[email]; exists {
		s.writeError(w, http.StatusConflict, "email already registered")
		return
	}
	acct := account{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		Role:         req.Role,
		PasswordHash: mustHash(req.Password),
	}
	s.store.accounts[email] = acct

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data": map[string]any{
			"user": map[string]any{
				"_id":   acct.ID,
				"name":  acct.Name,
				"email": acct.Email,
				"role":  acct.Role,
			},
		},
	})
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	// Resource-named shape under data.
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"customers": s.store.customers},
	})
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, c := range s.store.customers {
		if c.ID == id {
			// Resource-named shape at the root.
			s.writeJSON(w, http.StatusOK, map[string]any{"customer": c})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "customer not found")
}

type customerForm struct {
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Balance  float64 `json:"goldBalance"`
}

func (s *Server) handleAddCustomer(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[customerForm](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.FullName == "" || req.Email == "" {
		s.writeValidationError(w, map[string]string{
			"full_name": "full_name is required",
			"email":     "email is required",
		})
		return
	}

	record := customerRecord{
		ID:          uuid.NewString(),
		FullName:    req.FullName,
		Email:       strings.ToLower(req.Email),
		Phone:       req.Phone,
		GoldBalance: req.Balance,
		CreatedAt:   timestamp(),
	}
	s.store.mu.Lock()
	s.store.customers = append(s.store.customers, record)
	s.store.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    record,
	})
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	req, err := decodeBody[customerForm](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i, c := range s.store.customers {
		if c.ID != id {
			continue
		}
		if req.FullName != "" {
			s.store.customers[i].FullName = req.FullName
		}
		if req.Email != "" {
			s.store.customers[i].Email = strings.ToLower(req.Email)
		}
		if req.Phone != "" {
			s.store.customers[i].Phone = req.Phone
		}
		s.writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"customer": s.store.customers[i]},
		})
		return
	}
	s.writeError(w, http.StatusNotFound, "customer not found")
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i, c := range s.store.customers {
		if c.ID == id {
			s.store.customers = append(s.store.customers[:i], s.store.customers[i+1:]...)
			s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "customer not found")
}

func (s *Server) handleCustomerExists(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	exists := false
	for _, acct := range s.store.accounts {
		if acct.ID != userID {
			continue
		}
		for _, c := range s.store.customers {
			if strings.EqualFold(c.Email, acct.Email) {
				exists = true
			}
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"exists": exists},
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request, records []transactionRecord, wrap func([]transactionRecord) any) {
	status := r.URL.Query().Get("status")
	filtered := make([]transactionRecord, 0, len(records))
	for _, t := range records {
		if status == "" || strings.EqualFold(t.Status, status) {
			filtered = append(filtered, t)
		}
	}
	s.writeJSON(w, http.StatusOK, wrap(filtered))
}

func (s *Server) handleListDeposits(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	// Bare list under data.
	s.listTransactions(w, r, s.store.deposits, func(items []transactionRecord) any {
		return map[string]any{"success": true, "data": items}
	})
}

func (s *Server) handleListWithdrawals(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	s.listTransactions(w, r, s.store.withdrawals, func(items []transactionRecord) any {
		return map[string]any{
			"success": true,
			"data":    map[string]any{"withdrawals": items},
		}
	})
}

func (s *Server) findTransaction(records []transactionRecord, id string) (int, bool) {
	for i, t := range records {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Server) handleGetDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	if i, ok := s.findTransaction(s.store.deposits, id); ok {
		// Bare payload at the root.
		s.writeJSON(w, http.StatusOK, s.store.deposits[i])
		return
	}
	s.writeError(w, http.StatusNotFound, "deposit not found")
}

type transactionUpdate struct {
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"paymentMode"`
	Remark      string  `json:"remark"`
}

func (s *Server) handleUpdateDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	req, err := decodeBody[transactionUpdate](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := s.findTransaction(s.store.deposits, id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "deposit not found")
		return
	}
	if strings.EqualFold(s.store.deposits[i].Status, "converted") {
		s.writeError(w, http.StatusUnprocessableEntity, "converted deposits cannot be edited")
		return
	}
	if req.Amount > 0 {
		s.store.deposits[i].Amount = req.Amount
	}
	if req.PaymentMode != "" {
		s.store.deposits[i].PaymentMode = req.PaymentMode
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"deposit": s.store.deposits[i]},
	})
}

func (s *Server) setTransactionStatus(w http.ResponseWriter, records []transactionRecord, id, status, resource string) {
	i, ok := s.findTransaction(records, id)
	if !ok {
		s.writeError(w, http.StatusNotFound, resource+" not found")
		return
	}
	if !strings.EqualFold(records[i].Status, "pending") {
		s.writeError(w, http.StatusUnprocessableEntity, "only pending records can be resolved")
		return
	}
	records[i].Status = status
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{resource: records[i]},
	})
}

func (s *Server) handleApproveDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.setTransactionStatus(w, s.store.deposits, id, "approved", "deposit")
}

func (s *Server) handleRejectDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.setTransactionStatus(w, s.store.deposits, id, "rejected", "deposit")
}

func (s *Server) handleDeleteDeposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := s.findTransaction(s.store.deposits, id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "deposit not found")
		return
	}
	if strings.EqualFold(s.store.deposits[i].Status, "converted") {
		s.writeError(w, http.StatusUnprocessableEntity, "converted deposits cannot be deleted")
		return
	}
	s.store.deposits = append(s.store.deposits[:i], s.store.deposits[i+1:]...)
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleGetWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	if i, ok := s.findTransaction(s.store.withdrawals, id); ok {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    s.store.withdrawals[i],
		})
		return
	}
	s.writeError(w, http.StatusNotFound, "withdrawal not found")
}

func (s *Server) handleApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.setTransactionStatus(w, s.store.withdrawals, id, "approved", "withdrawal")
}

func (s *Server) handleRejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.setTransactionStatus(w, s.store.withdrawals, id, "rejected", "withdrawal")
}

func (s *Server) handleDeleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := s.findTransaction(s.store.withdrawals, id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "withdrawal not found")
		return
	}
	s.store.withdrawals = append(s.store.withdrawals[:i], s.store.withdrawals[i+1:]...)
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleListKYC(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	filtered := make([]kycRecord, 0, len(s.store.kyc))
	for _, k := range s.store.kyc {
		if status == "" || strings.EqualFold(k.Status, status) {
			filtered = append(filtered, k)
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"data": filtered},
	})
}

func (s *Server) findKYC(id string) (int, bool) {
	for i, k := range s.store.kyc {
		if k.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Server) handleGetKYC(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	if i, ok := s.findKYC(id); ok {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"kyc": s.store.kyc[i]},
		})
		return
	}
	s.writeError(w, http.StatusNotFound, "kyc request not found")
}

type kycStatusUpdate struct {
	Status string `json:"status"`
	Remark string `json:"remark"`
}

func (s *Server) handleUpdateKYCStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	req, err := decodeBody[kycStatusUpdate](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch strings.ToLower(req.Status) {
	case "pending", "approved", "rejected":
	default:
		s.writeValidationError(w, map[string]string{"status": "status must be one of: pending approved rejected"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := s.findKYC(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "kyc request not found")
		return
	}
	s.store.kyc[i].Status = strings.ToLower(req.Status)
	s.store.kyc[i].Remark = req.Remark
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"kyc": s.store.kyc[i]},
	})
}

func (s *Server) handleKYCReupload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	i, ok := s.findKYC(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "kyc request not found")
		return
	}
	s.store.kyc[i].Status = "pending"
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "reupload requested"})
}

func (s *Server) handleGetGoldRate(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"goldRate": map[string]any{
				"ratePerGram": s.store.ratePerGram,
				"updatedAt":   timestamp(),
			},
		},
	})
}

type goldRateUpdate struct {
	RatePerGram float64 `json:"ratePerGram"`
}

func (s *Server) handleUpdateGoldRate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[goldRateUpdate](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.RatePerGram <= 0 {
		s.writeValidationError(w, map[string]string{"rate_per_gram": "rate_per_gram must be greater than 0"})
		return
	}

	s.store.mu.Lock()
	s.store.ratePerGram = req.RatePerGram
	s.store.mu.Unlock()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"goldRate": map[string]any{
				"ratePerGram": req.RatePerGram,
				"updatedAt":   timestamp(),
			},
		},
	})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    s.store.notifications,
	})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i, n := range s.store.notifications {
		if n.ID == id {
			s.store.notifications[i].Read = true
			s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "notification not found")
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	for i := range s.store.notifications {
		s.store.notifications[i].Read = true
	}
	s.store.mu.Unlock()
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleListStatements(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"statements": s.store.statements},
	})
}

func (s *Server) handleDownloadStatement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.forced(w, id) {
		return
	}
	format := r.URL.Query().Get("format")
	ext, contentType := "pdf", "application/pdf"
	if format == "excel" {
		ext, contentType = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	for _, st := range s.store.statements {
		if st.ID == id {
			w.Header().Set("Content-Type", contentType)
			w.Header().Set("Content-Disposition",
				fmt.Sprintf(`attachment; filename="statement-%s.%s"`, st.Period, ext))
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprintf(w, "statement %s export", st.Period)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "statement not found")
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	status := r.URL.Query().Get("status")
	entries := make([]map[string]any, 0, len(s.store.deposits)+len(s.store.withdrawals))
	appendEntry := func(kind string, t transactionRecord) {
		if status != "" && !strings.EqualFold(t.Status, status) {
			return
		}
		entries = append(entries, map[string]any{
			"id":           t.ID,
			"type":         kind,
			"amount":       t.Amount,
			"gold":         t.Gold,
			"status":       t.Status,
			"customerName": t.CustomerName,
			"date":         t.CreatedAt,
		})
	}
	for _, t := range s.store.deposits {
		appendEntry("deposit", t)
	}
	for _, t := range s.store.withdrawals {
		appendEntry("withdrawal", t)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"ledger": entries},
	})
}

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	pendingDeposits, pendingWithdrawals := 0, 0
	for _, t := range s.store.deposits {
		if strings.EqualFold(t.Status, "pending") {
			pendingDeposits++
		}
	}
	for _, t := range s.store.withdrawals {
		if strings.EqualFold(t.Status, "pending") {
			pendingWithdrawals++
		}
	}
	pendingKYC := 0
	for _, k := range s.store.kyc {
		if strings.EqualFold(k.Status, "pending") {
			pendingKYC++
		}
	}
	totalGold := 0.0
	for _, c := range s.store.customers {
		totalGold += c.GoldBalance
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"summary": map[string]any{
				"totalCustomers":     len(s.store.customers),
				"pendingDeposits":    pendingDeposits,
				"pendingWithdrawals": pendingWithdrawals,
				"pendingKyc":         pendingKYC,
				"totalGoldHeld":      totalGold,
				"goldRate":           s.store.ratePerGram,
			},
		},
	})
}
