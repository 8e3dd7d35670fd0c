package apitest

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Magic IDs let tests force specific backend behavior on path-addressed
// records, the same trick the record ID itself selects the scenario.
const (
	IDNotFound     = "MISSING404"
	IDUnauthorized = "EXPIRED401"
	IDBusinessRule = "BLOCKED422"
	IDServerError  = "BROKEN500"
)

// Seeded credentials accepted by the login handler.
const (
	AdminEmail       = "admin@kampomido.test"
	AdminPassword    = "admin-secret"
	CustomerEmail    = "asha@kampomido.test"
	CustomerPassword = "customer-secret"
)

type account struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash []byte
}

type customerRecord struct {
	ID          string  `json:"_id"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	GoldBalance float64 `json:"goldBalance"`
	KYCStatus   string  `json:"kycStatus"`
	CreatedAt   string  `json:"createdAt"`
}

type transactionRecord struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Gold         float64 `json:"gold"`
	RateUsed     float64 `json:"rateUsed"`
	Status       string  `json:"status"`
	PaymentMode  string  `json:"paymentMode"`
	CustomerName string  `json:"customerName"`
	CreatedAt    string  `json:"createdAt"`
}

type kycDocument struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type kycRecord struct {
	ID           string        `json:"_id"`
	CustomerName string        `json:"customerName"`
	Documents    []kycDocument `json:"documents"`
	Status       string        `json:"status"`
	Remark       string        `json:"remark"`
	SubmittedAt  string        `json:"submittedAt"`
}

type notificationRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

type statementRecord struct {
	ID          string  `json:"id"`
	Period      string  `json:"period"`
	OpeningGold float64 `json:"openingGold"`
	ClosingGold float64 `json:"closingGold"`
	GeneratedAt string  `json:"generatedAt"`
}

// store is the in-memory dataset behind the fake API. All handlers take the
// lock so concurrent test clients see consistent reads.
type store struct {
	mu            sync.RWMutex
	accounts      map[string]account
	customers     []customerRecord
	deposits      []transactionRecord
	withdrawals   []transactionRecord
	kyc           []kycRecord
	notifications []notificationRecord
	statements    []statementRecord
	ratePerGram   float64
}

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}

func seedStore() *store {
	admin := account{
		ID:           uuid.NewString(),
		Name:         "Kampo Admin",
		Email:        AdminEmail,
		Role:         "admin",
		PasswordHash: mustHash(AdminPassword),
	}
	customer := account{
		ID:           uuid.NewString(),
		Name:         "Asha Pillai",
		Email:        CustomerEmail,
		Role:         "customer",
		PasswordHash: mustHash(CustomerPassword),
	}

	return &store{
		accounts: map[string]account{
			admin.Email:    admin,
			customer.Email: customer,
		},
		customers: []customerRecord{
			{
				ID:          uuid.NewString(),
				FullName:    "Asha Pillai",
				Email:       CustomerEmail,
				Phone:       "+919812345678",
				GoldBalance: 12.5,
				KYCStatus:   "approved",
				CreatedAt:   "2026-01-12T09:00:00Z",
			},
			{
				ID:          uuid.NewString(),
				FullName:    "Ravi Menon",
				Email:       "ravi@kampomido.test",
				GoldBalance: 0,
				KYCStatus:   "",
				CreatedAt:   "2026-02-03T11:30:00Z",
			},
		},
		deposits: []transactionRecord{
			{
				ID:           uuid.NewString(),
				Amount:       10000,
				Gold:         1.6,
				RateUsed:     6250,
				Status:       "pending",
				PaymentMode:  "upi",
				CustomerName: "Asha Pillai",
				CreatedAt:    "2026-08-20T10:00:00Z",
			},
			{
				ID:           uuid.NewString(),
				Amount:       25000,
				Gold:         4.1,
				RateUsed:     6100,
				Status:       "converted",
				PaymentMode:  "bank",
				CustomerName: "Ravi Menon",
				CreatedAt:    "2026-07-01T15:45:00Z",
			},
		},
		withdrawals: []transactionRecord{
			{
				ID:           uuid.NewString(),
				Amount:       5000,
				Gold:         0.8,
				RateUsed:     6250,
				Status:       "pending",
				CustomerName: "Asha Pillai",
				CreatedAt:    "2026-08-25T09:15:00Z",
			},
		},
		kyc: []kycRecord{
			{
				ID:           uuid.NewString(),
				CustomerName: "Ravi Menon",
				Documents: []kycDocument{
					{Type: "aadhaar", URL: "https://files.kampomido.test/kyc/ravi-aadhaar.pdf", Status: "pending"},
				},
				Status:      "pending",
				SubmittedAt: "2026-08-10T08:00:00Z",
			},
		},
		notifications: []notificationRecord{
			{
				ID:        uuid.NewString(),
				Title:     "Deposit received",
				Message:   "Your deposit of 10000 is pending review.",
				Type:      "info",
				CreatedAt: "2026-08-20T10:00:05Z",
			},
			{
				ID:        uuid.NewString(),
				Title:     "KYC approved",
				Message:   "Your identity documents were approved.",
				Type:      "success",
				Read:      true,
				CreatedAt: "2026-08-15T12:00:00Z",
			},
		},
		statements: []statementRecord{
			{
				ID:          uuid.NewString(),
				Period:      "2026-07",
				OpeningGold: 10.2,
				ClosingGold: 12.5,
				GeneratedAt: "2026-08-01T00:00:00Z",
			},
		},
		ratePerGram: 6250,
	}
}
