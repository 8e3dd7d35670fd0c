package deposits

import (
	"strings"

	"kampomido/internal/viewmodel"
	str "kampomido/pkg/string"
)

// StatusConverted marks a deposit already revalued into gold holdings. The
// backend rejects deleting these; the client pre-empts that with a local guard.
const StatusConverted = "converted"

// Deposit is the wire record.
type Deposit struct {
	ID           viewmodel.FlexID `json:"id"`
	AltID        viewmodel.FlexID `json:"_id"`
	Amount       float64          `json:"amount"`
	GoldAmount   float64          `json:"goldAmount"`
	Gold         float64          `json:"gold"`
	RateUsed     float64          `json:"rateUsed"`
	Status       string           `json:"status"`
	PaymentMode  string           `json:"paymentMode"`
	CreatedAt    string           `json:"createdAt"`
	CustomerName string           `json:"customerName"`
	Customer     *struct {
		Name      string `json:"name"`
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
	} `json:"customer"`
}

// ViewModel is the flattened deposit row.
type ViewModel struct {
	ID           string
	Amount       float64
	Gold         float64 // grams; 0 when the record carries no gold amount yet
	RateUsed     float64
	Status       string // raw status, for guards
	StatusLabel  string // display label
	PaymentMode  string
	CustomerName string
}

// ViewModel flattens a wire record. Gold defaults to 0 when neither gold
// field is present; the status label is always populated.
func (d Deposit) ViewModel() ViewModel {
	id := d.ID.String()
	if id == "" {
		id = d.AltID.String()
	}

	gold := d.GoldAmount
	if gold == 0 {
		gold = d.Gold
	}

	var nested string
	if d.Customer != nil {
		nested = str.Coalesce("", d.Customer.Name, viewmodel.FullName(d.Customer.FirstName, d.Customer.LastName))
	}

	return ViewModel{
		ID:           id,
		Amount:       d.Amount,
		Gold:         gold,
		RateUsed:     d.RateUsed,
		Status:       strings.ToLower(strings.TrimSpace(d.Status)),
		StatusLabel:  viewmodel.StatusLabel(d.Status),
		PaymentMode:  viewmodel.Coalesce(d.PaymentMode),
		CustomerName: viewmodel.Coalesce(nested, d.CustomerName),
	}
}

// ViewModels flattens a list.
func ViewModels(records []Deposit) []ViewModel {
	out := make([]ViewModel, len(records))
	for i, r := range records {
		out[i] = r.ViewModel()
	}
	return out
}

// IsConverted reports whether the row is protected from deletion.
func (v ViewModel) IsConverted() bool {
	return v.Status == StatusConverted
}

// UpdateForm carries the editable deposit fields.
type UpdateForm struct {
	Amount      float64 `json:"amount" validate:"omitempty,gt=0"`
	PaymentMode string  `json:"paymentMode" validate:"omitempty,oneof=cash upi bank"`
	Remark      string  `json:"remark" validate:"omitempty,max=500"`
}

// ListFilters are the optional query filters of the deposits list. Falsy
// values are omitted from the query.
type ListFilters struct {
	Status string
	Page   int
	Limit  int
}
