package withdrawals

import "kampomido/internal/viewmodel"

// Withdrawal is the wire record.
type Withdrawal struct {
	ID           viewmodel.FlexID `json:"id"`
	AltID        viewmodel.FlexID `json:"_id"`
	Amount       float64          `json:"amount"`
	GoldAmount   float64          `json:"goldAmount"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"createdAt"`
	CustomerName string           `json:"customerName"`
}

// ViewModel is the flattened withdrawal row.
type ViewModel struct {
	ID           string
	Amount       float64
	Gold         float64
	StatusLabel  string
	CustomerName string
}

// ViewModel flattens a wire record with the standard placeholders.
func (w Withdrawal) ViewModel() ViewModel {
	id := w.ID.String()
	if id == "" {
		id = w.AltID.String()
	}
	return ViewModel{
		ID:           id,
		Amount:       w.Amount,
		Gold:         w.GoldAmount,
		StatusLabel:  viewmodel.StatusLabel(w.Status),
		CustomerName: viewmodel.Coalesce(w.CustomerName),
	}
}

// ViewModels flattens a list.
func ViewModels(records []Withdrawal) []ViewModel {
	out := make([]ViewModel, len(records))
	for i, r := range records {
		out[i] = r.ViewModel()
	}
	return out
}

// ListFilters are the optional query filters of the withdrawals list.
type ListFilters struct {
	Status string
	Page   int
	Limit  int
}
