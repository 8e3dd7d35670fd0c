package reports

import (
	"kampomido/internal/viewmodel"
	str "kampomido/pkg/string"
)

// LedgerFilters narrows the ledger report. Zero values are omitted from the
// query entirely, matching the backend's treatment of absent filters.
type LedgerFilters struct {
	From   string // yyyy-mm-dd
	To     string // yyyy-mm-dd
	Status string
	Page   int
	Limit  int
}

// Entry is one wire row of the transaction ledger.
type Entry struct {
	ID           viewmodel.FlexID `json:"id"`
	AltID        viewmodel.FlexID `json:"_id"`
	Type         string           `json:"type"`
	Amount       float64          `json:"amount"`
	Gold         float64          `json:"gold"`
	GoldAmount   float64          `json:"goldAmount"`
	Status       string           `json:"status"`
	CustomerName string           `json:"customerName"`
	Date         string           `json:"date"`
	CreatedAt    string           `json:"createdAt"`
}

// EntryViewModel is the display-ready ledger row.
type EntryViewModel struct {
	ID           string
	Type         string
	Amount       float64
	Gold         float64
	Status       string
	StatusLabel  string
	CustomerName string
	Date         string
}

// ViewModel flattens one ledger row.
func (e Entry) ViewModel() EntryViewModel {
	gold := e.Gold
	if gold == 0 {
		gold = e.GoldAmount
	}
	return EntryViewModel{
		ID:           str.Coalesce("", e.ID.String(), e.AltID.String()),
		Type:         viewmodel.Coalesce(e.Type),
		Amount:       e.Amount,
		Gold:         gold,
		Status:       e.Status,
		StatusLabel:  viewmodel.StatusLabel(e.Status),
		CustomerName: viewmodel.Coalesce(e.CustomerName),
		Date:         viewmodel.Coalesce(e.Date, e.CreatedAt),
	}
}

// EntryViewModels maps ledger rows in order.
func EntryViewModels(records []Entry) []EntryViewModel {
	out := make([]EntryViewModel, 0, len(records))
	for _, e := range records {
		out = append(out, e.ViewModel())
	}
	return out
}
