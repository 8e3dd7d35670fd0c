package statements

import (
	"kampomido/internal/viewmodel"
	str "kampomido/pkg/string"
)

// Statement is the wire record for a monthly account statement.
type Statement struct {
	ID           viewmodel.FlexID `json:"id"`
	AltID        viewmodel.FlexID `json:"_id"`
	Period       string           `json:"period"`
	Month        string           `json:"month"`
	Year         int              `json:"year"`
	OpeningGold  float64          `json:"openingGold"`
	ClosingGold  float64          `json:"closingGold"`
	TotalCredits float64          `json:"totalCredits"`
	TotalDebits  float64          `json:"totalDebits"`
	GeneratedAt  string           `json:"generatedAt"`
}

// ViewModel is the display-ready statement row.
type ViewModel struct {
	ID           string
	Period       string
	OpeningGold  float64
	ClosingGold  float64
	TotalCredits float64
	TotalDebits  float64
	GeneratedAt  string
}

// ViewModel flattens one statement.
func (s Statement) ViewModel() ViewModel {
	return ViewModel{
		ID:           str.Coalesce("", s.ID.String(), s.AltID.String()),
		Period:       viewmodel.Coalesce(s.Period, s.Month),
		OpeningGold:  s.OpeningGold,
		ClosingGold:  s.ClosingGold,
		TotalCredits: s.TotalCredits,
		TotalDebits:  s.TotalDebits,
		GeneratedAt:  viewmodel.Coalesce(s.GeneratedAt),
	}
}

// ViewModels maps statements in order.
func ViewModels(records []Statement) []ViewModel {
	out := make([]ViewModel, 0, len(records))
	for _, s := range records {
		out = append(out, s.ViewModel())
	}
	return out
}
