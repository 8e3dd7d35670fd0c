package kyc

import "kampomido/internal/viewmodel"

// Document is one uploaded KYC artifact.
type Document struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// Request is the wire record of a KYC submission.
type Request struct {
	ID           viewmodel.FlexID `json:"id"`
	AltID        viewmodel.FlexID `json:"_id"`
	CustomerName string           `json:"customerName"`
	Customer     *struct {
		Name      string `json:"name"`
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
	} `json:"customer"`
	Status      string     `json:"status"`
	Documents   []Document `json:"documents"`
	SubmittedAt string     `json:"submittedAt"`
}

// ViewModel is the flattened KYC row.
type ViewModel struct {
	ID           string
	CustomerName string
	StatusLabel  string
	Documents    int
	SubmittedAt  string
}

// ViewModel flattens a wire record with the standard placeholders.
func (r Request) ViewModel() ViewModel {
	id := r.ID.String()
	if id == "" {
		id = r.AltID.String()
	}
	nested := ""
	if r.Customer != nil {
		nested = viewmodel.FullName(r.Customer.FirstName, r.Customer.LastName)
		if r.Customer.Name != "" {
			nested = r.Customer.Name
		}
	}
	return ViewModel{
		ID:           id,
		CustomerName: viewmodel.Coalesce(nested, r.CustomerName),
		StatusLabel:  viewmodel.StatusLabel(r.Status),
		Documents:    len(r.Documents),
		SubmittedAt:  viewmodel.Coalesce(r.SubmittedAt),
	}
}

// ViewModels flattens a list.
func ViewModels(records []Request) []ViewModel {
	out := make([]ViewModel, len(records))
	for i, r := range records {
		out[i] = r.ViewModel()
	}
	return out
}

// StatusUpdate is the moderation form for a KYC request.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	Remark string `json:"remark" validate:"omitempty,max=500"`
}
