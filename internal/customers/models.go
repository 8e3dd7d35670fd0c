package customers

import (
	"kampomido/internal/viewmodel"
	str "kampomido/pkg/string"
)

// UserRef is the embedded account a customer record may carry.
type UserRef struct {
	ID        viewmodel.FlexID `json:"id"`
	Name      string           `json:"name"`
	FirstName string           `json:"firstname"`
	LastName  string           `json:"lastname"`
	Email     string           `json:"email"`
}

// Customer is the wire record. The backend is inconsistent about where the
// display name lives (nested user, split name fields, or fullName), so all
// sources are declared and resolved in ViewModel.
type Customer struct {
	ID          viewmodel.FlexID `json:"id"`
	AltID       viewmodel.FlexID `json:"_id"`
	User        *UserRef         `json:"user"`
	FullName    string           `json:"fullName"`
	FirstName   string           `json:"firstname"`
	LastName    string           `json:"lastname"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	GoldBalance float64          `json:"goldBalance"`
	KYCStatus   string           `json:"kycStatus"`
	Status      string           `json:"status"`
	CreatedAt   string           `json:"createdAt"`
}

// ViewModel is the flattened customer row.
type ViewModel struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	GoldBalance float64
	KYCStatus   string
	Status      string
}

// ViewModel resolves each display field from its source keys in fixed
// priority order: name from user.name, else firstname+lastname, else fullName,
// else "N/A"; missing KYC status displays as "Pending".
func (c Customer) ViewModel() ViewModel {
	id := c.ID.String()
	if id == "" {
		id = c.AltID.String()
	}

	var userName, userEmail string
	if c.User != nil {
		userName = str.Coalesce("", c.User.Name, viewmodel.FullName(c.User.FirstName, c.User.LastName))
		userEmail = c.User.Email
	}

	return ViewModel{
		ID:          id,
		Name:        viewmodel.Coalesce(userName, viewmodel.FullName(c.FirstName, c.LastName), c.FullName),
		Email:       viewmodel.Coalesce(c.Email, userEmail),
		Phone:       viewmodel.Coalesce(c.Phone),
		GoldBalance: c.GoldBalance,
		KYCStatus:   viewmodel.StatusLabel(c.KYCStatus),
		Status:      viewmodel.StatusLabel(c.Status),
	}
}

// ViewModels flattens a list.
func ViewModels(records []Customer) []ViewModel {
	out := make([]ViewModel, len(records))
	for i, r := range records {
		out[i] = r.ViewModel()
	}
	return out
}

// AddForm is the add-customer form. Validation runs client-side before any
// request is issued.
type AddForm struct {
	UserID   string `json:"userId" validate:"required"`
	FullName string `json:"fullName" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7"`
}

// UpdateForm carries the editable customer fields.
type UpdateForm struct {
	FullName string `json:"fullName" validate:"omitempty,notblank"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}
