package users

import "kampomido/internal/viewmodel"

// User is the wire record for platform users. Field names vary between
// endpoints, so both naming schemes are declared and coalesced in ViewModel.
type User struct {
	ID        viewmodel.FlexID `json:"id"`
	AltID     viewmodel.FlexID `json:"_id"`
	Name      string           `json:"name"`
	FirstName string           `json:"firstname"`
	LastName  string           `json:"lastname"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Role      string           `json:"role"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"createdAt"`
}

// ViewModel is the flattened projection rendered on the users page.
type ViewModel struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Role   string
	Status string
}

// ViewModel flattens a wire record, substituting placeholders for anything
// missing so the page never renders an empty field.
func (u User) ViewModel() ViewModel {
	id := u.ID.String()
	if id == "" {
		id = u.AltID.String()
	}
	return ViewModel{
		ID:     id,
		Name:   viewmodel.Coalesce(u.Name, viewmodel.FullName(u.FirstName, u.LastName)),
		Email:  viewmodel.Coalesce(u.Email),
		Phone:  viewmodel.Coalesce(u.Phone),
		Role:   viewmodel.Coalesce(u.Role, "customer"),
		Status: viewmodel.StatusLabel(u.Status),
	}
}

// ViewModels flattens a list.
func ViewModels(records []User) []ViewModel {
	out := make([]ViewModel, len(records))
	for i, r := range records {
		out[i] = r.ViewModel()
	}
	return out
}

// RegisterForm is the add-user form validated before any network call.
type RegisterForm struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin customer"`
}
