package auth

import (
	"kampomido/internal/session"
	"kampomido/internal/viewmodel"
)

// Credentials is the login form. Either email or phone identifies the account.
type Credentials struct {
	Email    string `validate:"required_without=Phone,omitempty,email"`
	Phone    string `validate:"omitempty,min=7"`
	Password string `validate:"required"`
}

// loginRequest is the wire payload; the unused identifier is omitted entirely.
type loginRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// loginUser tolerates the backend's two naming schemes for the account name.
type loginUser struct {
	ID        viewmodel.FlexID `json:"id"`
	AltID     viewmodel.FlexID `json:"_id"`
	Name      string           `json:"name"`
	FirstName string           `json:"firstname"`
	LastName  string           `json:"lastname"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
}

// loginPayload is the resolved envelope of POST /auth/login.
type loginPayload struct {
	User  loginUser `json:"user"`
	Token string    `json:"token"`
}

// sessionUser flattens the wire user into the canonical session shape.
func (u loginUser) sessionUser() session.User {
	id := u.ID.String()
	if id == "" {
		id = u.AltID.String()
	}
	role := u.Role
	if role == "" {
		role = "customer"
	}
	return session.User{
		ID:    id,
		Name:  viewmodel.Coalesce(u.Name, viewmodel.FullName(u.FirstName, u.LastName)),
		Email: u.Email,
		Role:  role,
	}
}
