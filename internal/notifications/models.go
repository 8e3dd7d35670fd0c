package notifications

import (
	"kampomido/internal/viewmodel"
	str "kampomido/pkg/string"
)

// Notification is the wire record as delivered by both the admin and the
// customer feeds.
type Notification struct {
	ID        viewmodel.FlexID `json:"id"`
	AltID     viewmodel.FlexID `json:"_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Body      string           `json:"body"`
	Type      string           `json:"type"`
	Read      bool             `json:"read"`
	IsRead    bool             `json:"isRead"`
	CreatedAt string           `json:"createdAt"`
}

// ViewModel is the display-ready notification.
type ViewModel struct {
	ID        string
	Title     string
	Message   string
	Type      string
	Read      bool
	CreatedAt string
}

// ViewModel flattens one notification.
func (n Notification) ViewModel() ViewModel {
	return ViewModel{
		ID:        str.Coalesce("", n.ID.String(), n.AltID.String()),
		Title:     viewmodel.Coalesce(n.Title),
		Message:   viewmodel.Coalesce(n.Message, n.Body),
		Type:      str.Coalesce("info", n.Type),
		Read:      n.Read || n.IsRead,
		CreatedAt: viewmodel.Coalesce(n.CreatedAt),
	}
}

// ViewModels maps a page of notifications in order.
func ViewModels(records []Notification) []ViewModel {
	out := make([]ViewModel, 0, len(records))
	for _, n := range records {
		out = append(out, n.ViewModel())
	}
	return out
}
