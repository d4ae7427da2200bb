package domain

import "time"

// WizardState is what one session remembers between wizard steps.
type WizardState struct {
	CustomerName string    `json:"customer_name"`
	CustomerType string    `json:"customer_type,omitempty"`
	Submitted    bool      `json:"submitted"`               // options step completed
	Selected     *Node     `json:"selected_tree"`           // nil when nothing matched
	Flash        string    `json:"flash,omitempty"`         // shown once on the next render
	UpdatedAt    time.Time `json:"updated_at"`
}

// PopFlash returns the pending flash message and clears it.
func (s *WizardState) PopFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}
