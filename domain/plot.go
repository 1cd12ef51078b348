package domain

import "time"

// Plot represents a land parcel in the registry. A plot has at most one
// current owner at any time; the workflow engine treats all other
// attributes as opaque.
type Plot struct {
	PlotID            string    `json:"plot_id"`
	CurrentOwnerEmail string    `json:"current_owner_email"`
	AreaSqm           float64   `json:"area_sqm,omitempty"`
	PlotType          string    `json:"plot_type,omitempty"`
	Village           string    `json:"village,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsOwnedBy reports whether email matches the plot's current owner.
// Matching is case-sensitive, same as the user email key.
func (p *Plot) IsOwnedBy(email string) bool {
	return p != nil && email != "" && p.CurrentOwnerEmail == email
}
