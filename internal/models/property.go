package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is a listing as persisted in the properties table. Images holds
// the ordered public URLs of the attached objects; the object store owns the
// bytes themselves.
type Property struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Owner        string    `json:"owner"`
	Price        float64   `json:"price"`
	Area         float64   `json:"area"`
	Description  string    `json:"description"`
	ExactAddress string    `json:"exactAddress"`
	BHKType      string    `json:"bhkType"`
	Amenities    string    `json:"amenities"`
	Ratings      float64   `json:"ratings"`
	Reviews      string    `json:"reviews"`
	Images       []string  `json:"images"`
	Location     string    `json:"location"`
	CreatedBy    uuid.UUID `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	RowVersion   int64     `json:"row_version"`
}

func (p *Property) GetID() string { return p.ID.String() }

func (p *Property) GetRowVersion() int64 { return p.RowVersion }

func (p *Property) SetRowVersion(v int64) { p.RowVersion = v }
