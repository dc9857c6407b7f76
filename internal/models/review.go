package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer review row. Ratings is constrained to 1..5 both by
// validation and by a CHECK constraint on the table.
type Review struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customerName"`
	Ratings      int       `json:"ratings"`
	Review       string    `json:"review"`
	ImageURL     string    `json:"image"`
	CreatedBy    uuid.UUID `json:"created_by"`
	UpdatedBy    uuid.UUID `json:"updated_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	RowVersion   int64     `json:"row_version"`
}

func (r *Review) GetID() string { return r.ID.String() }

func (r *Review) GetRowVersion() int64 { return r.RowVersion }

func (r *Review) SetRowVersion(v int64) { r.RowVersion = v }
