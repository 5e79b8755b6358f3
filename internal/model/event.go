package model

import "time"

type Event struct {
	ID               int       `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      *string   `json:"description,omitempty" db:"description"`
	Date             time.Time `json:"date" db:"date"`
	Location         string    `json:"location" db:"location"`
	Price            float64   `json:"price" db:"price"`
	TotalTickets     int       `json:"total_tickets" db:"total_tickets"`
	RemainingTickets int       `json:"remaining_tickets" db:"remaining_tickets"`
	Category         *string   `json:"category,omitempty" db:"category"`
	OwnerID          int       `json:"owner_id" db:"owner_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// IsSoldOut reports whether no tickets remain.
func (e *Event) IsSoldOut() bool {
	return e.RemainingTickets <= 0
}

type CreateEventRequest struct {
	Name         string    `json:"name" binding:"required"`
	Description  *string   `json:"description,omitempty"`
	Date         time.Time `json:"date" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	Price        float64   `json:"price" binding:"min=0"`
	TotalTickets int       `json:"total_tickets" binding:"required,min=1"`
	Category     *string   `json:"category,omitempty"`
}

// UpdateEventParams carries a partial patch; nil fields stay unchanged.
type UpdateEventParams struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

type RecommendationsQuery struct {
	EventID *int `form:"event_id"`
}

type RecommendationsResponse struct {
	Events []*Event `json:"events"`
}
