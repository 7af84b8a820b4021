package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee represents a worker whose days are tracked by the owner.
// DailyRate is paid for a full day, Advances is the cumulative amount of cash
// handed out ahead of payout.
type Employee struct {
	ID        string          `json:"id"`        // Unique identifier for the employee
	Name      string          `json:"name"`      // Display name
	DailyRate decimal.Decimal `json:"dailyRate"` // Pay for one full day of work
	Advances  decimal.Decimal `json:"advances"`  // Cumulative advances, zero when never paid
	CreatedAt time.Time       `json:"createdAt"` // Timestamp of when the employee record was created
}

// Client represents a place or customer the employees are sent to.
type Client struct {
	ID        string    `json:"id"`        // Unique identifier for the client
	Name      string    `json:"name"`      // Client name
	Location  string    `json:"location"`  // Free text address or area
	CreatedAt time.Time `json:"createdAt"` // Timestamp of when the client record was created
}
