package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds the profile attributes used both for order attribution and
// for preferred-category prediction.
type Customer struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	Email             string          `json:"email" db:"email"`
	Name              string          `json:"name" db:"name"`
	Age               int             `json:"age" db:"age"`
	Gender            string          `json:"gender" db:"gender"`
	EmploymentStatus  string          `json:"employmentStatus" db:"employment_status"`
	Occupation        string          `json:"occupation" db:"occupation"`
	Education         string          `json:"education" db:"education"`
	HouseholdSize     int             `json:"householdSize" db:"household_size"`
	HasChildren       bool            `json:"hasChildren" db:"has_children"`
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome" db:"monthly_income"`
	PreferredCategory string          `json:"preferredCategory,omitempty" db:"preferred_category"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
}

// CustomerProfile is the fixed set of attributes the category predictor
// consumes. It is a value copy so the predictor never touches stored state.
type CustomerProfile struct {
	Age              int
	HouseholdSize    int
	HasChildren      bool
	MonthlyIncome    decimal.Decimal
	Gender           string
	EmploymentStatus string
	Occupation       string
	Education        string
}

// Profile extracts the predictor input from a customer record.
func (c *Customer) Profile() CustomerProfile {
	return CustomerProfile{
		Age:              c.Age,
		HouseholdSize:    c.HouseholdSize,
		HasChildren:      c.HasChildren,
		MonthlyIncome:    c.MonthlyIncome,
		Gender:           c.Gender,
		EmploymentStatus: c.EmploymentStatus,
		Occupation:       c.Occupation,
		Education:        c.Education,
	}
}

// CustomerRequest is the payload for creating or updating a customer.
// PreferredCategory may be left empty, in which case the predictor assigns
// one when it is available.
type CustomerRequest struct {
	Email             string          `json:"email"`
	Name              string          `json:"name"`
	Age               int             `json:"age"`
	Gender            string          `json:"gender"`
	EmploymentStatus  string          `json:"employmentStatus"`
	Occupation        string          `json:"occupation"`
	Education         string          `json:"education"`
	HouseholdSize     int             `json:"householdSize"`
	HasChildren       bool            `json:"hasChildren"`
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
	PreferredCategory string          `json:"preferredCategory,omitempty"`
}

// SegmentCount is one row of the dashboard segment summary: how many
// customers share a preferred category.
type SegmentCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
