package models

import "time"

type Plan string

const (
	FreePlan      Plan = "free"
	SoloPlan      Plan = "solo"
	UnlimitedPlan Plan = "unlimited"
)

type Status string

const (
	ActiveStatus   Status = "active"
	CanceledStatus Status = "canceled"
	ExpiredStatus  Status = "expired"
)

// Subscription is the billing record for a user. Same store shape as
// transcriptions but an independent bounded context: it does not participate
// in pipeline staging.
type Subscription struct {
	ID             string    `dynamodbav:"id" json:"id"`
	UserID         string    `dynamodbav:"userId" json:"user_id"`
	Plan           Plan      `dynamodbav:"plan" json:"plan"`
	Status         Status    `dynamodbav:"status" json:"status"`
	ExpirationDate time.Time `dynamodbav:"expirationDate" json:"expiration_date"`
	CreatedAt      time.Time `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt      time.Time `dynamodbav:"updatedAt" json:"updated_at"`
	IsTrial        bool      `dynamodbav:"isTrial" json:"is_trial"`
}

// Patch carries partial updates; nil fields keep the stored value.
// ID, CreatedAt and UpdatedAt are never caller-settable.
type Patch struct {
	UserID         *string
	Plan           *Plan
	Status         *Status
	ExpirationDate *time.Time
	IsTrial        *bool
}
