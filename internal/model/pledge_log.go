package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PledgeStatus is the outcome of a pledge attempt.
type PledgeStatus string

const (
	PledgeStatusAccepted PledgeStatus = "accepted"
	PledgeStatusRejected PledgeStatus = "rejected"
)

// PledgeLog records every pledge attempt, accepted or not.
// It carries plain ids rather than relations so entries outlive deleted wishes.
type PledgeLog struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	WishID    uint            `json:"wish_id" gorm:"not null;index"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status    PledgeStatus    `json:"status" gorm:"type:varchar(20);not null;index"`
	Reason    string          `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt time.Time       `json:"created_at"`
}

