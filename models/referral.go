package models

import "time"

// ReferralCode is a user's shareable invite code.
type ReferralCode struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Code      string    `bson:"code" json:"code"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ReferralRedemption records a referred signup. ReferredID is unique: a user
// can redeem at most one code, once.
type ReferralRedemption struct {
	ID          string    `bson:"id" json:"id"`
	CodeID      string    `bson:"code_id" json:"code_id"`
	ReferrerID  string    `bson:"referrer_id" json:"referrer_id"`
	ReferredID  string    `bson:"referred_id" json:"referred_id"`
	CreditCents int64     `bson:"credit_cents" json:"credit_cents"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
