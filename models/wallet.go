package models

import "time"

// Wallet transaction types.
const (
	TxTopUp          = "top_up"
	TxBookingPayment = "booking_payment"
	TxRefund         = "refund"
	TxReferralCredit = "referral_credit"
)

// Wallet holds a client's prepaid balance in integer cents.
type Wallet struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	BalanceCents int64     `bson:"balance_cents" json:"balance_cents"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// WalletTransaction is a ledger entry. AmountCents is negative for debits.
type WalletTransaction struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Type        string    `bson:"type" json:"type"`
	AmountCents int64     `bson:"amount_cents" json:"amount_cents"`
	BookingID   string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Reference   string    `bson:"reference,omitempty" json:"reference,omitempty"` // e.g. stripe payment intent id
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
