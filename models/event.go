package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payer states
const (
	StateNotPaid             = "not_paid"
	StatePendingVerification = "pending_verification"
	StatePaid                = "paid"
)

// Event statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Payer struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                  string             `bson:"name" json:"name"`
	State                 string             `bson:"state" json:"state"` // not_paid, pending_verification, paid
	PaymentTimestamp      *time.Time         `bson:"payment_timestamp,omitempty" json:"payment_timestamp,omitempty"`
	VerificationTimestamp *time.Time         `bson:"verification_timestamp,omitempty" json:"verification_timestamp,omitempty"`
}

type CollectionEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Slug        string             `bson:"slug" json:"slug"`
	Amount      float64            `bson:"amount" json:"amount"` // per person
	CollectorID primitive.ObjectID `bson:"collector_id" json:"collector_id"`
	Status      string             `bson:"status" json:"status"` // draft, published
	Payers      []Payer            `bson:"payers" json:"payers"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// FindPayer returns the payer with the given id, or nil.
func (e *CollectionEvent) FindPayer(id primitive.ObjectID) *Payer {
	for i := range e.Payers {
		if e.Payers[i].ID == id {
			return &e.Payers[i]
		}
	}
	return nil
}

// FindPayerByName matches an existing payer by case-insensitive exact name.
func (e *CollectionEvent) FindPayerByName(name string) *Payer {
	for i := range e.Payers {
		if strings.EqualFold(e.Payers[i].Name, name) {
			return &e.Payers[i]
		}
	}
	return nil
}

// PayersByState filters the embedded payers into one of the three buckets.
func (e *CollectionEvent) PayersByState(state string) []Payer {
	out := []Payer{}
	for _, p := range e.Payers {
		if p.State == state {
			out = append(out, p)
		}
	}
	return out
}

// MarkPending records a payment claim. Unconditional: a claim always lands
// the payer in pending_verification with a fresh payment timestamp, whatever
// the prior state was.
func (p *Payer) MarkPending(now time.Time) {
	p.State = StatePendingVerification
	p.PaymentTimestamp = &now
	p.VerificationTimestamp = nil
}

// Verify moves a pending claim to paid. Any other current state is an
// illegal transition and is refused.
func (p *Payer) Verify(now time.Time) bool {
	if p.State != StatePendingVerification {
		return false
	}
	p.State = StatePaid
	p.VerificationTimestamp = &now
	return true
}

// Reject returns the payer to not_paid and clears both timestamps,
// regardless of prior state.
func (p *Payer) Reject() {
	p.State = StateNotPaid
	p.PaymentTimestamp = nil
	p.VerificationTimestamp = nil
}

// NewPayer seeds a payer in the initial not_paid state.
func NewPayer(name string) Payer {
	return Payer{
		ID:    primitive.NewObjectID(),
		Name:  name,
		State: StateNotPaid,
	}
}
