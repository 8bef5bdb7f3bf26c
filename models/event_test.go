package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMarkPendingSetsTimestampFromAnyState(t *testing.T) {
	now := time.Now()
	for _, prior := range []string{StateNotPaid, StatePendingVerification, StatePaid} {
		p := NewPayer("Asha")
		p.State = prior
		if prior == StatePaid {
			p.PaymentTimestamp = &now
			p.VerificationTimestamp = &now
		}

		claimed := now.Add(time.Minute)
		p.MarkPending(claimed)

		if p.State != StatePendingVerification {
			t.Errorf("from %s: state = %s, want %s", prior, p.State, StatePendingVerification)
		}
		if p.PaymentTimestamp == nil || !p.PaymentTimestamp.Equal(claimed) {
			t.Errorf("from %s: payment timestamp not refreshed", prior)
		}
		if p.VerificationTimestamp != nil {
			t.Errorf("from %s: verification timestamp should be cleared on a new claim", prior)
		}
	}
}

func TestVerifyOnlyFromPending(t *testing.T) {
	now := time.Now()

	p := NewPayer("Asha")
	p.MarkPending(now)
	if !p.Verify(now.Add(time.Minute)) {
		t.Fatal("verify from pending_verification should succeed")
	}
	if p.State != StatePaid {
		t.Errorf("state = %s, want %s", p.State, StatePaid)
	}
	if p.VerificationTimestamp == nil {
		t.Error("verification timestamp not set")
	}
	if p.PaymentTimestamp == nil {
		t.Error("payment timestamp must survive verification")
	}

	// already paid
	if p.Verify(now.Add(2 * time.Minute)) {
		t.Error("verify on a paid payer should be refused")
	}

	// never claimed
	fresh := NewPayer("Ben")
	if fresh.Verify(now) {
		t.Error("verify on a not_paid payer should be refused")
	}
	if fresh.VerificationTimestamp != nil {
		t.Error("refused verify must not stamp the payer")
	}
}

func TestRejectClearsEverything(t *testing.T) {
	now := time.Now()
	for _, setup := range []func(*Payer){
		func(p *Payer) { p.MarkPending(now) },
		func(p *Payer) { p.MarkPending(now); p.Verify(now.Add(time.Second)) },
		func(p *Payer) {},
	} {
		p := NewPayer("Asha")
		setup(&p)
		p.Reject()

		if p.State != StateNotPaid {
			t.Errorf("state = %s, want %s", p.State, StateNotPaid)
		}
		if p.PaymentTimestamp != nil || p.VerificationTimestamp != nil {
			t.Error("reject must clear both timestamps")
		}
	}
}

func TestPaymentTimestampInvariant(t *testing.T) {
	// payment timestamp is set iff state is pending_verification or paid
	check := func(p Payer) {
		has := p.PaymentTimestamp != nil
		want := p.State == StatePendingVerification || p.State == StatePaid
		if has != want {
			t.Errorf("state %s: payment timestamp set = %v, want %v", p.State, has, want)
		}
	}

	p := NewPayer("Asha")
	check(p)
	p.MarkPending(time.Now())
	check(p)
	p.Verify(time.Now())
	check(p)
	p.Reject()
	check(p)
}

func TestFindPayerByNameIsCaseInsensitive(t *testing.T) {
	event := CollectionEvent{
		Payers: []Payer{NewPayer("Asha"), NewPayer("Ben Carter")},
	}

	tests := []struct {
		query string
		want  string
	}{
		{"asha", "Asha"},
		{"ASHA", "Asha"},
		{"ben carter", "Ben Carter"},
		{"Ben Carter", "Ben Carter"},
		{"Ben", ""},    // exact match only, no prefixes
		{"Charlo", ""}, // unknown
	}

	for _, tt := range tests {
		got := event.FindPayerByName(tt.query)
		if tt.want == "" {
			if got != nil {
				t.Errorf("FindPayerByName(%q) = %q, want no match", tt.query, got.Name)
			}
			continue
		}
		if got == nil || got.Name != tt.want {
			t.Errorf("FindPayerByName(%q) did not match %q", tt.query, tt.want)
		}
	}
}

func TestFindPayerByNameReturnsInPlacePointer(t *testing.T) {
	event := CollectionEvent{Payers: []Payer{NewPayer("Asha")}}

	p := event.FindPayerByName("ASHA")
	p.MarkPending(time.Now())

	if event.Payers[0].State != StatePendingVerification {
		t.Error("matched payer must be updated in place, not on a copy")
	}
	if len(event.Payers) != 1 {
		t.Errorf("payer count = %d, want 1", len(event.Payers))
	}
}

func TestFindPayerByID(t *testing.T) {
	a, b := NewPayer("Asha"), NewPayer("Ben")
	event := CollectionEvent{Payers: []Payer{a, b}}

	if got := event.FindPayer(b.ID); got == nil || got.Name != "Ben" {
		t.Error("FindPayer did not locate payer by id")
	}
	if got := event.FindPayer(primitive.NewObjectID()); got != nil {
		t.Error("FindPayer matched an unknown id")
	}
}

func TestPayersByState(t *testing.T) {
	now := time.Now()
	a, b, c := NewPayer("A"), NewPayer("B"), NewPayer("C")
	b.MarkPending(now)
	c.MarkPending(now)
	c.Verify(now)

	event := CollectionEvent{Payers: []Payer{a, b, c}}

	if got := event.PayersByState(StateNotPaid); len(got) != 1 || got[0].Name != "A" {
		t.Errorf("not_paid bucket = %v", got)
	}
	if got := event.PayersByState(StatePendingVerification); len(got) != 1 || got[0].Name != "B" {
		t.Errorf("pending bucket = %v", got)
	}
	if got := event.PayersByState(StatePaid); len(got) != 1 || got[0].Name != "C" {
		t.Errorf("paid bucket = %v", got)
	}
}

// The end-to-end lifecycle: create with two payers, A claims and is
// verified, B claims and is rejected.
func TestCollectionLifecycle(t *testing.T) {
	event := CollectionEvent{
		Amount: 500,
		Payers: []Payer{NewPayer("A"), NewPayer("B")},
	}

	for _, p := range event.Payers {
		if p.State != StateNotPaid {
			t.Fatalf("payer %s starts in %s, want %s", p.Name, p.State, StateNotPaid)
		}
	}

	now := time.Now()

	a := event.FindPayerByName("a")
	a.MarkPending(now)
	if a.State != StatePendingVerification || a.PaymentTimestamp == nil {
		t.Fatal("A's claim not recorded")
	}

	if !a.Verify(now.Add(time.Minute)) {
		t.Fatal("owner could not verify A")
	}
	if a.State != StatePaid || a.VerificationTimestamp == nil {
		t.Fatal("A not settled after verification")
	}

	b := event.FindPayerByName("B")
	b.MarkPending(now)
	b.Reject()
	if b.State != StateNotPaid || b.PaymentTimestamp != nil || b.VerificationTimestamp != nil {
		t.Fatal("B not reset after rejection")
	}
}
