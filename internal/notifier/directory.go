package notifier

import (
	"fmt"

	"insurancelk_backend/internal/models"
)

// Recipient is a user eligible to receive notifications.
type Recipient struct {
	ID    string
	Name  string
	Email string
}

// Directory resolves a target audience into concrete recipients.
type Directory interface {
	Resolve(audience models.TargetAudience) ([]Recipient, error)
}

// StaticDirectory resolves audiences from a fixed in-memory roster.
type StaticDirectory struct {
	audiences map[models.TargetAudience][]Recipient
}

// NewStaticDirectory builds a directory with the default demo roster.
func NewStaticDirectory() *StaticDirectory {
	u1 := Recipient{ID: "u1", Name: "Kasun Perera", Email: "kasun.perera@example.com"}
	u2 := Recipient{ID: "u2", Name: "Nadeesha Silva", Email: "nadeesha.silva@example.com"}
	u3 := Recipient{ID: "u3", Name: "Ruwan Fernando", Email: "ruwan.fernando@example.com"}
	u4 := Recipient{ID: "u4", Name: "Dilani Jayawardena", Email: "dilani.j@example.com"}
	u5 := Recipient{ID: "u5", Name: "Tharindu Bandara", Email: "tharindu.b@example.com"}

	return &StaticDirectory{
		audiences: map[models.TargetAudience][]Recipient{
			models.TargetAll:      {u1, u2, u3, u4, u5},
			models.TargetActive:   {u1, u2, u3},
			models.TargetInactive: {u4, u5},
			models.TargetPremium:  {u1, u3},
			models.TargetNew:      {u5},
		},
	}
}

func (d *StaticDirectory) Resolve(audience models.TargetAudience) ([]Recipient, error) {
	recipients, ok := d.audiences[audience]
	if !ok {
		return nil, fmt.Errorf("unknown target audience: %s", audience)
	}
	out := make([]Recipient, len(recipients))
	copy(out, recipients)
	return out, nil
}
