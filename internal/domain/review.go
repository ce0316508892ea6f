package domain

import (
	"strings"
	"time"
)

// Review is a persisted weekly review record.
type Review struct {
	ID             ReviewID
	WeekOf         time.Time
	Transcript     string
	Wins           *string
	Struggles      *string
	NextWeekFocus  *string
	TasksCompleted *int
}

// Validate checks the review invariants.
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Transcript) == "" {
		return Validationf("review transcript cannot be empty")
	}
	if r.TasksCompleted != nil && *r.TasksCompleted < 0 {
		return Validationf("review tasks completed cannot be negative")
	}
	return nil
}

// IdentityStatement is a single "I am the kind of person who ..." entry.
type IdentityStatement struct {
	ID       IdentityID
	Text     string
	Category *string
}

// Validate checks the statement invariants.
func (s *IdentityStatement) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return Validationf("identity statement cannot be empty")
	}
	return nil
}

// IdentityProfile is the user's full set of identity statements.
type IdentityProfile struct {
	Statements []IdentityStatement
}

// Validate checks the profile invariants.
func (p *IdentityProfile) Validate() error {
	if len(p.Statements) == 0 {
		return Validationf("identity profile requires at least one statement")
	}
	for i := range p.Statements {
		if err := p.Statements[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
