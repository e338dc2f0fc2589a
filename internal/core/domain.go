package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Debit  TransactionKind = "debit"
	Credit TransactionKind = "credit"
)

type (
	// TransactionKind tells whether money left or entered the account.
	TransactionKind string

	Date struct {
		time.Time
	}

	// Money is a monetary amount in minor currency units. The fixture data
	// carries whole amounts only, so no fractional handling is needed.
	Money struct {
		Units int64
	}

	// Transaction is an immutable account movement from the fixture set.
	Transaction struct {
		ID       string
		Category string
		Amount   Money
		Date     Date
		Merchant string
		Kind     TransactionKind
	}

	// CategoryAggregate is a precomputed per-category spending total. It is
	// authored independently from the transaction fixtures and is not
	// guaranteed to be consistent with them.
	CategoryAggregate struct {
		Category   string
		Amount     Money
		Percentage float64
		Tag        string // presentation tag (icon/color class)
	}

	// TrendPoint is one labelled bar of the spending trend series.
	TrendPoint struct {
		Label  string
		Amount Money
	}

	// Credential is one entry of the fixed authorized sign-in set.
	Credential struct {
		Email       string
		Password    string
		DisplayName string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrEmptyMerchant    = errors.New("empty merchant")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrEmptyDisplayName = errors.New("empty display name")
)

// NewDate creates a new Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (m Money) Validate() error {
	if m.Units < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Units: m.Units + other.Units}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{Units: m.Units - other.Units}
}

func (k TransactionKind) Validate() error {
	switch k {
	case Debit, Credit:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Merchant) == "" {
		return ErrEmptyMerchant
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (c Credential) Validate() error {
	if !ValidEmail(c.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(c.DisplayName) == "" {
		return ErrEmptyDisplayName
	}
	return nil
}

// ValidEmail checks the loose text@text.text shape used by the sign-in form.
// It is a plausibility check, not RFC validation.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || strings.ContainsAny(email, " \t\n") {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return true
}
