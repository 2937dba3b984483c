package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProductKind discriminates the catalog's product variants. The kind is
// persisted alongside the variant payload and drives decoding, so its
// values are part of the storage contract.
type ProductKind string

// Known product kinds
const (
	ProductKindCard         ProductKind = "card"
	ProductKindLoan         ProductKind = "loan"
	ProductKindSavings      ProductKind = "savings"
	ProductKindSubscription ProductKind = "subscription"
)

// Common validation errors for products
var (
	ErrEmptyProductID        = errors.New("product ID cannot be empty")
	ErrEmptyProductName      = errors.New("product name cannot be empty")
	ErrUnknownProductKind    = errors.New("unknown product kind")
	ErrNegativeAnnualFee     = errors.New("annual fee cannot be negative")
	ErrEmptyCardBrand        = errors.New("card brand cannot be empty")
	ErrInvalidInterestRate   = errors.New("interest rate must be positive")
	ErrNegativeLoanLimit     = errors.New("loan limit cannot be negative")
	ErrNonPositiveTermMonths = errors.New("term must be at least one month")
	ErrNegativeMonthlyCap    = errors.New("monthly deposit cap cannot be negative")
	ErrNegativeMonthlyFee    = errors.New("monthly fee cannot be negative")
	ErrEmptySubscriptionPlan = errors.New("subscription plan cannot be empty")
)

// Product is the behavior shared by every catalog variant. Callers never
// switch on concrete types; each variant reports its own kind and renders
// its own client-facing summary.
type Product interface {
	// ProductID returns the unique identifier of the product.
	ProductID() uuid.UUID

	// ProductName returns the display name of the product.
	ProductName() string

	// Kind returns the variant discriminator used for storage and dispatch.
	Kind() ProductKind

	// Summary renders the variant-specific client-facing projection.
	Summary() ProductSummary
}

// ProductSummary is the client-facing projection of a product variant.
// Concrete summary types carry the variant's terms alongside the common
// identity fields and marshal directly to the API response shape.
type ProductSummary interface {
	// SummaryKind returns the kind of the product the summary describes.
	SummaryKind() ProductKind
}

// ProductBase carries the identity fields shared by every variant.
// Variants embed it and add their own terms.
type ProductBase struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductID returns the unique identifier of the product.
func (b ProductBase) ProductID() uuid.UUID { return b.ID }

// ProductName returns the display name of the product.
func (b ProductBase) ProductName() string { return b.Name }

// validate checks the identity fields shared by all variants.
func (b ProductBase) validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyProductID
	}
	if b.Name == "" {
		return ErrEmptyProductName
	}
	return nil
}

// newProductBase builds the shared identity fields for a fresh product.
func newProductBase(name string) ProductBase {
	now := time.Now().UTC()
	return ProductBase{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Statically verify that each variant satisfies Product.
var (
	_ Product = (*Card)(nil)
	_ Product = (*Loan)(nil)
	_ Product = (*Savings)(nil)
	_ Product = (*Subscription)(nil)
)

// Card is a credit card product. Monetary amounts are integer cents.
type Card struct {
	ProductBase
	AnnualFee int64 // cents per year
	Brand     string
	Benefits  []string
}

// NewCard creates a new Card with a generated ID and UTC timestamps.
// Returns an error if validation fails.
func NewCard(name string, annualFee int64, brand string, benefits []string) (*Card, error) {
	card := &Card{
		ProductBase: newProductBase(name),
		AnnualFee:   annualFee,
		Brand:       brand,
		Benefits:    benefits,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if err := c.ProductBase.validate(); err != nil {
		return err
	}
	if c.AnnualFee < 0 {
		return ErrNegativeAnnualFee
	}
	if c.Brand == "" {
		return ErrEmptyCardBrand
	}
	return nil
}

// Kind returns ProductKindCard.
func (c *Card) Kind() ProductKind { return ProductKindCard }

// Summary renders the card's client-facing projection.
func (c *Card) Summary() ProductSummary {
	return CardSummary{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      ProductKindCard,
		AnnualFee: c.AnnualFee,
		Brand:     c.Brand,
		Benefits:  c.Benefits,
	}
}

// CardSummary is the client-facing projection of a Card.
type CardSummary struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Kind      ProductKind `json:"kind"`
	AnnualFee int64       `json:"annual_fee"`
	Brand     string      `json:"brand"`
	Benefits  []string    `json:"benefits"`
}

// SummaryKind returns ProductKindCard.
func (CardSummary) SummaryKind() ProductKind { return ProductKindCard }

// Loan is a lending product. The interest rate is expressed in basis
// points so rates survive storage without floating point drift.
type Loan struct {
	ProductBase
	InterestRateBP int32 // basis points, e.g. 725 = 7.25%
	LoanLimit      int64 // maximum principal in cents
	TermMonths     int32
}

// NewLoan creates a new Loan with a generated ID and UTC timestamps.
// Returns an error if validation fails.
func NewLoan(name string, interestRateBP int32, loanLimit int64, termMonths int32) (*Loan, error) {
	loan := &Loan{
		ProductBase:    newProductBase(name),
		InterestRateBP: interestRateBP,
		LoanLimit:      loanLimit,
		TermMonths:     termMonths,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	return loan, nil
}

// Validate checks if the Loan has valid data.
func (l *Loan) Validate() error {
	if err := l.ProductBase.validate(); err != nil {
		return err
	}
	if l.InterestRateBP <= 0 {
		return ErrInvalidInterestRate
	}
	if l.LoanLimit < 0 {
		return ErrNegativeLoanLimit
	}
	if l.TermMonths <= 0 {
		return ErrNonPositiveTermMonths
	}
	return nil
}

// Kind returns ProductKindLoan.
func (l *Loan) Kind() ProductKind { return ProductKindLoan }

// Summary renders the loan's client-facing projection.
func (l *Loan) Summary() ProductSummary {
	return LoanSummary{
		ID:             l.ID,
		Name:           l.Name,
		Kind:           ProductKindLoan,
		InterestRateBP: l.InterestRateBP,
		LoanLimit:      l.LoanLimit,
		TermMonths:     l.TermMonths,
	}
}

// LoanSummary is the client-facing projection of a Loan.
type LoanSummary struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Kind           ProductKind `json:"kind"`
	InterestRateBP int32       `json:"interest_rate_bp"`
	LoanLimit      int64       `json:"loan_limit"`
	TermMonths     int32       `json:"term_months"`
}

// SummaryKind returns ProductKindLoan.
func (LoanSummary) SummaryKind() ProductKind { return ProductKindLoan }

// Savings is a deposit product with a fixed term and an optional cap on
// monthly deposits (zero means uncapped).
type Savings struct {
	ProductBase
	InterestRateBP int32 // basis points
	TermMonths     int32
	MonthlyCap     int64 // cents, 0 = no cap
}

// NewSavings creates a new Savings with a generated ID and UTC timestamps.
// Returns an error if validation fails.
func NewSavings(name string, interestRateBP int32, termMonths int32, monthlyCap int64) (*Savings, error) {
	savings := &Savings{
		ProductBase:    newProductBase(name),
		InterestRateBP: interestRateBP,
		TermMonths:     termMonths,
		MonthlyCap:     monthlyCap,
	}

	if err := savings.Validate(); err != nil {
		return nil, err
	}

	return savings, nil
}

// Validate checks if the Savings has valid data.
func (s *Savings) Validate() error {
	if err := s.ProductBase.validate(); err != nil {
		return err
	}
	if s.InterestRateBP <= 0 {
		return ErrInvalidInterestRate
	}
	if s.TermMonths <= 0 {
		return ErrNonPositiveTermMonths
	}
	if s.MonthlyCap < 0 {
		return ErrNegativeMonthlyCap
	}
	return nil
}

// Kind returns ProductKindSavings.
func (s *Savings) Kind() ProductKind { return ProductKindSavings }

// Summary renders the savings account's client-facing projection.
func (s *Savings) Summary() ProductSummary {
	return SavingsSummary{
		ID:             s.ID,
		Name:           s.Name,
		Kind:           ProductKindSavings,
		InterestRateBP: s.InterestRateBP,
		TermMonths:     s.TermMonths,
		MonthlyCap:     s.MonthlyCap,
	}
}

// SavingsSummary is the client-facing projection of a Savings product.
type SavingsSummary struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Kind           ProductKind `json:"kind"`
	InterestRateBP int32       `json:"interest_rate_bp"`
	TermMonths     int32       `json:"term_months"`
	MonthlyCap     int64       `json:"monthly_cap"`
}

// SummaryKind returns ProductKindSavings.
func (SavingsSummary) SummaryKind() ProductKind { return ProductKindSavings }

// Subscription is a recurring-fee membership product.
type Subscription struct {
	ProductBase
	MonthlyFee int64 // cents per month
	Plan       string
}

// NewSubscription creates a new Subscription with a generated ID and UTC
// timestamps. Returns an error if validation fails.
func NewSubscription(name string, monthlyFee int64, plan string) (*Subscription, error) {
	sub := &Subscription{
		ProductBase: newProductBase(name),
		MonthlyFee:  monthlyFee,
		Plan:        plan,
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return sub, nil
}

// Validate checks if the Subscription has valid data.
func (s *Subscription) Validate() error {
	if err := s.ProductBase.validate(); err != nil {
		return err
	}
	if s.MonthlyFee < 0 {
		return ErrNegativeMonthlyFee
	}
	if s.Plan == "" {
		return ErrEmptySubscriptionPlan
	}
	return nil
}

// Kind returns ProductKindSubscription.
func (s *Subscription) Kind() ProductKind { return ProductKindSubscription }

// Summary renders the subscription's client-facing projection.
func (s *Subscription) Summary() ProductSummary {
	return SubscriptionSummary{
		ID:         s.ID,
		Name:       s.Name,
		Kind:       ProductKindSubscription,
		MonthlyFee: s.MonthlyFee,
		Plan:       s.Plan,
	}
}

// SubscriptionSummary is the client-facing projection of a Subscription.
type SubscriptionSummary struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Kind       ProductKind `json:"kind"`
	MonthlyFee int64       `json:"monthly_fee"`
	Plan       string      `json:"plan"`
}

// SummaryKind returns ProductKindSubscription.
func (SubscriptionSummary) SummaryKind() ProductKind { return ProductKindSubscription }
