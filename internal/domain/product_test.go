package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewCard(t *testing.T) {
	card, err := NewCard("Everyday Cashback", 9900, "Visa", []string{"2% groceries", "airport lounge"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if card.Kind() != ProductKindCard {
		t.Errorf("Expected kind %s, got %s", ProductKindCard, card.Kind())
	}

	if card.CreatedAt.IsZero() || card.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Test invalid fields
	_, err = NewCard("", 9900, "Visa", nil)
	if err != ErrEmptyProductName {
		t.Errorf("Expected error %v, got %v", ErrEmptyProductName, err)
	}

	_, err = NewCard("Everyday Cashback", -1, "Visa", nil)
	if err != ErrNegativeAnnualFee {
		t.Errorf("Expected error %v, got %v", ErrNegativeAnnualFee, err)
	}

	_, err = NewCard("Everyday Cashback", 9900, "", nil)
	if err != ErrEmptyCardBrand {
		t.Errorf("Expected error %v, got %v", ErrEmptyCardBrand, err)
	}
}

func TestNewLoan(t *testing.T) {
	loan, err := NewLoan("Home Starter", 725, 50_000_000, 360)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if loan.Kind() != ProductKindLoan {
		t.Errorf("Expected kind %s, got %s", ProductKindLoan, loan.Kind())
	}

	_, err = NewLoan("Home Starter", 0, 50_000_000, 360)
	if err != ErrInvalidInterestRate {
		t.Errorf("Expected error %v, got %v", ErrInvalidInterestRate, err)
	}

	_, err = NewLoan("Home Starter", 725, -1, 360)
	if err != ErrNegativeLoanLimit {
		t.Errorf("Expected error %v, got %v", ErrNegativeLoanLimit, err)
	}

	_, err = NewLoan("Home Starter", 725, 50_000_000, 0)
	if err != ErrNonPositiveTermMonths {
		t.Errorf("Expected error %v, got %v", ErrNonPositiveTermMonths, err)
	}
}

func TestNewSavings(t *testing.T) {
	savings, err := NewSavings("Rainy Day", 310, 24, 100_000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if savings.Kind() != ProductKindSavings {
		t.Errorf("Expected kind %s, got %s", ProductKindSavings, savings.Kind())
	}

	// Zero cap means uncapped deposits.
	uncapped, err := NewSavings("Rainy Day", 310, 24, 0)
	if err != nil {
		t.Fatalf("Expected no error for zero cap, got %v", err)
	}
	if uncapped.MonthlyCap != 0 {
		t.Errorf("Expected zero cap, got %d", uncapped.MonthlyCap)
	}

	_, err = NewSavings("Rainy Day", -5, 24, 0)
	if err != ErrInvalidInterestRate {
		t.Errorf("Expected error %v, got %v", ErrInvalidInterestRate, err)
	}

	_, err = NewSavings("Rainy Day", 310, 24, -1)
	if err != ErrNegativeMonthlyCap {
		t.Errorf("Expected error %v, got %v", ErrNegativeMonthlyCap, err)
	}
}

func TestNewSubscription(t *testing.T) {
	sub, err := NewSubscription("Premium Perks", 499, "premium")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if sub.Kind() != ProductKindSubscription {
		t.Errorf("Expected kind %s, got %s", ProductKindSubscription, sub.Kind())
	}

	_, err = NewSubscription("Premium Perks", -1, "premium")
	if err != ErrNegativeMonthlyFee {
		t.Errorf("Expected error %v, got %v", ErrNegativeMonthlyFee, err)
	}

	_, err = NewSubscription("Premium Perks", 499, "")
	if err != ErrEmptySubscriptionPlan {
		t.Errorf("Expected error %v, got %v", ErrEmptySubscriptionPlan, err)
	}
}

// TestProductSummaries exercises the variant dispatch through the Product
// interface: each concrete product renders a summary of its own kind with
// its own terms, without any caller-side type switching.
func TestProductSummaries(t *testing.T) {
	card, err := NewCard("Everyday Cashback", 9900, "Visa", []string{"2% groceries"})
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	loan, err := NewLoan("Home Starter", 725, 50_000_000, 360)
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}
	savings, err := NewSavings("Rainy Day", 310, 24, 100_000)
	if err != nil {
		t.Fatalf("NewSavings: %v", err)
	}
	sub, err := NewSubscription("Premium Perks", 499, "premium")
	if err != nil {
		t.Fatalf("NewSubscription: %v", err)
	}

	products := []Product{card, loan, savings, sub}

	summaries := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, p.Summary())
	}

	if len(summaries) != 4 {
		t.Fatalf("Expected 4 summaries, got %d", len(summaries))
	}

	for i, p := range products {
		if summaries[i].SummaryKind() != p.Kind() {
			t.Errorf("Summary %d: expected kind %s, got %s", i, p.Kind(), summaries[i].SummaryKind())
		}
	}

	cardSummary, ok := summaries[0].(CardSummary)
	if !ok {
		t.Fatalf("Expected CardSummary, got %T", summaries[0])
	}
	if cardSummary.ID != card.ID || cardSummary.AnnualFee != 9900 || cardSummary.Brand != "Visa" {
		t.Errorf("CardSummary fields do not match the card: %+v", cardSummary)
	}

	loanSummary, ok := summaries[1].(LoanSummary)
	if !ok {
		t.Fatalf("Expected LoanSummary, got %T", summaries[1])
	}
	if loanSummary.InterestRateBP != 725 || loanSummary.LoanLimit != 50_000_000 || loanSummary.TermMonths != 360 {
		t.Errorf("LoanSummary fields do not match the loan: %+v", loanSummary)
	}

	savingsSummary, ok := summaries[2].(SavingsSummary)
	if !ok {
		t.Fatalf("Expected SavingsSummary, got %T", summaries[2])
	}
	if savingsSummary.InterestRateBP != 310 || savingsSummary.TermMonths != 24 || savingsSummary.MonthlyCap != 100_000 {
		t.Errorf("SavingsSummary fields do not match the savings product: %+v", savingsSummary)
	}

	subSummary, ok := summaries[3].(SubscriptionSummary)
	if !ok {
		t.Fatalf("Expected SubscriptionSummary, got %T", summaries[3])
	}
	if subSummary.MonthlyFee != 499 || subSummary.Plan != "premium" {
		t.Errorf("SubscriptionSummary fields do not match the subscription: %+v", subSummary)
	}
}
