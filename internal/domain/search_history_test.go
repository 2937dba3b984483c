package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewSearchHistory(t *testing.T) {
	memberID := uuid.New()

	entry, err := NewSearchHistory(memberID, "travel card")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if entry.MemberID != memberID {
		t.Errorf("Expected member ID %v, got %v", memberID, entry.MemberID)
	}

	if entry.Keyword != "travel card" {
		t.Errorf("Expected keyword %q, got %q", "travel card", entry.Keyword)
	}

	if entry.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Surrounding whitespace is trimmed before validation.
	entry, err = NewSearchHistory(memberID, "  savings  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if entry.Keyword != "savings" {
		t.Errorf("Expected trimmed keyword %q, got %q", "savings", entry.Keyword)
	}

	// Test invalid keywords
	_, err = NewSearchHistory(memberID, "")
	if err != ErrEmptyKeyword {
		t.Errorf("Expected error %v, got %v", ErrEmptyKeyword, err)
	}

	_, err = NewSearchHistory(memberID, "   ")
	if err != ErrEmptyKeyword {
		t.Errorf("Expected error %v, got %v", ErrEmptyKeyword, err)
	}

	_, err = NewSearchHistory(memberID, strings.Repeat("k", MaxKeywordLength+1))
	if err != ErrKeywordTooLong {
		t.Errorf("Expected error %v, got %v", ErrKeywordTooLong, err)
	}

	// Test invalid member
	_, err = NewSearchHistory(uuid.Nil, "travel card")
	if err != ErrEmptyMemberID {
		t.Errorf("Expected error %v, got %v", ErrEmptyMemberID, err)
	}
}
