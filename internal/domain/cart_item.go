package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyCartItemID indicates a cart item without an identifier.
var ErrEmptyCartItemID = errors.New("cart item ID cannot be empty")

// CartItem links a member to a product they have placed in their cart.
// A member's cart holds each product at most once; quantities are not
// tracked.
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	MemberID  uuid.UUID `json:"member_id"`
	ProductID uuid.UUID `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCartItem creates a new CartItem for the given member and product.
// Returns an error if validation fails.
func NewCartItem(memberID, productID uuid.UUID) (*CartItem, error) {
	item := &CartItem{
		ID:        uuid.New(),
		MemberID:  memberID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the CartItem has valid data.
func (c *CartItem) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCartItemID
	}

	if c.MemberID == uuid.Nil {
		return ErrEmptyMemberID
	}

	if c.ProductID == uuid.Nil {
		return ErrEmptyProductID
	}

	return nil
}
