package domain

import "errors"

// Validation rejections. Any of these dropping out of a handler means the
// action is a no-op: no state change, no broadcast.
var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrItemNotFound        = errors.New("store item not found")
	ErrAuctionNotFound     = errors.New("auction not found")
	ErrOutOfStock          = errors.New("item out of stock")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrAuctionClosed       = errors.New("auction is not active")
	ErrBidTooLow           = errors.New("bid does not exceed current bid")
	ErrAlreadyClaimed      = errors.New("daily reward already claimed")
	ErrCodeNotFound        = errors.New("gift code not found")
	ErrCodeRedeemed        = errors.New("gift code already redeemed")
	ErrInvalidPayload      = errors.New("invalid event payload")
	ErrUnknownEvent        = errors.New("unknown event")
)

// IsNotFoundError checks if an error is a not-found type error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrAuctionNotFound) ||
		errors.Is(err, ErrCodeNotFound)
}
