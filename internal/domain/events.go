package domain

import (
	"fmt"
	"strings"
	"time"
)

// Inbound event names (client -> server)
const (
	EventLogin            = "player:login"
	EventBuyItem          = "player:buy_item"
	EventPlaceBid         = "player:place_bid"
	EventClaimDaily       = "player:claim_daily"
	EventRedeemCode       = "player:redeem_code"
	EventUpdatePlayer     = "admin:update_player"
	EventAddItem          = "admin:add_item"
	EventCreateAuction    = "admin:create_auction"
	EventPostAnnouncement = "admin:post_announcement"
	EventGenerateCodes    = "admin:generate_codes"
	EventDeleteItem       = "admin:delete_item"
	EventMarkSold         = "admin:mark_sold"
	EventCancelAuction    = "admin:cancel_auction"
)

// Outbound event names (server -> client)
const (
	EventFullSync     = "sync:full_data"
	EventLoginSuccess = "player:login_success"
	EventLoginFailed  = "player:login_failed"
	EventRedeemResult = "player:redeem_result"
)

// LoginRequest asks for the full record of an existing player
type LoginRequest struct {
	Username string `json:"username"`
}

// Validate checks the request fields
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("%w: username required", ErrInvalidPayload)
	}
	return nil
}

// BuyItemRequest is a player purchase of a store item
type BuyItemRequest struct {
	UserID int64 `json:"userId"`
	ItemID int64 `json:"itemId"`
}

// Validate checks the request fields
func (r BuyItemRequest) Validate() error {
	if r.UserID <= 0 || r.ItemID <= 0 {
		return fmt.Errorf("%w: userId and itemId must be positive", ErrInvalidPayload)
	}
	return nil
}

// PlaceBidRequest is a player bid on an active auction
type PlaceBidRequest struct {
	UserID    int64 `json:"userId"`
	AuctionID int64 `json:"aucId"`
	Bid       int64 `json:"bid"`
}

// Validate checks the request fields
func (r PlaceBidRequest) Validate() error {
	if r.UserID <= 0 || r.AuctionID <= 0 {
		return fmt.Errorf("%w: userId and aucId must be positive", ErrInvalidPayload)
	}
	if r.Bid <= 0 {
		return fmt.Errorf("%w: bid must be positive", ErrInvalidPayload)
	}
	return nil
}

// ClaimDailyRequest is a player claiming the daily reward
type ClaimDailyRequest struct {
	UserID int64 `json:"userId"`
	Amount int64 `json:"amount"`
}

// Validate checks the request fields
func (r ClaimDailyRequest) Validate() error {
	if r.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidPayload)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayload)
	}
	return nil
}

// RedeemCodeRequest is a player redeeming a gift code
type RedeemCodeRequest struct {
	UserID int64  `json:"userId"`
	Code   string `json:"code"`
}

// Validate checks the request fields
func (r RedeemCodeRequest) Validate() error {
	if r.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidPayload)
	}
	if strings.TrimSpace(r.Code) == "" {
		return fmt.Errorf("%w: code required", ErrInvalidPayload)
	}
	return nil
}

// PlayerPatch is an admin merge of player fields. Nil pointers leave the
// existing value untouched.
type PlayerPatch struct {
	ID          int64         `json:"id"`
	Username    *string       `json:"user,omitempty"`
	Password    *string       `json:"pass,omitempty"`
	Credits     *int64        `json:"credits,omitempty"`
	Crystals    *int64        `json:"crystals,omitempty"`
	Status      *PlayerStatus `json:"status,omitempty"`
	DailyStreak *int          `json:"dailyStreak,omitempty"`
	Badges      *[]string     `json:"badges,omitempty"`
}

// Validate checks the patch fields
func (r PlayerPatch) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidPayload)
	}
	if r.Status != nil {
		switch *r.Status {
		case PlayerStatusActive, PlayerStatusOffline, PlayerStatusBanned:
		default:
			return fmt.Errorf("%w: unknown status %q", ErrInvalidPayload, *r.Status)
		}
	}
	return nil
}

// NewItemRequest is an admin submission of a new store item
type NewItemRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"img"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
}

// Validate checks the request fields
func (r NewItemRequest) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidPayload)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidPayload)
	}
	if r.Price < 0 || r.Stock < 0 {
		return fmt.Errorf("%w: price and stock must be non-negative", ErrInvalidPayload)
	}
	return nil
}

// NewAuctionRequest is an admin submission of a new auction
type NewAuctionRequest struct {
	ID       int64     `json:"id"`
	Item     string    `json:"item"`
	Image    string    `json:"img"`
	StartBid int64     `json:"bid"`
	EndTime  time.Time `json:"endTime"`
}

// Validate checks the request fields
func (r NewAuctionRequest) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidPayload)
	}
	if strings.TrimSpace(r.Item) == "" {
		return fmt.Errorf("%w: item required", ErrInvalidPayload)
	}
	if r.StartBid < 0 {
		return fmt.Errorf("%w: bid must be non-negative", ErrInvalidPayload)
	}
	if r.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime required", ErrInvalidPayload)
	}
	return nil
}

// AnnouncementRequest is an admin submission of an announcement
type AnnouncementRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate checks the request fields
func (r AnnouncementRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title required", ErrInvalidPayload)
	}
	return nil
}

// GenerateCodesRequest describes a gift batch to synthesize. Codes are
// always generated server-side, never taken from the client.
type GenerateCodesRequest struct {
	ID     string     `json:"id"`
	Type   RewardType `json:"type"`
	Prefix string     `json:"prefix"`
	Amount int64      `json:"amount"`
	Total  int        `json:"total"`
}

// Validate checks the request fields
func (r GenerateCodesRequest) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("%w: unknown reward type %q", ErrInvalidPayload, r.Type)
	}
	if strings.TrimSpace(r.Prefix) == "" {
		return fmt.Errorf("%w: prefix required", ErrInvalidPayload)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayload)
	}
	if r.Total <= 0 || r.Total > 10000 {
		return fmt.Errorf("%w: total must be between 1 and 10000", ErrInvalidPayload)
	}
	return nil
}

// TargetRequest addresses a single entity by id (delete, mark sold, cancel)
type TargetRequest struct {
	ID int64 `json:"id"`
}

// Validate checks the request fields
func (r TargetRequest) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidPayload)
	}
	return nil
}

// RedeemResult is the targeted outcome of a redeem attempt
type RedeemResult struct {
	Success bool   `json:"success"`
	Message string `json:"msg"`
}
