package domain

import "time"

// ItemStatus represents a store item's availability
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "Available"
	ItemStatusSoldOut   ItemStatus = "Sold Out"
)

// StoreItem is a purchasable item in the store
type StoreItem struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Image  string     `json:"img,omitempty"`
	Price  int64      `json:"price"`
	Stock  int64      `json:"stock"`
	Status ItemStatus `json:"status"`
	SoldAt *time.Time `json:"soldAt,omitempty"`
}

// AuctionStatus represents an auction's lifecycle state
type AuctionStatus string

const (
	AuctionStatusActive    AuctionStatus = "Active"
	AuctionStatusEnded     AuctionStatus = "Ended"
	AuctionStatusCancelled AuctionStatus = "Cancelled"
)

// Terminal reports whether the auction can no longer be mutated
func (s AuctionStatus) Terminal() bool {
	return s == AuctionStatusEnded || s == AuctionStatusCancelled
}

// Auction is a timed auction for a single item. While Active, Bid only
// ever increases and Bidder is the payer of the current Bid.
type Auction struct {
	ID      int64         `json:"id"`
	Item    string        `json:"item"`
	Image   string        `json:"img,omitempty"`
	Bid     int64         `json:"bid"`
	Bidder  string        `json:"bidder,omitempty"`
	Status  AuctionStatus `json:"status"`
	EndTime time.Time     `json:"endTime"`
	EndedAt *time.Time    `json:"endedAt,omitempty"`
}

// RewardType is the currency a gift batch pays out in
type RewardType string

const (
	RewardCredits  RewardType = "Credits"
	RewardCrystals RewardType = "Crystals"
)

// Valid reports whether the reward type is a known currency
func (t RewardType) Valid() bool {
	return t == RewardCredits || t == RewardCrystals
}

// GiftCode is a single redemption token within a batch
type GiftCode struct {
	Code       string `json:"code"`
	Redeemed   bool   `json:"redeemed"`
	RedeemedBy string `json:"user,omitempty"`
}

// GiftBatch is a generated set of redemption codes sharing a reward
type GiftBatch struct {
	ID            string     `json:"id"`
	Type          RewardType `json:"type"`
	Prefix        string     `json:"prefix"`
	Amount        int64      `json:"amount"`
	Total         int        `json:"total"`
	RedeemedCount int        `json:"redeemedCount"`
	Codes         []GiftCode `json:"codes"`
}

// Clone returns a deep copy of the batch
func (b GiftBatch) Clone() GiftBatch {
	out := b
	if b.Codes != nil {
		out.Codes = make([]GiftCode, len(b.Codes))
		copy(out.Codes, b.Codes)
	}
	return out
}

// Announcement is an admin-authored post, immutable once created
type Announcement struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	PostedAt time.Time `json:"postedAt"`
}

// LogEntry is one line of the bounded activity log
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"msg"`
}

// Snapshot is the entire store contents as sent to clients
type Snapshot struct {
	Players       []Player       `json:"players"`
	StoreItems    []StoreItem    `json:"storeItems"`
	Auctions      []Auction      `json:"auctions"`
	Announcements []Announcement `json:"announcements"`
	GiftBatches   []GiftBatch    `json:"giftBatches"`
	Logs          []LogEntry     `json:"logs"`
}
