package domain

import "time"

// PlayerStatus represents a player's account state
type PlayerStatus string

const (
	PlayerStatusActive  PlayerStatus = "Active"
	PlayerStatusOffline PlayerStatus = "Offline"
	PlayerStatusBanned  PlayerStatus = "Banned"
)

// Inventory entry sources
const (
	InventorySourcePurchase   = "Store Purchase"
	InventorySourceAuctionWin = "Auction Win"
)

// Player represents a player account in the shared store
type Player struct {
	ID          int64           `json:"id"`
	Username    string          `json:"user"`
	Password    string          `json:"pass"`
	Credits     int64           `json:"credits"`
	Crystals    int64           `json:"crystals"`
	Status      PlayerStatus    `json:"status"`
	Inventory   []InventoryItem `json:"inventory"`
	DailyStreak int             `json:"dailyStreak"`
	LastClaimed time.Time       `json:"lastClaimed"`
	Badges      []string        `json:"badges,omitempty"`
}

// InventoryItem is a single acquired item in a player's inventory
type InventoryItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Image      string    `json:"img,omitempty"`
	Source     string    `json:"type"`
	AcquiredAt time.Time `json:"acquiredAt"`
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	out := p
	if p.Inventory != nil {
		out.Inventory = make([]InventoryItem, len(p.Inventory))
		copy(out.Inventory, p.Inventory)
	}
	if p.Badges != nil {
		out.Badges = make([]string, len(p.Badges))
		copy(out.Badges, p.Badges)
	}
	return out
}
