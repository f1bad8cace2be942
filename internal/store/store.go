// Package store holds the authoritative in-memory collections for the
// economy server. It is storage plus invariant bookkeeping only; all
// serialization of access is the caller's responsibility (the engine
// holds its lock across every mutation).
package store

import (
	"time"

	"github.com/game-economy/internal/domain"
)

// DefaultLogCapacity bounds the activity log, oldest entries evicted first
const DefaultLogCapacity = 50

// Store owns every collection. Entities are never aliased outside the
// store; cross-entity relations (bidder, redeemer) are by username.
type Store struct {
	players       []domain.Player
	items         []domain.StoreItem
	auctions      []domain.Auction
	batches       []domain.GiftBatch
	announcements []domain.Announcement
	logs          []domain.LogEntry
	logCap        int
}

// New returns an empty store
func New(logCap int) *Store {
	if logCap <= 0 {
		logCap = DefaultLogCapacity
	}
	return &Store{logCap: logCap}
}

// Seeded returns a store populated with the launch roster: four players,
// one store item and one active auction ending an hour from now.
func Seeded(now time.Time, logCap int) *Store {
	s := New(logCap)
	s.players = []domain.Player{
		{ID: 1001, Username: "ashleychan", Password: "snt_ash1", Credits: 1250, Crystals: 50, Status: domain.PlayerStatusActive, Inventory: []domain.InventoryItem{}, DailyStreak: 4},
		{ID: 1002, Username: "CryptoKing", Password: "btc_moon", Credits: 50000, Crystals: 1200, Status: domain.PlayerStatusActive, Inventory: []domain.InventoryItem{}, DailyStreak: 6},
		{ID: 1003, Username: "Ghost_User", Password: "ghost123", Credits: 0, Crystals: 0, Status: domain.PlayerStatusOffline, Inventory: []domain.InventoryItem{}, DailyStreak: 1},
		{ID: 1005, Username: "Cheater_X", Password: "hack", Credits: 999999, Crystals: 9999, Status: domain.PlayerStatusBanned, Inventory: []domain.InventoryItem{}, DailyStreak: 0},
	}
	s.items = []domain.StoreItem{
		{ID: 1, Name: "Health Potion", Image: "https://placehold.co/100x100/purple/white?text=Potion", Price: 50, Stock: 999, Status: domain.ItemStatusAvailable},
	}
	s.auctions = []domain.Auction{
		{ID: 1, Item: "Void Shield", Image: "https://placehold.co/100x100/blue/white?text=Shield", Bid: 1200, Bidder: "ashleychan", Status: domain.AuctionStatusActive, EndTime: now.Add(time.Hour)},
	}
	return s
}

// PlayerByID returns the player with the given id, or nil
func (s *Store) PlayerByID(id int64) *domain.Player {
	for i := range s.players {
		if s.players[i].ID == id {
			return &s.players[i]
		}
	}
	return nil
}

// PlayerByUsername returns the player with the given username, or nil
func (s *Store) PlayerByUsername(username string) *domain.Player {
	for i := range s.players {
		if s.players[i].Username == username {
			return &s.players[i]
		}
	}
	return nil
}

// ItemByID returns the store item with the given id, or nil
func (s *Store) ItemByID(id int64) *domain.StoreItem {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

// AuctionByID returns the auction with the given id, or nil
func (s *Store) AuctionByID(id int64) *domain.Auction {
	for i := range s.auctions {
		if s.auctions[i].ID == id {
			return &s.auctions[i]
		}
	}
	return nil
}

// FindCode locates a code across all batches. Returns the owning batch
// and the code, or nils when the token is unknown.
func (s *Store) FindCode(code string) (*domain.GiftBatch, *domain.GiftCode) {
	for i := range s.batches {
		b := &s.batches[i]
		for j := range b.Codes {
			if b.Codes[j].Code == code {
				return b, &b.Codes[j]
			}
		}
	}
	return nil, nil
}

// CodeExists reports whether a code token is already taken by any batch
func (s *Store) CodeExists(code string) bool {
	_, c := s.FindCode(code)
	return c != nil
}

// ApplyPlayerPatch merges non-nil patch fields into the player with the
// patch's id. Returns the updated player, or nil if no such player.
func (s *Store) ApplyPlayerPatch(patch domain.PlayerPatch) *domain.Player {
	p := s.PlayerByID(patch.ID)
	if p == nil {
		return nil
	}
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.Password != nil {
		p.Password = *patch.Password
	}
	if patch.Credits != nil {
		p.Credits = *patch.Credits
	}
	if patch.Crystals != nil {
		p.Crystals = *patch.Crystals
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.DailyStreak != nil {
		p.DailyStreak = *patch.DailyStreak
	}
	if patch.Badges != nil {
		p.Badges = append([]string(nil), (*patch.Badges)...)
	}
	return p
}

// DecrementStock takes one unit of stock and flips the item to Sold Out,
// stamping SoldAt, when stock reaches zero. Status is Sold Out iff stock
// is zero.
func (s *Store) DecrementStock(item *domain.StoreItem, now time.Time) {
	if item.Stock <= 0 {
		return
	}
	item.Stock--
	if item.Stock == 0 {
		item.Status = domain.ItemStatusSoldOut
		at := now
		item.SoldAt = &at
	}
}

// MarkSoldOut forces an item to zero stock and Sold Out
func (s *Store) MarkSoldOut(item *domain.StoreItem, now time.Time) {
	item.Stock = 0
	item.Status = domain.ItemStatusSoldOut
	at := now
	item.SoldAt = &at
}

// AppendInventory appends an entry to the player's inventory
func (s *Store) AppendInventory(p *domain.Player, entry domain.InventoryItem) {
	p.Inventory = append(p.Inventory, entry)
}

// PrependItem adds a store item at the head of the list
func (s *Store) PrependItem(item domain.StoreItem) {
	s.items = append([]domain.StoreItem{item}, s.items...)
}

// DeleteItem removes the item with the given id. Reports whether an
// item was removed.
func (s *Store) DeleteItem(id int64) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// PrependAuction adds an auction at the head of the list
func (s *Store) PrependAuction(a domain.Auction) {
	s.auctions = append([]domain.Auction{a}, s.auctions...)
}

// PrependAnnouncement adds an announcement at the head of the list
func (s *Store) PrependAnnouncement(a domain.Announcement) {
	s.announcements = append([]domain.Announcement{a}, s.announcements...)
}

// PrependBatch adds a gift batch at the head of the list
func (s *Store) PrependBatch(b domain.GiftBatch) {
	s.batches = append([]domain.GiftBatch{b}, s.batches...)
}

// AppendLog prepends a log entry, evicting the oldest past capacity.
// The log is kept most-recent-first.
func (s *Store) AppendLog(now time.Time, msg string) {
	s.logs = append([]domain.LogEntry{{Time: now, Message: msg}}, s.logs...)
	if len(s.logs) > s.logCap {
		s.logs = s.logs[:s.logCap]
	}
}

// EndExpiredAuctions transitions every Active auction whose end time has
// elapsed to Ended, stamping EndedAt. Returns copies of the auctions that
// transitioned this call.
func (s *Store) EndExpiredAuctions(now time.Time) []domain.Auction {
	var ended []domain.Auction
	for i := range s.auctions {
		a := &s.auctions[i]
		if a.Status != domain.AuctionStatusActive || now.Before(a.EndTime) {
			continue
		}
		a.Status = domain.AuctionStatusEnded
		at := now
		a.EndedAt = &at
		ended = append(ended, *a)
	}
	return ended
}

// Players returns a deep copy of the player collection
func (s *Store) Players() []domain.Player {
	out := make([]domain.Player, len(s.players))
	for i, p := range s.players {
		out[i] = p.Clone()
	}
	return out
}

// Items returns a copy of the store item collection
func (s *Store) Items() []domain.StoreItem {
	return append([]domain.StoreItem(nil), s.items...)
}

// Auctions returns a copy of the auction collection
func (s *Store) Auctions() []domain.Auction {
	return append([]domain.Auction(nil), s.auctions...)
}

// Announcements returns a copy of the announcement collection
func (s *Store) Announcements() []domain.Announcement {
	return append([]domain.Announcement(nil), s.announcements...)
}

// GiftBatches returns a deep copy of the gift batch collection
func (s *Store) GiftBatches() []domain.GiftBatch {
	out := make([]domain.GiftBatch, len(s.batches))
	for i, b := range s.batches {
		out[i] = b.Clone()
	}
	return out
}

// Logs returns a copy of the activity log, most-recent-first
func (s *Store) Logs() []domain.LogEntry {
	return append([]domain.LogEntry(nil), s.logs...)
}

// Snapshot returns a deep copy of the entire store, safe to marshal
// concurrently with later mutations
func (s *Store) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Players:       s.Players(),
		StoreItems:    s.Items(),
		Auctions:      s.Auctions(),
		Announcements: s.Announcements(),
		GiftBatches:   s.GiftBatches(),
		Logs:          s.Logs(),
	}
}
