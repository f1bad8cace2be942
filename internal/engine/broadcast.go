package engine

import "github.com/game-economy/internal/domain"

// Collection names a broadcastable subset of the store. The partial sync
// event for a collection is "sync:" + its name.
type Collection string

const (
	CollectionPlayers       Collection = "players"
	CollectionStore         Collection = "store"
	CollectionAuctions      Collection = "auctions"
	CollectionAnnouncements Collection = "announcements"
	CollectionGiftCodes     Collection = "giftcodes"
	CollectionLogs          Collection = "logs"
)

// SyncEvent returns the outbound event name for this collection
func (c Collection) SyncEvent() string {
	return "sync:" + string(c)
}

// Broadcaster delivers engine output to connected clients. The engine
// treats delivery as fire-and-forget: implementations must never block
// and a failed delivery to one client must not affect others.
type Broadcaster interface {
	// BroadcastFull pushes the entire store snapshot to every client
	BroadcastFull(snapshot domain.Snapshot)

	// BroadcastCollection pushes one changed collection to every client
	BroadcastCollection(c Collection, payload any)

	// SendTo addresses a single client; never broadcast
	SendTo(clientID, event string, payload any)
}
