// Package engine serializes and applies every mutation of the shared
// store. One mutex is held for the full validate+mutate+broadcast span
// of each inbound event and of each sweep tick, so no two mutations are
// ever observable interleaved.
package engine

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/game-economy/internal/config"
	"github.com/game-economy/internal/domain"
	"github.com/game-economy/internal/store"
)

// Engine validates inbound events, applies them to the store and emits
// through the broadcast policy
type Engine struct {
	mu        sync.Mutex
	store     *store.Store
	b         Broadcaster
	broadcast *config.BroadcastConfig
	codes     *config.CodesConfig
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an engine around the given store and broadcaster
func New(st *store.Store, b Broadcaster, broadcast *config.BroadcastConfig, codes *config.CodesConfig, logger *slog.Logger) *Engine {
	return &Engine{
		store:     st,
		b:         b,
		broadcast: broadcast,
		codes:     codes,
		logger:    logger,
		now:       time.Now,
	}
}

// ClientConnected sends one full snapshot to a newly connected client,
// before any deltas reach it
func (e *Engine) ClientConnected(clientID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.b.SendTo(clientID, domain.EventFullSync, e.store.Snapshot())
}

// HandleEvent processes one inbound event to completion. Validation
// failures drop the event with no state change and no broadcast; only
// login and redeem additionally answer the requester.
func (e *Engine) HandleEvent(clientID, event string, data json.RawMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		changed []Collection
		err     error
	)

	switch event {
	case domain.EventLogin:
		err = e.handleLogin(clientID, data)
	case domain.EventBuyItem:
		changed, err = e.handleBuyItem(data)
	case domain.EventPlaceBid:
		changed, err = e.handlePlaceBid(data)
	case domain.EventClaimDaily:
		changed, err = e.handleClaimDaily(data)
	case domain.EventRedeemCode:
		changed, err = e.handleRedeemCode(clientID, data)
	case domain.EventUpdatePlayer:
		changed, err = e.handleUpdatePlayer(data)
	case domain.EventAddItem:
		changed, err = e.handleAddItem(data)
	case domain.EventCreateAuction:
		changed, err = e.handleCreateAuction(data)
	case domain.EventPostAnnouncement:
		changed, err = e.handlePostAnnouncement(data)
	case domain.EventGenerateCodes:
		changed, err = e.handleGenerateCodes(data)
	case domain.EventDeleteItem:
		changed, err = e.handleDeleteItem(data)
	case domain.EventMarkSold:
		changed, err = e.handleMarkSold(data)
	case domain.EventCancelAuction:
		changed, err = e.handleCancelAuction(data)
	default:
		err = domain.ErrUnknownEvent
	}

	if err != nil {
		e.logger.Debug("event rejected", "event", event, "client_id", clientID, "reason", err)
		return
	}
	e.flush(changed)
}

// SweepExpiredAuctions runs one sweep tick: every Active auction past its
// end time transitions to Ended and the winning bidder, if any, receives
// the item. Returns how many auctions transitioned. A single batched
// broadcast covers the whole tick.
func (e *Engine) SweepExpiredAuctions() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	ended := e.store.EndExpiredAuctions(now)
	if len(ended) == 0 {
		return 0
	}

	changed := []Collection{CollectionAuctions}
	transferred := false
	for _, a := range ended {
		if a.Bidder == "" {
			continue
		}
		winner := e.store.PlayerByUsername(a.Bidder)
		if winner == nil {
			continue
		}
		e.store.AppendInventory(winner, e.newInventoryItem(a.Item, a.Image, domain.InventorySourceAuctionWin, now))
		transferred = true
	}
	if transferred {
		changed = append(changed, CollectionPlayers)
	}

	e.logger.Info("auction sweep ended auctions", "count", len(ended))
	e.flush(changed)
	return len(ended)
}

// flush emits the post-mutation broadcast. Granularity is a config knob:
// full-snapshot mode re-sends everything, partial mode sends only the
// collections the handler touched.
func (e *Engine) flush(changed []Collection) {
	if len(changed) == 0 {
		return
	}
	if e.broadcast.Mode == config.BroadcastModeFull {
		e.b.BroadcastFull(e.store.Snapshot())
		return
	}
	for _, c := range changed {
		e.b.BroadcastCollection(c, e.collectionPayload(c))
	}
}

// collectionPayload returns a deep copy of one collection for broadcast
func (e *Engine) collectionPayload(c Collection) any {
	switch c {
	case CollectionPlayers:
		return e.store.Players()
	case CollectionStore:
		return e.store.Items()
	case CollectionAuctions:
		return e.store.Auctions()
	case CollectionAnnouncements:
		return e.store.Announcements()
	case CollectionGiftCodes:
		return e.store.GiftBatches()
	case CollectionLogs:
		return e.store.Logs()
	}
	return nil
}

// log appends one activity line and marks the log collection changed
func (e *Engine) log(changed []Collection, msg string) []Collection {
	e.store.AppendLog(e.now(), msg)
	return append(changed, CollectionLogs)
}

// decode is the typed boundary between untrusted payloads and mutation
// logic. Numeric fields must arrive as JSON integers; anything else is
// rejected before arithmetic can see it.
func decode[T interface{ Validate() error }](data json.RawMessage, dst *T) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Join(domain.ErrInvalidPayload, err)
	}
	return (*dst).Validate()
}
