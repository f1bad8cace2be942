package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/game-economy/internal/domain"
)

// handleLogin answers the requester only. Match sends the full player
// record; no-match gets an explicit failure so the front end can react.
func (e *Engine) handleLogin(clientID string, data json.RawMessage) error {
	var req domain.LoginRequest
	if err := decode(data, &req); err != nil {
		return err
	}

	p := e.store.PlayerByUsername(req.Username)
	if p == nil {
		e.b.SendTo(clientID, domain.EventLoginFailed, map[string]string{"msg": "unknown username"})
		return nil
	}
	e.b.SendTo(clientID, domain.EventLoginSuccess, p.Clone())
	return nil
}

func (e *Engine) handleBuyItem(data json.RawMessage) ([]Collection, error) {
	var req domain.BuyItemRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	p := e.store.PlayerByID(req.UserID)
	if p == nil {
		return nil, domain.ErrPlayerNotFound
	}
	item := e.store.ItemByID(req.ItemID)
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.Stock <= 0 || item.Status != domain.ItemStatusAvailable {
		return nil, domain.ErrOutOfStock
	}
	if p.Credits < item.Price {
		return nil, domain.ErrInsufficientCredits
	}

	now := e.now()
	p.Credits -= item.Price
	e.store.DecrementStock(item, now)
	e.store.AppendInventory(p, e.newInventoryItem(item.Name, item.Image, domain.InventorySourcePurchase, now))

	changed := []Collection{CollectionPlayers, CollectionStore}
	return e.log(changed, fmt.Sprintf("%s bought %s", p.Username, item.Name)), nil
}

// handlePlaceBid accepts a bid iff the auction is Active, the bid beats
// the current one and the payer can cover it. The previous bidder is
// always refunded their full bid; the alternative silently destroys
// player currency.
func (e *Engine) handlePlaceBid(data json.RawMessage) ([]Collection, error) {
	var req domain.PlaceBidRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	p := e.store.PlayerByID(req.UserID)
	if p == nil {
		return nil, domain.ErrPlayerNotFound
	}
	auc := e.store.AuctionByID(req.AuctionID)
	if auc == nil {
		return nil, domain.ErrAuctionNotFound
	}
	if auc.Status != domain.AuctionStatusActive {
		return nil, domain.ErrAuctionClosed
	}
	if req.Bid <= auc.Bid {
		return nil, domain.ErrBidTooLow
	}
	if p.Credits < req.Bid {
		return nil, domain.ErrInsufficientCredits
	}

	if auc.Bidder != "" {
		if prev := e.store.PlayerByUsername(auc.Bidder); prev != nil {
			prev.Credits += auc.Bid
		}
	}
	p.Credits -= req.Bid
	auc.Bid = req.Bid
	auc.Bidder = p.Username

	changed := []Collection{CollectionPlayers, CollectionAuctions}
	return e.log(changed, fmt.Sprintf("%s bid %d on %s", p.Username, req.Bid, auc.Item)), nil
}

// handleClaimDaily allows one claim per UTC calendar day. The streak
// continues only when the previous claim fell on the previous UTC day;
// otherwise it restarts at 1.
func (e *Engine) handleClaimDaily(data json.RawMessage) ([]Collection, error) {
	var req domain.ClaimDailyRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	p := e.store.PlayerByID(req.UserID)
	if p == nil {
		return nil, domain.ErrPlayerNotFound
	}

	now := e.now()
	today := startOfUTCDay(now)
	if !p.LastClaimed.IsZero() && !p.LastClaimed.Before(today) {
		return nil, domain.ErrAlreadyClaimed
	}

	if !p.LastClaimed.IsZero() && !p.LastClaimed.Before(today.AddDate(0, 0, -1)) {
		p.DailyStreak++
	} else {
		p.DailyStreak = 1
	}
	p.Credits += req.Amount
	p.LastClaimed = now

	changed := []Collection{CollectionPlayers}
	return e.log(changed, fmt.Sprintf("%s claimed Daily Reward (%d)", p.Username, req.Amount)), nil
}

// handleRedeemCode always answers the requester with an explicit result.
// A code redeems at most once; the second attempt fails with no further
// credit.
func (e *Engine) handleRedeemCode(clientID string, data json.RawMessage) ([]Collection, error) {
	var req domain.RedeemCodeRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	p := e.store.PlayerByID(req.UserID)
	if p == nil {
		return nil, domain.ErrPlayerNotFound
	}

	token := strings.ToUpper(strings.TrimSpace(req.Code))
	batch, code := e.store.FindCode(token)
	if code == nil {
		e.b.SendTo(clientID, domain.EventRedeemResult, domain.RedeemResult{Message: "invalid code"})
		return nil, nil
	}
	if code.Redeemed {
		e.b.SendTo(clientID, domain.EventRedeemResult, domain.RedeemResult{Message: "code already redeemed"})
		return nil, nil
	}

	code.Redeemed = true
	code.RedeemedBy = p.Username
	batch.RedeemedCount++

	var currency string
	switch batch.Type {
	case domain.RewardCrystals:
		p.Crystals += batch.Amount
		currency = "Crystals"
	default:
		p.Credits += batch.Amount
		currency = "Credits"
	}

	e.b.SendTo(clientID, domain.EventRedeemResult, domain.RedeemResult{
		Success: true,
		Message: fmt.Sprintf("redeemed %d %s", batch.Amount, currency),
	})

	changed := []Collection{CollectionPlayers, CollectionGiftCodes}
	return e.log(changed, fmt.Sprintf("%s redeemed code %s", p.Username, token)), nil
}

// newInventoryItem builds an inventory entry with a server-assigned id
func (e *Engine) newInventoryItem(name, image, source string, now time.Time) domain.InventoryItem {
	return domain.InventoryItem{
		ID:         uuid.New().String(),
		Name:       name,
		Image:      image,
		Source:     source,
		AcquiredAt: now,
	}
}

// startOfUTCDay truncates a time to its UTC calendar day boundary
func startOfUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
