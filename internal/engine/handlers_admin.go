package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/game-economy/internal/domain"
)

func (e *Engine) handleUpdatePlayer(data json.RawMessage) ([]Collection, error) {
	var patch domain.PlayerPatch
	if err := decode(data, &patch); err != nil {
		return nil, err
	}

	p := e.store.ApplyPlayerPatch(patch)
	if p == nil {
		return nil, domain.ErrPlayerNotFound
	}

	changed := []Collection{CollectionPlayers}
	return e.log(changed, fmt.Sprintf("Admin updated player %s", p.Username)), nil
}

func (e *Engine) handleAddItem(data json.RawMessage) ([]Collection, error) {
	var req domain.NewItemRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	item := domain.StoreItem{
		ID:     req.ID,
		Name:   req.Name,
		Image:  req.Image,
		Price:  req.Price,
		Stock:  req.Stock,
		Status: domain.ItemStatusAvailable,
	}
	if item.Stock == 0 {
		e.store.MarkSoldOut(&item, e.now())
	}
	e.store.PrependItem(item)

	changed := []Collection{CollectionStore}
	return e.log(changed, fmt.Sprintf("Added Store Item: %s", item.Name)), nil
}

func (e *Engine) handleCreateAuction(data json.RawMessage) ([]Collection, error) {
	var req domain.NewAuctionRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	e.store.PrependAuction(domain.Auction{
		ID:      req.ID,
		Item:    req.Item,
		Image:   req.Image,
		Bid:     req.StartBid,
		Status:  domain.AuctionStatusActive,
		EndTime: req.EndTime,
	})

	changed := []Collection{CollectionAuctions}
	return e.log(changed, fmt.Sprintf("Started Auction: %s", req.Item)), nil
}

func (e *Engine) handlePostAnnouncement(data json.RawMessage) ([]Collection, error) {
	var req domain.AnnouncementRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	e.store.PrependAnnouncement(domain.Announcement{
		ID:       id,
		Title:    req.Title,
		Body:     req.Body,
		PostedAt: e.now(),
	})

	changed := []Collection{CollectionAnnouncements}
	return e.log(changed, fmt.Sprintf("Posted Announcement: %s", req.Title)), nil
}

// handleGenerateCodes synthesizes the whole batch server-side; client
// supplied code lists are never trusted.
func (e *Engine) handleGenerateCodes(data json.RawMessage) ([]Collection, error) {
	var req domain.GenerateCodesRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	prefix := strings.ToUpper(strings.TrimSpace(req.Prefix))
	codes, err := e.generateCodes(prefix, req.Total)
	if err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	e.store.PrependBatch(domain.GiftBatch{
		ID:     id,
		Type:   req.Type,
		Prefix: prefix,
		Amount: req.Amount,
		Total:  req.Total,
		Codes:  codes,
	})

	changed := []Collection{CollectionGiftCodes}
	return e.log(changed, fmt.Sprintf("Generated Batch %s (%d codes)", id, req.Total)), nil
}

func (e *Engine) handleDeleteItem(data json.RawMessage) ([]Collection, error) {
	var req domain.TargetRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	if !e.store.DeleteItem(req.ID) {
		return nil, domain.ErrItemNotFound
	}
	return []Collection{CollectionStore}, nil
}

func (e *Engine) handleMarkSold(data json.RawMessage) ([]Collection, error) {
	var req domain.TargetRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	item := e.store.ItemByID(req.ID)
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	e.store.MarkSoldOut(item, e.now())
	return []Collection{CollectionStore}, nil
}

// handleCancelAuction cancels an Active auction. Ended and Cancelled are
// terminal states and stay untouched.
func (e *Engine) handleCancelAuction(data json.RawMessage) ([]Collection, error) {
	var req domain.TargetRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	auc := e.store.AuctionByID(req.ID)
	if auc == nil {
		return nil, domain.ErrAuctionNotFound
	}
	if auc.Status.Terminal() {
		return nil, domain.ErrAuctionClosed
	}
	auc.Status = domain.AuctionStatusCancelled
	return []Collection{CollectionAuctions}, nil
}
