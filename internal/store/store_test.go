package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/game-economy/internal/domain"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestLookupsTolerateAbsence(t *testing.T) {
	s := Seeded(testNow, 0)

	assert.Nil(t, s.PlayerByID(9999))
	assert.Nil(t, s.PlayerByUsername("nobody"))
	assert.Nil(t, s.ItemByID(42))
	assert.Nil(t, s.AuctionByID(42))

	batch, code := s.FindCode("NOPE")
	assert.Nil(t, batch)
	assert.Nil(t, code)
}

func TestSeededRoster(t *testing.T) {
	s := Seeded(testNow, 0)

	p := s.PlayerByID(1001)
	require.NotNil(t, p)
	assert.Equal(t, "ashleychan", p.Username)
	assert.Equal(t, int64(1250), p.Credits)

	banned := s.PlayerByUsername("Cheater_X")
	require.NotNil(t, banned)
	assert.Equal(t, domain.PlayerStatusBanned, banned.Status)

	item := s.ItemByID(1)
	require.NotNil(t, item)
	assert.Equal(t, int64(50), item.Price)
	assert.Equal(t, int64(999), item.Stock)

	auc := s.AuctionByID(1)
	require.NotNil(t, auc)
	assert.Equal(t, domain.AuctionStatusActive, auc.Status)
	assert.Equal(t, testNow.Add(time.Hour), auc.EndTime)
}

func TestLogRingBound(t *testing.T) {
	s := New(50)

	for i := 0; i < 60; i++ {
		s.AppendLog(testNow.Add(time.Duration(i)*time.Second), fmt.Sprintf("entry %d", i))
	}

	logs := s.Logs()
	require.Len(t, logs, 50)

	// Most-recent-first: the head is the last appended entry and the
	// oldest ten were evicted
	assert.Equal(t, "entry 59", logs[0].Message)
	assert.Equal(t, "entry 10", logs[49].Message)
}

func TestLogOrderMostRecentFirst(t *testing.T) {
	s := New(50)
	s.AppendLog(testNow, "first")
	s.AppendLog(testNow.Add(time.Second), "second")

	logs := s.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Message)
	assert.Equal(t, "first", logs[1].Message)
}

func TestDecrementStockFlipsAtZero(t *testing.T) {
	s := New(0)
	s.PrependItem(domain.StoreItem{ID: 7, Name: "Rare Gem", Price: 10, Stock: 2, Status: domain.ItemStatusAvailable})
	item := s.ItemByID(7)
	require.NotNil(t, item)

	s.DecrementStock(item, testNow)
	assert.Equal(t, int64(1), item.Stock)
	assert.Equal(t, domain.ItemStatusAvailable, item.Status)
	assert.Nil(t, item.SoldAt)

	s.DecrementStock(item, testNow)
	assert.Equal(t, int64(0), item.Stock)
	assert.Equal(t, domain.ItemStatusSoldOut, item.Status)
	require.NotNil(t, item.SoldAt)
	assert.Equal(t, testNow, *item.SoldAt)

	// Already at zero: a further decrement is a no-op
	s.DecrementStock(item, testNow.Add(time.Minute))
	assert.Equal(t, int64(0), item.Stock)
	assert.Equal(t, testNow, *item.SoldAt)
}

func TestApplyPlayerPatch(t *testing.T) {
	s := Seeded(testNow, 0)

	credits := int64(777)
	status := domain.PlayerStatusBanned
	badges := []string{"whale", "founder"}
	p := s.ApplyPlayerPatch(domain.PlayerPatch{
		ID:      1001,
		Credits: &credits,
		Status:  &status,
		Badges:  &badges,
	})
	require.NotNil(t, p)

	assert.Equal(t, int64(777), p.Credits)
	assert.Equal(t, domain.PlayerStatusBanned, p.Status)
	assert.Equal(t, []string{"whale", "founder"}, p.Badges)
	// Untouched fields survive the merge
	assert.Equal(t, "ashleychan", p.Username)
	assert.Equal(t, int64(50), p.Crystals)

	assert.Nil(t, s.ApplyPlayerPatch(domain.PlayerPatch{ID: 4242}))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := Seeded(testNow, 0)
	s.AppendInventory(s.PlayerByID(1001), domain.InventoryItem{ID: "a", Name: "Old Sword"})

	snap := s.Snapshot()

	// Mutate the live store after taking the snapshot
	p := s.PlayerByID(1001)
	p.Credits = 1
	p.Inventory[0].Name = "changed"
	s.AppendLog(testNow, "later")

	require.NotEmpty(t, snap.Players)
	assert.Equal(t, int64(1250), snap.Players[0].Credits)
	assert.Equal(t, "Old Sword", snap.Players[0].Inventory[0].Name)
	assert.Empty(t, snap.Logs)
}

func TestEndExpiredAuctions(t *testing.T) {
	s := Seeded(testNow, 0)
	s.PrependAuction(domain.Auction{ID: 2, Item: "Lava Blade", Bid: 10, Status: domain.AuctionStatusActive, EndTime: testNow.Add(2 * time.Hour)})
	s.PrependAuction(domain.Auction{ID: 3, Item: "Dull Rock", Status: domain.AuctionStatusCancelled, EndTime: testNow.Add(-time.Hour)})

	ended := s.EndExpiredAuctions(testNow.Add(90 * time.Minute))
	require.Len(t, ended, 1)
	assert.Equal(t, int64(1), ended[0].ID)

	auc := s.AuctionByID(1)
	assert.Equal(t, domain.AuctionStatusEnded, auc.Status)
	require.NotNil(t, auc.EndedAt)

	// Untouched: the still-running auction and the cancelled one
	assert.Equal(t, domain.AuctionStatusActive, s.AuctionByID(2).Status)
	assert.Equal(t, domain.AuctionStatusCancelled, s.AuctionByID(3).Status)

	// A second pass at the same instant finds nothing new
	assert.Empty(t, s.EndExpiredAuctions(testNow.Add(90*time.Minute)))
	assert.Equal(t, domain.AuctionStatusEnded, s.AuctionByID(1).Status)
}

func TestDeleteItem(t *testing.T) {
	s := Seeded(testNow, 0)
	assert.True(t, s.DeleteItem(1))
	assert.Nil(t, s.ItemByID(1))
	assert.False(t, s.DeleteItem(1))
}
