package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/game-economy/internal/domain"
)

func TestUpdatePlayerMerge(t *testing.T) {
	e, rec, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventUpdatePlayer, []byte(`{"id":1001,"credits":9000,"status":"Offline","badges":["vip"]}`))

	p := st.PlayerByID(1001)
	assert.Equal(t, int64(9000), p.Credits)
	assert.Equal(t, domain.PlayerStatusOffline, p.Status)
	assert.Equal(t, []string{"vip"}, p.Badges)
	// Fields absent from the patch are untouched
	assert.Equal(t, "ashleychan", p.Username)
	assert.Equal(t, int64(50), p.Crystals)
	assert.Equal(t, 4, p.DailyStreak)

	logs := st.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Admin updated player ashleychan", logs[0].Message)
	assert.Equal(t, []Collection{CollectionPlayers, CollectionLogs}, rec.collections())
}

func TestUpdatePlayerRejections(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"unknown id", []byte(`{"id":4242,"credits":1}`)},
		{"bad status", []byte(`{"id":1001,"status":"Godmode"}`)},
		{"string credits", []byte(`{"id":1001,"credits":"lots"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec, st := newTestEngine(t)

			e.HandleEvent("admin", domain.EventUpdatePlayer, tt.payload)

			assert.Equal(t, int64(1250), st.PlayerByID(1001).Credits)
			assert.True(t, rec.empty())
		})
	}
}

func TestAddItemPrepends(t *testing.T) {
	e, rec, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventAddItem, raw(t, domain.NewItemRequest{
		ID: 2, Name: "Mana Elixir", Price: 120, Stock: 10,
	}))

	items := st.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Mana Elixir", items[0].Name)
	assert.Equal(t, domain.ItemStatusAvailable, items[0].Status)

	assert.Equal(t, []Collection{CollectionStore, CollectionLogs}, rec.collections())
	assert.Equal(t, "Added Store Item: Mana Elixir", st.Logs()[0].Message)
}

func TestAddItemWithZeroStockIsSoldOut(t *testing.T) {
	e, _, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventAddItem, raw(t, domain.NewItemRequest{
		ID: 3, Name: "Ghost Item", Price: 5, Stock: 0,
	}))

	item := st.ItemByID(3)
	require.NotNil(t, item)
	assert.Equal(t, domain.ItemStatusSoldOut, item.Status)
	require.NotNil(t, item.SoldAt)
}

func TestCreateAuction(t *testing.T) {
	e, rec, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventCreateAuction, raw(t, domain.NewAuctionRequest{
		ID: 2, Item: "Dragon Egg", StartBid: 500, EndTime: testNow.Add(2 * time.Hour),
	}))

	aucs := st.Auctions()
	require.Len(t, aucs, 2)
	assert.Equal(t, "Dragon Egg", aucs[0].Item)
	assert.Equal(t, int64(500), aucs[0].Bid)
	assert.Equal(t, domain.AuctionStatusActive, aucs[0].Status)
	assert.Empty(t, aucs[0].Bidder)

	assert.Equal(t, []Collection{CollectionAuctions, CollectionLogs}, rec.collections())
	assert.Equal(t, "Started Auction: Dragon Egg", st.Logs()[0].Message)
}

func TestPostAnnouncementMostRecentFirst(t *testing.T) {
	e, rec, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventPostAnnouncement, raw(t, domain.AnnouncementRequest{Title: "Maintenance", Body: "Tonight"}))
	e.HandleEvent("admin", domain.EventPostAnnouncement, raw(t, domain.AnnouncementRequest{Title: "Double XP", Body: "This weekend"}))

	posts := st.Announcements()
	require.Len(t, posts, 2)
	assert.Equal(t, "Double XP", posts[0].Title)
	assert.Equal(t, "Maintenance", posts[1].Title)
	assert.NotEmpty(t, posts[0].ID, "server assigns an id when the client sends none")

	assert.Contains(t, rec.collections(), CollectionAnnouncements)
	assert.Equal(t, "Posted Announcement: Double XP", st.Logs()[0].Message)
}

func TestDeleteItem(t *testing.T) {
	e, rec, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventDeleteItem, []byte(`{"id":1}`))

	assert.Nil(t, st.ItemByID(1))
	assert.Equal(t, []Collection{CollectionStore}, rec.collections())
	assert.Empty(t, st.Logs(), "item removal is not logged")

	rec.reset()
	e.HandleEvent("admin", domain.EventDeleteItem, []byte(`{"id":1}`))
	assert.True(t, rec.empty())
}

func TestMarkSold(t *testing.T) {
	e, rec, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventMarkSold, []byte(`{"id":1}`))

	item := st.ItemByID(1)
	assert.Equal(t, int64(0), item.Stock)
	assert.Equal(t, domain.ItemStatusSoldOut, item.Status)
	require.NotNil(t, item.SoldAt)
	assert.Equal(t, testNow, *item.SoldAt)
	assert.Equal(t, []Collection{CollectionStore}, rec.collections())
}

func TestCancelAuction(t *testing.T) {
	e, rec, st := newTestEngine(t)

	e.HandleEvent("admin", domain.EventCancelAuction, []byte(`{"id":1}`))

	assert.Equal(t, domain.AuctionStatusCancelled, st.AuctionByID(1).Status)
	assert.Equal(t, []Collection{CollectionAuctions}, rec.collections())

	// Cancelled is terminal: bids and re-cancels bounce
	rec.reset()
	e.HandleEvent("c1", domain.EventPlaceBid, []byte(`{"userId":1002,"aucId":1,"bid":9999}`))
	assert.True(t, rec.empty())

	e.HandleEvent("admin", domain.EventCancelAuction, []byte(`{"id":1}`))
	assert.True(t, rec.empty())
	assert.Equal(t, domain.AuctionStatusCancelled, st.AuctionByID(1).Status)
}

func TestCancelEndedAuctionRejected(t *testing.T) {
	e, rec, st := newTestEngine(t)
	st.AuctionByID(1).Status = domain.AuctionStatusEnded

	e.HandleEvent("admin", domain.EventCancelAuction, []byte(`{"id":1}`))

	assert.Equal(t, domain.AuctionStatusEnded, st.AuctionByID(1).Status)
	assert.True(t, rec.empty())
}
