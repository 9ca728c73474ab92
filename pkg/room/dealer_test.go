package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"handhistory-server/internal/rng"
	"handhistory-server/pkg/action"
	"handhistory-server/pkg/hand"
	"handhistory-server/pkg/holdem"
	"handhistory-server/pkg/store"
)

type failingStore struct{}

var errStoreDown = errors.New("store is down")

func (failingStore) CreateHand(context.Context, *hand.Record) (*hand.Record, error) {
	return nil, errStoreDown
}

func (failingStore) GetAllHands(context.Context) ([]*hand.Record, error) {
	return nil, errStoreDown
}

func (failingStore) GetHandByID(context.Context, uuid.UUID) (*hand.Record, error) {
	return nil, errStoreDown
}

func (failingStore) SetWinnings(context.Context, uuid.UUID, map[string]int) (*hand.Record, error) {
	return nil, errStoreDown
}

func newTestDealer(t *testing.T, s store.Store) *Dealer {
	t.Helper()

	e, err := holdem.NewEngine(logrus.StandardLogger(), rng.NewSeeded(7), holdem.DefaultOptions())
	require.NoError(t, err)

	d := NewDealer(logrus.StandardLogger(), e, holdem.DefaultNames, s)
	d.StartShift(context.Background())
	t.Cleanup(func() {
		d.Flush()
		d.EndShift()
	})

	return d
}

func nextResponse(t *testing.T, c *Client, key string) *Response {
	t.Helper()

	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			resp, ok := msg.(*Response)
			if ok && resp.Key == key {
				return resp
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s response", key)
			return nil
		}
	}
}

func TestDealer_AddClient(t *testing.T) {
	d := newTestDealer(t, store.NewMemory())
	c := NewClient(nil)
	c2 := NewClient(nil)

	d.AddClient(c)
	d.AddClient(c2)

	resp := nextResponse(t, c2, "table")
	ts, ok := resp.Data.(*TableState)
	require.True(t, ok)
	assert.False(t, ts.Table.Active)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
}

func TestDealer_Reset(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, store.NewMemory())

	ts, err := d.Reset(context.Background())
	a.NoError(err)
	a.True(ts.Table.Active)
	a.Equal(1, ts.HandCount)
	a.Equal(60, ts.Table.Pot)
	a.Equal(3, ts.Table.CurrentPlayer)
	if a.NotEmpty(ts.Log) {
		a.Equal("Player4 to act", ts.Log[len(ts.Log)-1].Message)
	}

	// the log only covers the current hand
	ts, err = d.Reset(context.Background())
	a.NoError(err)
	a.Equal(2, ts.HandCount)
	a.Len(ts.Log, 4)
}

func TestDealer_Action(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, store.NewMemory())
	ctx := context.Background()

	// no hand yet
	ts, err := d.Action(ctx, holdem.Intent{Action: action.Fold})
	a.NoError(err)
	a.False(ts.Table.Active)
	a.Equal(0, ts.HandCount)

	_, err = d.Reset(ctx)
	a.NoError(err)

	ts, err = d.Action(ctx, holdem.NewIntent(action.Bet, -5))
	a.True(errors.Is(err, holdem.ErrInvalidAmount))
	a.Nil(ts)

	ts, err = d.Action(ctx, holdem.Intent{Action: action.Call})
	a.NoError(err)
	a.Equal(100, ts.Table.Pot)
	a.Equal("Call", ts.Table.Seats[3].LastAction)
	a.Equal("Player4 calls 40", ts.Log[len(ts.Log)-1].Message)
}

func TestDealer_savesCompletedHand(t *testing.T) {
	a := assert.New(t)
	s := store.NewMemory()
	d := newTestDealer(t, s)
	ctx := context.Background()

	_, err := d.Reset(ctx)
	a.NoError(err)

	var ts *TableState
	for i := 0; i < 5; i++ {
		ts, err = d.Action(ctx, holdem.Intent{Action: action.Fold})
		require.NoError(t, err)
	}

	a.False(ts.Table.Active)
	a.Equal("Hand complete - saving to history", ts.Log[len(ts.Log)-1].Message)

	a.Eventually(func() bool {
		ts, err := d.State(ctx)
		return err == nil && len(ts.History) == 1
	}, time.Second, 10*time.Millisecond)

	records, err := s.GetAllHands(ctx)
	a.NoError(err)
	if a.Len(records, 1) {
		r := records[0]
		a.Equal("f f f f f", r.ActionSequence)
		a.Equal("Player1", r.PlayerRoles[hand.RoleDealer])
		a.Equal("Player2", r.PlayerRoles[hand.RoleSmallBlind])
		a.Equal("Player3", r.PlayerRoles[hand.RoleBigBlind])
		a.Equal(980, r.StackSettings["Player2"])
		a.Len(r.HoleCards, 6)
		a.Equal(0, r.Winnings["Player6"])
	}
}

func TestDealer_loadsHistory(t *testing.T) {
	a := assert.New(t)
	s := store.NewMemory()
	ctx := context.Background()

	req := &hand.CreateRequest{
		StackSettings:  map[string]int{"Player1": 1000},
		PlayerRoles:    map[string]string{hand.RoleDealer: "Player1"},
		HoleCards:      map[string][]string{"Player1": {"Ah", "Kd"}},
		ActionSequence: "f f f f f",
	}

	_, err := s.CreateHand(ctx, hand.Process(req, time.Now().Add(-time.Hour), uuid.New()))
	a.NoError(err)
	_, err = s.CreateHand(ctx, hand.Process(req, time.Now(), uuid.New()))
	a.NoError(err)

	d := newTestDealer(t, s)
	a.Eventually(func() bool {
		ts, err := d.State(ctx)
		return err == nil && len(ts.History) == 2
	}, time.Second, 10*time.Millisecond)

	ts, err := d.State(ctx)
	a.NoError(err)
	a.True(ts.History[0].CreatedAt.After(ts.History[1].CreatedAt))
}

func TestDealer_storeFailure(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, failingStore{})
	ctx := context.Background()

	_, err := d.Reset(ctx)
	a.NoError(err)
	for i := 0; i < 5; i++ {
		_, err = d.Action(ctx, holdem.Intent{Action: action.Fold})
		a.NoError(err)
	}

	d.Flush()

	ts, err := d.State(ctx)
	a.NoError(err)
	a.Empty(ts.History)
	a.False(ts.Table.Active)

	// the table keeps going
	ts, err = d.Reset(ctx)
	a.NoError(err)
	a.True(ts.Table.Active)
}

func TestDealer_ReceivedMessage(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, store.NewMemory())
	c := NewClient(nil)
	d.AddClient(c)
	nextResponse(t, c, "table")

	c.ReceivedMessage(&PayloadIn{Action: "shove", Context: "abc"})
	resp := nextResponse(t, c, "error")
	a.Equal("abc", resp.Context)
	a.Contains(resp.Value, "shove")

	c.ReceivedMessage(&PayloadIn{Action: ActionReset})
	resp = nextResponse(t, c, "table")
	ts := resp.Data.(*TableState)
	a.True(ts.Table.Active)

	amount := 0
	c.ReceivedMessage(&PayloadIn{Action: "bet", Amount: &amount, Context: "def"})
	resp = nextResponse(t, c, "error")
	a.Equal("def", resp.Context)
}

func TestDealer_EndShift(t *testing.T) {
	e, err := holdem.NewEngine(nil, rng.NewSeeded(1), holdem.DefaultOptions())
	require.NoError(t, err)

	d := NewDealer(nil, e, holdem.DefaultNames, store.NewMemory())
	d.StartShift(context.Background())
	d.EndShift()

	_, err = d.State(context.Background())
	assert.Equal(t, ErrShiftOver, err)
}

func TestMergeHistory(t *testing.T) {
	a := assert.New(t)

	now := time.Now()
	older := &hand.Record{ID: uuid.New(), CreatedAt: now.Add(-time.Minute)}
	newer := &hand.Record{ID: uuid.New(), CreatedAt: now}

	merged := mergeHistory([]*hand.Record{older}, []*hand.Record{newer, older})
	a.Equal([]*hand.Record{newer, older}, merged)
}

func TestDealer_EndShift_kicksClients(t *testing.T) {
	d := newTestDealer(t, store.NewMemory())
	c := NewClient(nil)
	d.AddClient(c)

	d.EndShift()
	d.EndShift()

	select {
	case reason := <-c.Close:
		assert.Equal(t, closeReasonShiftOver, reason)
	case <-time.After(time.Second):
		t.Fatal("client was not asked to close")
	}
}

func TestDealer_afterEndShift(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, store.NewMemory())
	d.EndShift()

	c := NewClient(nil)
	done := make(chan bool)
	go func() {
		defer close(done)

		// more events than the channels buffer
		for i := 0; i < 300; i++ {
			d.AddClient(c)
			d.RemoveClient(c)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("client events blocked after the shift ended")
	}

	c.ReceivedMessage(&PayloadIn{Action: ActionReset, Context: "abc"})
	resp := nextResponse(t, c, "error")
	a.Equal("abc", resp.Context)
	a.Equal(ErrShiftOver.Error(), resp.Value)
}
