package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"handhistory-server/pkg/action"
	"handhistory-server/pkg/hand"
	"handhistory-server/pkg/holdem"
	"handhistory-server/pkg/store"
)

type state int

const (
	stateClientEvent state = iota
	stateTableEvent
)

// ErrShiftOver is returned once the dealer has stopped
var ErrShiftOver = errors.New("dealer is no longer running")

const closeReasonShiftOver = "the table has closed"

// TableState is everything a client needs to render the table
type TableState struct {
	Table     *holdem.View   `json:"table"`
	Log       []*LogMessage  `json:"log"`
	History   []*hand.Record `json:"history"`
	HandCount int            `json:"handCount"`
	Clients   int            `json:"clients"`
}

// Dealer runs the table. The engine is only touched from the run loop.
type Dealer struct {
	logger  logrus.FieldLogger
	engine  *holdem.Engine
	names   []string
	store   store.Store
	clients map[*Client]bool
	lock    sync.RWMutex

	logMessages []*LogMessage
	history     []*hand.Record
	saving      sync.WaitGroup

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// names are the seat display names, one per seat
func NewDealer(logger logrus.FieldLogger, engine *holdem.Engine, names []string, s store.Store) *Dealer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dealer{
		logger:        logger,
		engine:        engine,
		names:         append([]string{}, names...),
		store:         s,
		clients:       make(map[*Client]bool),
		history:       []*hand.Record{},
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop and loads the stored history in the background
func (d *Dealer) StartShift(ctx context.Context) {
	go d.runLoop()
	go d.loadHistory(ctx)
}

// EndShift asks connected clients to disconnect and stops the run loop
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		for _, client := range d.Clients() {
			client.Kick(closeReasonShiftOver)
		}

		close(d.close)
	})
}

// notify queues a state change unless the run loop has stopped
func (d *Dealer) notify(s state) {
	select {
	case d.stateChanged <- s:
	case <-d.close:
	}
}

// submit queues fn for the run loop unless it has stopped
func (d *Dealer) submit(fn func()) bool {
	select {
	case <-d.close:
		return false
	default:
	}

	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// Flush waits for hands that are still being saved
func (d *Dealer) Flush() {
	d.saving.Wait()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent, stateTableEvent:
				d.sendTableState()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec runs fn in the run loop and waits for it to finish
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return ErrShiftOver
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		return ErrShiftOver
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dealer) loadHistory(ctx context.Context) {
	records, err := d.store.GetAllHands(ctx)
	if err != nil {
		d.logger.WithError(err).Error("could not load hand history")
		return
	}

	_ = d.exec(ctx, func() {
		d.history = mergeHistory(d.history, records)
		d.sendTableState()
	})
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.notify(stateClientEvent)
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.notify(stateClientEvent)
		return false
	}

	return true
}

// State returns the current table state
func (d *Dealer) State(ctx context.Context) (*TableState, error) {
	var ts *TableState
	if err := d.exec(ctx, func() { ts = d.tableState() }); err != nil {
		return nil, err
	}

	return ts, nil
}

// Reset deals a new hand, abandoning any hand in progress
func (d *Dealer) Reset(ctx context.Context) (*TableState, error) {
	var ts *TableState
	var err error
	if execErr := d.exec(ctx, func() { ts, err = d.reset() }); execErr != nil {
		return nil, execErr
	}

	return ts, err
}

// Action applies an action for the acting seat
// Actions sent while no hand is in progress are ignored
func (d *Dealer) Action(ctx context.Context, intent holdem.Intent) (*TableState, error) {
	var ts *TableState
	var err error
	if execErr := d.exec(ctx, func() { ts, err = d.act(intent) }); execErr != nil {
		return nil, execErr
	}

	return ts, err
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	var fn func()
	if msg.Action == ActionReset {
		fn = func() {
			if _, err := d.reset(); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
			}
		}
	} else {
		a, err := action.FromString(msg.Action)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		fn = func() {
			if _, err := d.act(holdem.Intent{Action: a, Amount: msg.Amount}); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
			}
		}
	}

	if !d.submit(fn) {
		c.Send(newErrorResponse(msg.Context, ErrShiftOver))
	}

}

// NOTE: must only be called from the run loop
func (d *Dealer) reset() (*TableState, error) {
	result, err := d.engine.StartHand()
	if err != nil {
		d.logger.WithError(err).Error("could not start hand")
		return nil, err
	}

	d.logMessages = nil
	d.addLogMessages(newLogMessages(holdem.Narrate(d.names, result.Events)))
	d.sendTableState()
	return d.tableState(), nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) act(intent holdem.Intent) (*TableState, error) {
	result, err := d.engine.ApplyAction(intent)
	if errors.Is(err, holdem.ErrHandNotActive) {
		return d.tableState(), nil
	}

	if err != nil {
		return nil, err
	}

	d.addLogMessages(newLogMessages(holdem.Narrate(d.names, result.Events)))
	if result.Completed {
		d.saveHand()
	}

	d.sendTableState()
	return d.tableState(), nil
}

// saveHand hands the finished hand to the store without waiting for it
// NOTE: must only be called from the run loop
func (d *Dealer) saveHand() {
	req, err := hand.NewCreateRequest(d.engine.Snapshot(), d.names)
	if err != nil {
		d.logger.WithError(err).Error("could not build hand record")
		return
	}

	if err := hand.Validate(req); err != nil {
		d.logger.WithError(err).WithField("sequence", req.ActionSequence).Warn("not saving invalid hand")
		return
	}

	rec := hand.Process(req, time.Now(), uuid.New())
	log := d.logger.WithField("id", rec.ID.String())

	d.saving.Add(1)
	go func() {
		defer d.saving.Done()

		saved, err := d.store.CreateHand(context.Background(), rec)
		if err != nil {
			log.WithError(err).Error("could not save hand")
			return
		}

		log.Info("saved hand")
		_ = d.exec(context.Background(), func() {
			d.history = mergeHistory(d.history, []*hand.Record{saved})
			d.sendTableState()
		})
	}()
}

// NOTE: must only be called from the run loop
func (d *Dealer) tableState() *TableState {
	d.lock.RLock()
	nClients := len(d.clients)
	d.lock.RUnlock()

	return &TableState{
		Table:     d.engine.Snapshot().View(d.names),
		Log:       append([]*LogMessage{}, d.logMessages...),
		History:   append([]*hand.Record{}, d.history...),
		HandCount: d.engine.HandCount(),
		Clients:   nClients,
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendTableState() {
	clients := d.Clients()
	if len(clients) == 0 {
		return
	}

	ts := d.tableState()
	for _, client := range clients {
		if !client.Send(newTableResponse("", ts)) {
			d.logger.WithField("client", client.String()).Warn("client is not keeping up, dropping table state")
		}
	}
}

// mergeHistory combines two record lists, newest first, without duplicates
func mergeHistory(a, b []*hand.Record) []*hand.Record {
	seen := make(map[uuid.UUID]bool, len(a)+len(b))
	merged := make([]*hand.Record, 0, len(a)+len(b))
	for _, list := range [][]*hand.Record{b, a} {
		for _, r := range list {
			if seen[r.ID] {
				continue
			}

			seen[r.ID] = true
			merged = append(merged, r)
		}
	}

	hand.SortByCreatedDesc(merged)
	return merged
}
