package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"handhistory-server/pkg/room"
	"handhistory-server/pkg/store"
)

const uuidPattern = "{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	dealer  *room.Dealer
	store   store.Store
}

// NewMux returns a new HTTP mux
// The dealer must already be on shift
func NewMux(version string, dealer *room.Dealer, s store.Store) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		dealer:  dealer,
		store:   s,
	}

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// stored hand histories
	{
		r := this.Router.PathPrefix("/hands").Subrouter()
		r.Methods(http.MethodGet).Path("").Handler(this.getHands())
		r.Methods(http.MethodPost).Path("").Handler(this.postHands())
		r.Methods(http.MethodGet).Path("/" + uuidPattern).Handler(this.getHandsUUID())
		r.Methods(http.MethodPut).Path("/" + uuidPattern + "/winnings").Handler(this.putHandsUUIDWinnings())
	}

	// the live table
	{
		r := this.Router.PathPrefix("/table").Subrouter()
		r.Methods(http.MethodGet).Path("").Handler(this.getTable())
		r.Methods(http.MethodPost).Path("/reset").Handler(this.postTableReset())
		r.Methods(http.MethodPost).Path("/action").Handler(this.postTableAction())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getTableWS())
	}

	this.Router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, nil)
	})

	this.Router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, nil)
	})

	return this
}
