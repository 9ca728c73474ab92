package mux

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"handhistory-server/pkg/hand"
)

type getHandsResponse struct {
	Hands []*hand.Record `json:"hands"`
}

func (m *Mux) getHands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		records, err := m.store.GetAllHands(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if isPaginated(r) {
			records = page(records, start, rows)
		}

		writeJSON(w, http.StatusOK, getHandsResponse{Hands: records})
	}
}

func page(records []*hand.Record, start int64, rows int) []*hand.Record {
	if start >= int64(len(records)) {
		return []*hand.Record{}
	}

	end := int(start) + rows
	if end > len(records) {
		end = len(records)
	}

	return records[start:end]
}

func (m *Mux) postHands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hand.CreateRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		if err := hand.Validate(&req); err != nil {
			writeMaybeUserError(w, err)
			return
		}

		rec, err := m.store.CreateHand(r.Context(), hand.Process(&req, time.Now(), uuid.New()))
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, rec)
	}
}

func (m *Mux) getHandsUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := handID(w, r)
		if !ok {
			return
		}

		rec, err := m.store.GetHandByID(r.Context(), id)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func (m *Mux) putHandsUUIDWinnings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := handID(w, r)
		if !ok {
			return
		}

		var winnings map[string]int
		if !decodeRequest(w, r, &winnings) {
			return
		}

		rec, err := m.store.SetWinnings(r.Context(), id, winnings)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func handID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["uuid"])
	if err != nil {
		writeJSONError(w, http.StatusNotFound, nil)
		return uuid.Nil, false
	}

	return id, true
}
