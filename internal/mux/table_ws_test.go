package mux

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"handhistory-server/pkg/room"
)

type wsResponse struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Context string          `json:"context"`
	Data    json.RawMessage `json:"data"`
}

// readUntil reads messages until one has the key and passes match
func readUntil(t *testing.T, conn *websocket.Conn, key string, match func(*room.TableState) bool) *wsResponse {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var resp wsResponse
		require.NoError(t, conn.ReadJSON(&resp))
		if resp.Key != key {
			continue
		}

		if match == nil {
			return &resp
		}

		var state room.TableState
		require.NoError(t, json.Unmarshal(resp.Data, &state))
		if match(&state) {
			return &resp
		}
	}
}

func Test_getTableWS(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, "")

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the table is pushed on connect
	readUntil(t, conn, "table", func(s *room.TableState) bool {
		return !s.Table.Active && s.Clients == 1
	})

	require.NoError(t, conn.WriteJSON(room.PayloadIn{Action: room.ActionReset}))
	readUntil(t, conn, "table", func(s *room.TableState) bool {
		return s.Table.Active && s.HandCount == 1
	})

	require.NoError(t, conn.WriteJSON(room.PayloadIn{Action: "shove", Context: "abc"}))
	resp := readUntil(t, conn, "error", nil)
	a.Equal("abc", resp.Context)
	a.Equal("unknown action for identifier: shove", resp.Value)

	amount := 80
	require.NoError(t, conn.WriteJSON(room.PayloadIn{Action: "bet", Amount: &amount}))
	readUntil(t, conn, "table", func(s *room.TableState) bool {
		return s.Table.ActionSequence == "b80"
	})

	// http actions are pushed to websocket clients too
	var state room.TableState
	assertPost(t, ts, "/table/action", postTableActionPayload{Action: "call"}, &state, 200)
	readUntil(t, conn, "table", func(s *room.TableState) bool {
		return s.Table.ActionSequence == "b80 c"
	})
}

func Test_getTableWS_endShift(t *testing.T) {
	ts, env := newTestServer(t, "")

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/table/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readUntil(t, conn, "table", nil)
	env.dealer.EndShift()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}

		var closeErr *websocket.CloseError
		if assert.ErrorAs(t, err, &closeErr) {
			assert.Equal(t, websocket.CloseNormalClosure, closeErr.Code)
			assert.Equal(t, "the table has closed", closeErr.Text)
		}

		return
	}
}
