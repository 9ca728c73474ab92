package mux

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"handhistory-server/pkg/hand"
)

func createRequest() *hand.CreateRequest {
	return &hand.CreateRequest{
		StackSettings: map[string]int{"Ann": 1000, "Bob": 980, "Cal": 960, "Dee": 1000, "Eve": 1000, "Fay": 1000},
		PlayerRoles:   map[string]string{hand.RoleDealer: "Ann", hand.RoleSmallBlind: "Bob", hand.RoleBigBlind: "Cal"},
		HoleCards: map[string][]string{
			"Ann": {"Ah", "Kd"},
			"Bob": {"Jc", "Js"},
			"Cal": {"7h", "8h"},
			"Dee": {"2c", "3d"},
			"Eve": {"Qh", "Td"},
			"Fay": {"5s", "5c"},
		},
		ActionSequence: "f f f c c x / Flop: [Ks,Qd,Jc] x x x / Turn: [2h] x x x / River: [8s] x x x",
	}
}

func Test_postHands(t *testing.T) {
	a := assert.New(t)
	ts, env := newTestServer(t, "")

	req := createRequest()
	var rec hand.Record
	assertPost(t, ts, "/hands", req, &rec, 201)
	a.NotEqual(uuid.Nil, rec.ID)
	a.False(rec.CreatedAt.IsZero())
	a.Equal(req.StackSettings, rec.StackSettings)
	a.Equal(req.PlayerRoles, rec.PlayerRoles)
	a.Equal(req.HoleCards, rec.HoleCards)
	a.Equal(req.ActionSequence, rec.ActionSequence)
	a.Equal(0, rec.Winnings["Fay"])
	a.Len(rec.Winnings, 6)

	stored, err := env.store.GetHandByID(cbg, rec.ID)
	a.NoError(err)
	a.Equal(req.ActionSequence, stored.ActionSequence)
}

func Test_postHands_errors(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, "")

	var errObj errorResponse
	req := createRequest()
	req.ActionSequence = ""
	assertPost(t, ts, "/hands", req, &errObj, 400)
	a.Equal("action_sequence is required", errObj.Message)

	req = createRequest()
	req.HoleCards["Ann"] = []string{"Ah", "Kx"}
	assertPost(t, ts, "/hands", req, &errObj, 400)
	a.Equal("hole_cards for Ann: invalid card: Kx", errObj.Message)

	assertPost(t, ts, "/hands", "{", &errObj, 400)

	r, _ := http.NewRequest(http.MethodPost, ts.URL+"/hands", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "text/plain")
	assertDo(t, r, &errObj, 415)
	a.Equal("Unsupported Media Type", errObj.Message)
}

func Test_postHands_boardRepeatsHoleCard(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, "")

	// Player2 holds Jc and the flop shows Jc; card text is all that is checked
	payload := `{
  "stack_settings": {"Player1": 1000, "Player2": 1000, "Player3": 1000, "Player4": 1000, "Player5": 1000, "Player6": 1000},
  "player_roles": {"dealer": "Player1", "sb": "Player2", "bb": "Player3"},
  "hole_cards": {"Player1": ["Ah", "Kd"], "Player2": ["Jc", "Js"], "Player3": ["7h", "8h"],
                 "Player4": ["2c", "3d"], "Player5": ["Qh", "Td"], "Player6": ["5s", "5c"]},
  "action_sequence": "r200 c c / Flop: [Ks,Qd,Jc] / b400 c / Turn: [2h] / x x / River: [8s] / x b1000 f"
}`

	var rec hand.Record
	assertPost(t, ts, "/hands", payload, &rec, 201)
	a.Equal([]string{"Jc", "Js"}, rec.HoleCards["Player2"])
	a.Equal("r200 c c / Flop: [Ks,Qd,Jc] / b400 c / Turn: [2h] / x x / River: [8s] / x b1000 f", rec.ActionSequence)
}

func Test_getHands(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, "")

	var resp getHandsResponse
	assertGet(t, ts, "/hands", &resp, 200)
	a.NotNil(resp.Hands)
	a.Empty(resp.Hands)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		var rec hand.Record
		assertPost(t, ts, "/hands", createRequest(), &rec, 201)
		ids[i] = rec.ID
	}

	assertGet(t, ts, "/hands", &resp, 200)
	if a.Len(resp.Hands, 3) {
		a.Equal(ids[2], resp.Hands[0].ID)
		a.Equal(ids[1], resp.Hands[1].ID)
		a.Equal(ids[0], resp.Hands[2].ID)
	}

	assertGet(t, ts, "/hands?start=1&rows=1", &resp, 200)
	if a.Len(resp.Hands, 1) {
		a.Equal(ids[1], resp.Hands[0].ID)
	}

	assertGet(t, ts, "/hands?start=10", &resp, 200)
	a.Empty(resp.Hands)

	var errObj errorResponse
	assertGet(t, ts, "/hands?start=-1", &errObj, 400)
	a.Equal("start cannot be less than zero", errObj.Message)
}

func Test_getHandsUUID(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, "")

	var created hand.Record
	assertPost(t, ts, "/hands", createRequest(), &created, 201)

	var rec hand.Record
	assertGet(t, ts, "/hands/"+created.ID.String(), &rec, 200)
	a.Equal(created.ID, rec.ID)
	a.Equal(created.HoleCards, rec.HoleCards)
	a.True(created.CreatedAt.Equal(rec.CreatedAt))

	var errObj errorResponse
	assertGet(t, ts, "/hands/"+uuid.New().String(), &errObj, 404)
	a.Equal("Not Found", errObj.Message)
}

func Test_putHandsUUIDWinnings(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t, "")

	var created hand.Record
	assertPost(t, ts, "/hands", createRequest(), &created, 201)

	var rec hand.Record
	path := "/hands/" + created.ID.String() + "/winnings"
	assertPut(t, ts, path, map[string]int{"Ann": 150, "Bob": -150}, &rec, 200)
	a.Equal(150, rec.Winnings["Ann"])
	a.Equal(-150, rec.Winnings["Bob"])
	a.Equal(0, rec.Winnings["Cal"])

	var errObj errorResponse
	assertPut(t, ts, path, map[string]int{"Zed": 10}, &errObj, 400)
	a.Equal("unknown player in winnings: Zed", errObj.Message)

	assertPut(t, ts, "/hands/"+uuid.New().String()+"/winnings", map[string]int{"Ann": 1}, &errObj, 404)
}
