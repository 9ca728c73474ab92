package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	for _, a := range All {
		got, err := FromString(string(a))
		assert.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := FromString("muck")
	assert.EqualError(t, err, "unknown action for identifier: muck")
	assert.Equal(t, Action(""), got)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "Fold", Fold.String())
	assert.Equal(t, "All-In", AllIn.String())
	assert.Panics(t, func() {
		_ = Action("muck").String()
	})
}

func TestAction_Token(t *testing.T) {
	assert.Equal(t, "f", Fold.Token(0))
	assert.Equal(t, "x", Check.Token(0))
	assert.Equal(t, "c", Call.Token(40))
	assert.Equal(t, "b80", Bet.Token(80))
	assert.Equal(t, "r200", Raise.Token(200))
	assert.Equal(t, "allin", AllIn.Token(960))
	assert.Equal(t, "", Action("muck").Token(0))
}

func TestAction_Label(t *testing.T) {
	assert.Equal(t, "Fold", Fold.Label(0))
	assert.Equal(t, "Check", Check.Label(0))
	assert.Equal(t, "Call", Call.Label(40))
	assert.Equal(t, "Bet 80", Bet.Label(80))
	assert.Equal(t, "Raise 200", Raise.Label(200))
	assert.Equal(t, "All-In", AllIn.Label(960))
}

func TestAction_LogMessage(t *testing.T) {
	assert.Equal(t, "folds", Fold.LogMessage(0))
	assert.Equal(t, "checks", Check.LogMessage(0))
	assert.Equal(t, "calls 40", Call.LogMessage(40))
	assert.Equal(t, "bets 80", Bet.LogMessage(80))
	assert.Equal(t, "raises to 200", Raise.LogMessage(200))
	assert.Equal(t, "goes all-in for 960", AllIn.LogMessage(960))
}

func TestAction_JSON(t *testing.T) {
	b, err := json.Marshal(Raise)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"raise","name":"Raise"}`, string(b))

	var a Action
	assert.NoError(t, json.Unmarshal(b, &a))
	assert.Equal(t, Raise, a)

	assert.NoError(t, json.Unmarshal([]byte(`"allin"`), &a))
	assert.Equal(t, AllIn, a)

	assert.EqualError(t, json.Unmarshal([]byte(`"muck"`), &a), "unknown action for identifier: muck")
}

func TestAction_RequiresAmount(t *testing.T) {
	assert.True(t, Bet.RequiresAmount())
	assert.True(t, Raise.RequiresAmount())
	assert.False(t, Call.RequiresAmount())
	assert.False(t, AllIn.RequiresAmount())
	assert.True(t, Call.IsValid())
	assert.False(t, Action("muck").IsValid())
}

func TestParseToken(t *testing.T) {
	for _, a := range All {
		amount := 0
		if a.RequiresAmount() {
			amount = 120
		}

		parsed, amt, err := ParseToken(a.Token(amount))
		assert.NoError(t, err)
		assert.Equal(t, a, parsed)
		assert.Equal(t, amount, amt)
	}

	for _, token := range []string{"", "b", "r0", "b-5", "bx", "q", "call"} {
		_, _, err := ParseToken(token)
		assert.EqualError(t, err, "unknown action token: "+token)
	}
}
