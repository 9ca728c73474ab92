package room

import (
	"time"

	"github.com/google/uuid"
)

const logMessageLimit = 200

// LogMessage is a narrated line of the current hand
type LogMessage struct {
	UUID    string    `json:"uuid"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func newLogMessages(lines []string) []*LogMessage {
	now := time.Now()
	messages := make([]*LogMessage, len(lines))
	for i, line := range lines {
		messages[i] = &LogMessage{
			UUID:    uuid.New().String(),
			Message: line,
			Time:    now,
		}
	}

	return messages
}

// addLogMessages adds log messages, keeping the most recent
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
