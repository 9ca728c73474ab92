package room

// Response is a message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Context string      `json:"context,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PayloadIn is a message received from a websocket client
// Action is an engine action name, or "reset" to deal a new hand
type PayloadIn struct {
	Action  string `json:"action"`
	Amount  *int   `json:"amount,omitempty"`
	Context string `json:"context,omitempty"`
}

// ActionReset deals a new hand
const ActionReset = "reset"

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newTableResponse(ctx string, state *TableState) *Response {
	return &Response{
		Key:     "table",
		Context: ctx,
		Data:    state,
	}
}
