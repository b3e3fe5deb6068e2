package api

import "encoding/json"

// Error is the typed failure the core sees from the transport boundary. It
// carries the server-provided code and message when the response had a
// well-formed failure envelope, or a generic fallback otherwise.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// UserMessage is the text safe to surface to staff.
func (e *Error) UserMessage() string {
	return e.Message
}

// envelope is the tagged union every operational response arrives in:
// {ok:true, data:T} or {ok:false, error:{code,message}}. It is validated at
// the boundary; the core only ever sees the unwrapped data or an *Error.
type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *Error          `json:"error"`
}
