package calculator

import "time"

// PressRequest is the JSON body for POST /calculator/sessions/{id}/press.
type PressRequest struct {
	Token string `json:"token"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Tokens []string `json:"tokens"`
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	A  string `json:"a"`
	B  string `json:"b"`
	Op string `json:"op"` // "+", "-", "*", "/"
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
// Result is "Error" when the operation cannot be carried out.
type EvaluateResponse struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Op     string `json:"op"`
	Result string `json:"result"`
}

// SessionResponse is the JSON representation of a session.
type SessionResponse struct {
	ID string `json:"id"`
	State
	Presses   int       `json:"presses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeysResponse is the JSON response for POST /calculator/sessions/{id}/keys.
type KeysResponse struct {
	SessionResponse
	Steps []KeyStep `json:"steps"`
}

// KeyStep records the display after one token of a batch. Ignored is set
// when the token was rejected by the engine guards (see Accepts).
type KeyStep struct {
	Token   string `json:"token"`
	Display string `json:"display"`
	Ignored bool   `json:"ignored,omitempty"`
}

func newSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		State:     s.State,
		Presses:   s.Presses,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
