package request

import "encoding/json"

// CaseActionRequest is the payload of the conversation action route.
//
// `payload` is kept as raw JSON; each action decodes its own shape, so the
// transport layer stays action-agnostic.

type CaseActionRequest struct {
	Action  string          `json:"action" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}
