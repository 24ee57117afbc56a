package entities

import "time"

// ReviewTicket is the escalation record handed to the homologation engineers
// when a case is finalized.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (case_id-index): case_id
//
// Exactly one ticket exists per finalized case; repeating finalize returns the
// same ticket id instead of opening a second one.
type ReviewTicket struct {
	ID             string    `json:"id"`
	CaseID         string    `json:"case_id"`
	ConversationID string    `json:"conversation_id"`
	TierID         string    `json:"tier_id"`
	Price          float64   `json:"price"`
	CreatedAt      time.Time `json:"created_at"`
}
