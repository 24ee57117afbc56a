package response

import (
	"time"

	"homologacion_motos/internal/domain/entities"
)

type CasePaymentResponse struct {
	ID             string    `json:"id"`
	CaseID         string    `json:"case_id"`
	ConversationID string    `json:"conversation_id"`
	Amount         float64   `json:"amount"`
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromCasePayment(p entities.CasePayment) CasePaymentResponse {
	return CasePaymentResponse{
		ID:             p.ID,
		CaseID:         p.CaseID,
		ConversationID: p.ConversationID,
		Amount:         p.Amount,
		Date:           p.Date,
		Status:         string(p.Status),
		MPPayloadRaw:   string(p.ProviderPayloadRaw),
		MPPayload:      p.ProviderPayload,
	}
}
