package request

import "encoding/json"

// CasePaymentCreateRequest is the payload for the "crea y aprueba pago" route.
//
// `mp_payload` is stored as-is (raw JSON) to support varying Mercado Pago schemas.

type CasePaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
