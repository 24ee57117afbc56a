package response

import "homologacion_motos/internal/usecase"

// ActionResultResponse is the uniform envelope of every action route.
// Conversational failures (error_code set) ride the same shape as successes,
// so the chat layer always parses one structure.
type ActionResultResponse struct {
	Success     bool           `json:"success"`
	AlreadyDone bool           `json:"already_done"`
	ErrorCode   string         `json:"error_code,omitempty"`
	Message     string         `json:"message,omitempty"`
	Guidance    string         `json:"guidance,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

func FromActionResult(r usecase.ActionResult) ActionResultResponse {
	return ActionResultResponse{
		Success:     r.Success,
		AlreadyDone: r.AlreadyDone,
		ErrorCode:   r.ErrorCode,
		Message:     r.Message,
		Guidance:    r.Guidance,
		Data:        r.Data,
	}
}
