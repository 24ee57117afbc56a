package usecase

// Error codes of the action surface. They are a fixed vocabulary so the
// conversational caller can branch deterministically; messages are for
// humans and carry no contract.
const (
	CodeFSMWrongPhase      = "FSM_WRONG_PHASE"
	CodeFSMNotIdle         = "FSM_NOT_IDLE"
	CodeFieldUnknown       = "FIELD_UNKNOWN"
	CodeFieldInvalid       = "FIELD_INVALID"
	CodeNoMatch            = "NO_MATCH"
	CodeNoConfidentVariant = "NO_CONFIDENT_VARIANT"
	CodeNoTierCovers       = "NO_TIER_COVERS"
)

// ActionResult is the uniform reply of every case action.
//
// A result with an ErrorCode still went through the pipeline normally: the
// case was loaded and left untouched (except explicitly reported saved
// fields), and the caller can re-prompt. Infrastructure faults surface as
// Go errors instead, never as a success.
type ActionResult struct {
	Success     bool           `json:"success"`
	AlreadyDone bool           `json:"already_done"`
	ErrorCode   string         `json:"error_code,omitempty"`
	Message     string         `json:"message,omitempty"`
	Guidance    string         `json:"guidance,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

func okResult(message string, data map[string]any) ActionResult {
	return ActionResult{Success: true, Message: message, Data: data}
}

func doneResult(message string, data map[string]any) ActionResult {
	return ActionResult{Success: true, AlreadyDone: true, Message: message, Data: data}
}

func failResult(code, message, guidance string) ActionResult {
	return ActionResult{ErrorCode: code, Message: message, Guidance: guidance}
}
