package domain

// Result is the envelope every user-facing workflow returns. Workflows
// never surface raw errors; failures of any kind collapse into a
// human-readable message here. Status carries the HTTP code for the
// transport layer and is not part of the wire format.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// Ok builds a success result.
func Ok(status int, message string) Result {
	return Result{Success: true, Message: message, Status: status}
}

// Fail builds a failure result.
func Fail(status int, message string) Result {
	return Result{Success: false, Message: message, Status: status}
}
