package llm

import "fmt"

// ServiceError reports a failed completion request: a non-success response
// from the backend or a transport failure. StatusCode is 0 when no HTTP
// status was received.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion service: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("completion service: %s", e.Message)
}
