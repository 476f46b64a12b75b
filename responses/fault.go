package responses

import (
	"fmt"
)

// Fault describes a call the api rejected, for humans and machines
type Fault struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	// engage error id, see the api documentation for the list
	ErrorID string `json:"errorId,omitempty" yaml:"errorId,omitempty"`
}

func (f *Fault) Error() string {
	if f.ErrorID != "" {
		return fmt.Sprintf("code:%q, errorId:%q, message:%q", f.Code, f.ErrorID, f.Message)
	}
	return fmt.Sprintf("code:%q, message:%q", f.Code, f.Message)
}
