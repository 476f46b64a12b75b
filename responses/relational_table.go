package responses

import (
	"github.com/foomo/wca/requests"
)

// RelationalTableFailure - a row the api could not process
type RelationalTableFailure struct {
	FailureType string `json:"failureType" yaml:"failureType"`
	Description string `json:"description" yaml:"description"`
	// the columns of the failed row as echoed by the api
	Columns []requests.Column `json:"columns" yaml:"columns"`
}

// DeleteRelationalTableData - rows that could not be deleted
type DeleteRelationalTableData struct {
	Failures []RelationalTableFailure `json:"failures" yaml:"failures"`
}

// InsertUpdateRelationalTable - rows that could not be inserted or updated
type InsertUpdateRelationalTable struct {
	Failures []RelationalTableFailure `json:"failures" yaml:"failures"`
}
