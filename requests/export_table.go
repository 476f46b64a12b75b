package requests

import (
	"strings"
	"time"

	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/pkg/errors"
)

// ExportFormat - file format of an export
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "CSV"
	ExportFormatTab  ExportFormat = "TAB"
	ExportFormatPipe ExportFormat = "PIPE"
)

// ParseExportFormat accepts any case
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", errors.Errorf("unknown export format %q", s)
	}
	return f, nil
}

func (f ExportFormat) Valid() bool {
	switch f {
	case ExportFormatCSV, ExportFormatTab, ExportFormatPipe:
		return true
	default:
		return false
	}
}

// ExportTable - export a relational table to the sftp area of the account
type ExportTable struct {
	// either TableID or TableName
	TableID   int64  `json:"tableId,omitempty"`
	TableName string `json:"tableName,omitempty"`
	// defaults to CSV
	Format ExportFormat `json:"format,omitempty"`
	// notify this address when the job is done
	Email string `json:"email,omitempty"`
	// keep the file in stored files
	AddToStoredFiles bool       `json:"addToStoredFiles,omitempty"`
	DateStart        *time.Time `json:"dateStart,omitempty"`
	DateEnd          *time.Time `json:"dateEnd,omitempty"`
}

func (o *ExportTable) Validate() error {
	method := string(MethodExportTable)
	switch {
	case o.TableID <= 0 && o.TableName == "":
		return apierrors.Validationf(method, "table id or table name is required")
	case o.TableID > 0 && o.TableName != "":
		return apierrors.Validationf(method, "only one of table id %d and table name %q may be set", o.TableID, o.TableName)
	case o.TableID < 0:
		return apierrors.Validationf(method, "invalid table id %d", o.TableID)
	}
	if err := xmlapi.CheckText(o.TableName); err != nil {
		return apierrors.Validationf(method, "table name: %v", err)
	}
	if err := xmlapi.CheckText(o.Email); err != nil {
		return apierrors.Validationf(method, "email: %v", err)
	}
	if o.Format != "" && !o.Format.Valid() {
		return apierrors.Validationf(method, "unknown export format %q", o.Format)
	}
	return validateDateRange(MethodExportTable, o.DateStart, o.DateEnd)
}

// ExportFormatOrDefault returns the format to send
func (o *ExportTable) ExportFormatOrDefault() ExportFormat {
	if o.Format == "" {
		return ExportFormatCSV
	}
	return o.Format
}
