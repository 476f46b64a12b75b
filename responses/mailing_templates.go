package responses

import (
	"time"

	"github.com/foomo/wca/requests"
)

// MailingTemplate - a template as listed by GetMailingTemplates
type MailingTemplate struct {
	MailingID        int64               `json:"mailingId" yaml:"mailingId"`
	MailingName      string              `json:"mailingName" yaml:"mailingName"`
	Subject          string              `json:"subject" yaml:"subject"`
	LastModified     time.Time           `json:"lastModified" yaml:"lastModified"`
	Visibility       requests.Visibility `json:"visibility" yaml:"visibility"`
	UserID           string              `json:"userId" yaml:"userId"`
	FlaggedForBackup bool                `json:"flaggedForBackup" yaml:"flaggedForBackup"`
	// nil when the api did not report it
	AllowCRMBlock *bool `json:"allowCrmBlock,omitempty" yaml:"allowCrmBlock,omitempty"`
}

// GetMailingTemplates - templates in the order the api returned them
type GetMailingTemplates struct {
	MailingTemplates []MailingTemplate `json:"mailingTemplates" yaml:"mailingTemplates"`
}
