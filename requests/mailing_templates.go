package requests

import (
	"time"

	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/xmlapi"
)

// GetMailingTemplates - which templates to list
type GetMailingTemplates struct {
	Visibility Visibility `json:"visibility"`
	// optional, only templates modified at or after
	LastModifiedStartDate *time.Time `json:"lastModifiedStartDate,omitempty"`
	// optional, only templates modified at or before
	LastModifiedEndDate *time.Time `json:"lastModifiedEndDate,omitempty"`
	// only templates with crm blocks
	CRMEnabled bool `json:"crmEnabled,omitempty"`
}

func (o *GetMailingTemplates) Validate() error {
	if !o.Visibility.Valid() {
		return apierrors.Validationf(string(MethodGetMailingTemplates), "unknown visibility %d", int(o.Visibility))
	}
	return validateDateRange(MethodGetMailingTemplates, o.LastModifiedStartDate, o.LastModifiedEndDate)
}

func validateDateRange(method Method, start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return apierrors.Validationf(string(method),
			"start date must be before end date. start date: %s, end date: %s",
			start.Format(xmlapi.RequestDateLayout),
			end.Format(xmlapi.RequestDateLayout),
		)
	}
	return nil
}
