package requests

import (
	"github.com/foomo/wca/pkg/apierrors"
)

// GetJobStatus - which job to poll
type GetJobStatus struct {
	JobID int64 `json:"jobId"`
}

func (o *GetJobStatus) Validate() error {
	if o.JobID <= 0 {
		return apierrors.Validationf(string(MethodGetJobStatus), "job id is required")
	}
	return nil
}
