package command

import (
	"context"

	"github.com/beevik/etree"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/requests"
	"github.com/foomo/wca/responses"
	"go.uber.org/zap"
)

type GetJobStatus struct {
	command
}

func NewGetJobStatus(l *zap.Logger, transport Transport) *GetJobStatus {
	return &GetJobStatus{
		command: newCommand(l, requests.MethodGetJobStatus, transport),
	}
}

func (c *GetJobStatus) Execute(ctx context.Context, o *requests.GetJobStatus) (*responses.GetJobStatus, error) {
	b, err := c.Build(o)
	if err != nil {
		return nil, err
	}
	result, err := c.submit(ctx, b)
	if err != nil {
		return nil, err
	}
	return c.Map(result)
}

func (c *GetJobStatus) Build(o *requests.GetJobStatus) (*xmlapi.Builder, error) {
	if o == nil {
		return nil, c.nilOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	b, root := c.newBuilder()
	b.AddInt(root, "JOB_ID", o.JobID)
	return b, nil
}

func (c *GetJobStatus) Map(result *etree.Element) (*responses.GetJobStatus, error) {
	response, err := mapJobStatus(result)
	if err != nil {
		return nil, c.mappingError(err)
	}
	return response, nil
}

func mapJobStatus(result *etree.Element) (*responses.GetJobStatus, error) {
	jobID, err := xmlapi.Int64(result, "JOB_ID")
	if err != nil {
		return nil, err
	}
	status, err := xmlapi.Text(result, "JOB_STATUS")
	if err != nil {
		return nil, err
	}
	response := &responses.GetJobStatus{JobID: jobID}
	if response.Status, err = responses.ParseJobStatus(status); err != nil {
		return nil, err
	}
	response.Description, _ = xmlapi.OptionalText(result, "JOB_DESCRIPTION")
	for _, node := range xmlapi.FindAll(result, "PARAMETERS/PARAMETER") {
		name, err := xmlapi.Text(node, "NAME")
		if err != nil {
			return nil, err
		}
		value, err := xmlapi.Text(node, "VALUE")
		if err != nil {
			return nil, err
		}
		response.Parameters = append(response.Parameters, responses.JobParameter{Name: name, Value: value})
	}
	return response, nil
}
