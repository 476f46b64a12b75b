package client

import (
	"context"
	"time"

	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/command"
	"github.com/foomo/wca/requests"
	"github.com/foomo/wca/responses"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

type (
	// Client runs the api commands over a single transport
	Client struct {
		l                           *zap.Logger
		jobStatusConcurrency        int
		getMailingTemplates         *command.GetMailingTemplates
		deleteRelationalTableData   *command.DeleteRelationalTableData
		insertUpdateRelationalTable *command.InsertUpdateRelationalTable
		exportTable                 *command.ExportTable
		getJobStatus                *command.GetJobStatus
	}
	Option func(*Client)
)

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

// WithJobStatusConcurrency limits the parallel calls of GetJobStatuses
func WithJobStatusConcurrency(v int) Option {
	return func(o *Client) {
		o.jobStatusConcurrency = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func New(l *zap.Logger, transport command.Transport, opts ...Option) *Client {
	inst := &Client{
		l:                           l.Named("client"),
		jobStatusConcurrency:        4,
		getMailingTemplates:         command.NewGetMailingTemplates(l, transport),
		deleteRelationalTableData:   command.NewDeleteRelationalTableData(l, transport),
		insertUpdateRelationalTable: command.NewInsertUpdateRelationalTable(l, transport),
		exportTable:                 command.NewExportTable(l, transport),
		getJobStatus:                command.NewGetJobStatus(l, transport),
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// NewHTTPClient returns a client posting to the xml api below endpoint
func NewHTTPClient(l *zap.Logger, endpoint string, tokenSource oauth2.TokenSource, opts ...HTTPTransportOption) (*Client, error) {
	transport, err := NewHTTPTransport(l, endpoint, tokenSource, opts...)
	if err != nil {
		return nil, err
	}
	return New(l, transport), nil
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (c *Client) GetMailingTemplates(ctx context.Context, o *requests.GetMailingTemplates) (*responses.GetMailingTemplates, error) {
	return c.getMailingTemplates.Execute(ctx, o)
}

func (c *Client) DeleteRelationalTableData(ctx context.Context, o *requests.DeleteRelationalTableData) (*responses.DeleteRelationalTableData, error) {
	return c.deleteRelationalTableData.Execute(ctx, o)
}

func (c *Client) InsertUpdateRelationalTable(ctx context.Context, o *requests.InsertUpdateRelationalTable) (*responses.InsertUpdateRelationalTable, error) {
	return c.insertUpdateRelationalTable.Execute(ctx, o)
}

func (c *Client) ExportTable(ctx context.Context, o *requests.ExportTable) (*responses.ExportTable, error) {
	return c.exportTable.Execute(ctx, o)
}

func (c *Client) GetJobStatus(ctx context.Context, o *requests.GetJobStatus) (*responses.GetJobStatus, error) {
	return c.getJobStatus.Execute(ctx, o)
}

// GetJobStatuses polls several jobs in parallel. Results keep the order of jobIDs;
// the first error cancels the remaining calls.
func (c *Client) GetJobStatuses(ctx context.Context, jobIDs []int64) ([]*responses.GetJobStatus, error) {
	ret := make([]*responses.GetJobStatus, len(jobIDs))
	g, gctx := errgroup.WithContext(ctx)
	if c.jobStatusConcurrency > 0 {
		g.SetLimit(c.jobStatusConcurrency)
	}
	for i, jobID := range jobIDs {
		g.Go(func() error {
			status, err := c.getJobStatus.Execute(gctx, &requests.GetJobStatus{JobID: jobID})
			if err != nil {
				return err
			}
			ret[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

// WaitForJob polls the job every interval until it reached a final status
func (c *Client) WaitForJob(ctx context.Context, jobID int64, interval time.Duration) (*responses.GetJobStatus, error) {
	if interval <= 0 {
		return nil, apierrors.Validationf(string(requests.MethodGetJobStatus), "poll interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, err := c.getJobStatus.Execute(ctx, &requests.GetJobStatus{JobID: jobID})
		if err != nil {
			return nil, err
		}
		if status.Status.Final() {
			return status, nil
		}
		c.l.Debug("waiting for job", zap.Int64("job", jobID), zap.String("status", string(status.Status)))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
