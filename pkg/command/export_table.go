package command

import (
	"context"

	"github.com/beevik/etree"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/requests"
	"github.com/foomo/wca/responses"
	"go.uber.org/zap"
)

type ExportTable struct {
	command
}

func NewExportTable(l *zap.Logger, transport Transport) *ExportTable {
	return &ExportTable{
		command: newCommand(l, requests.MethodExportTable, transport),
	}
}

func (c *ExportTable) Execute(ctx context.Context, o *requests.ExportTable) (*responses.ExportTable, error) {
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

func (c *ExportTable) Build(o *requests.ExportTable) (*xmlapi.Builder, error) {
	if o == nil {
		return nil, c.nilOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	b, root := c.newBuilder()
	if o.TableID > 0 {
		b.AddInt(root, "TABLE_ID", o.TableID)
	} else {
		b.AddText(root, "TABLE_NAME", o.TableName)
	}
	b.AddText(root, "EXPORT_FORMAT", string(o.ExportFormatOrDefault()))
	if o.Email != "" {
		b.AddText(root, "EMAIL", o.Email)
	}
	if o.AddToStoredFiles {
		b.AddFlag(root, "ADD_TO_STORED_FILES")
	}
	if o.DateStart != nil {
		b.AddTime(root, "DATE_START", *o.DateStart)
	}
	if o.DateEnd != nil {
		b.AddTime(root, "DATE_END", *o.DateEnd)
	}
	return b, nil
}

func (c *ExportTable) Map(result *etree.Element) (*responses.ExportTable, error) {
	jobID, err := xmlapi.Int64(result, "JOB_ID")
	if err != nil {
		return nil, c.mappingError(err)
	}
	filePath, err := xmlapi.Text(result, "FILE_PATH")
	if err != nil {
		return nil, c.mappingError(err)
	}
	c.l.Info("export started", zap.Int64("job", jobID), zap.String("path", filePath))
	return &responses.ExportTable{JobID: jobID, FilePath: filePath}, nil
}
