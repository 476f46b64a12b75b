package command

import (
	"context"

	"github.com/beevik/etree"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/requests"
	"github.com/foomo/wca/responses"
	"go.uber.org/zap"
)

type DeleteRelationalTableData struct {
	command
}

func NewDeleteRelationalTableData(l *zap.Logger, transport Transport) *DeleteRelationalTableData {
	return &DeleteRelationalTableData{
		command: newCommand(l, requests.MethodDeleteRelationalTableData, transport),
	}
}

func (c *DeleteRelationalTableData) Execute(ctx context.Context, o *requests.DeleteRelationalTableData) (*responses.DeleteRelationalTableData, error) {
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

// Build validates o and renders the request document; rows carry their columns as KEY_COLUMN
func (c *DeleteRelationalTableData) Build(o *requests.DeleteRelationalTableData) (*xmlapi.Builder, error) {
	if o == nil {
		return nil, c.nilOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	b, root := c.newBuilder()
	b.AddInt(root, "TABLE_ID", o.TableID)
	addRows(b, root, "KEY_COLUMN", o.Rows)
	return b, nil
}

func (c *DeleteRelationalTableData) Map(result *etree.Element) (*responses.DeleteRelationalTableData, error) {
	failures, err := mapFailures(result)
	if err != nil {
		return nil, c.mappingError(err)
	}
	if len(failures) > 0 {
		c.l.Info("rows could not be deleted", zap.Int("failures", len(failures)))
	}
	return &responses.DeleteRelationalTableData{Failures: failures}, nil
}

type InsertUpdateRelationalTable struct {
	command
}

func NewInsertUpdateRelationalTable(l *zap.Logger, transport Transport) *InsertUpdateRelationalTable {
	return &InsertUpdateRelationalTable{
		command: newCommand(l, requests.MethodInsertUpdateRelationalTable, transport),
	}
}

func (c *InsertUpdateRelationalTable) Execute(ctx context.Context, o *requests.InsertUpdateRelationalTable) (*responses.InsertUpdateRelationalTable, error) {
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

// Build validates o and renders the request document
func (c *InsertUpdateRelationalTable) Build(o *requests.InsertUpdateRelationalTable) (*xmlapi.Builder, error) {
	if o == nil {
		return nil, c.nilOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	b, root := c.newBuilder()
	b.AddInt(root, "TABLE_ID", o.TableID)
	addRows(b, root, "COLUMN", o.Rows)
	return b, nil
}

func (c *InsertUpdateRelationalTable) Map(result *etree.Element) (*responses.InsertUpdateRelationalTable, error) {
	failures, err := mapFailures(result)
	if err != nil {
		return nil, c.mappingError(err)
	}
	if len(failures) > 0 {
		c.l.Info("rows could not be inserted or updated", zap.Int("failures", len(failures)))
	}
	return &responses.InsertUpdateRelationalTable{Failures: failures}, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func addRows(b *xmlapi.Builder, root *etree.Element, columnElement string, rows []requests.Row) {
	rowsElement := b.Add(root, "ROWS")
	for _, row := range rows {
		rowElement := b.Add(rowsElement, "ROW")
		for _, column := range row {
			b.AddCData(rowElement, columnElement, column.Value).CreateAttr("name", column.Name)
		}
	}
}

func mapFailures(result *etree.Element) ([]responses.RelationalTableFailure, error) {
	nodes := xmlapi.FindAll(result, "FAILURES/FAILURE")
	failures := make([]responses.RelationalTableFailure, 0, len(nodes))
	for _, node := range nodes {
		failureType, err := xmlapi.Attr(node, "failure_type")
		if err != nil {
			return nil, err
		}
		description, err := xmlapi.Attr(node, "description")
		if err != nil {
			return nil, err
		}
		columnNodes := xmlapi.FindAll(node, "COLUMN")
		columns := make([]requests.Column, 0, len(columnNodes))
		for _, columnNode := range columnNodes {
			name, err := xmlapi.Attr(columnNode, "name")
			if err != nil {
				return nil, err
			}
			columns = append(columns, requests.Column{Name: name, Value: columnNode.Text()})
		}
		failures = append(failures, responses.RelationalTableFailure{
			FailureType: failureType,
			Description: description,
			Columns:     columns,
		})
	}
	return failures, nil
}
