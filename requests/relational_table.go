package requests

import (
	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/xmlapi"
)

// Column - a named value of a relational table row
type Column struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Row - ordered columns of a relational table row
type Row []Column

// DeleteRelationalTableData - delete rows identified by their key columns
type DeleteRelationalTableData struct {
	TableID int64 `json:"tableId"`
	// every row holds the key columns of one record
	Rows []Row `json:"rows"`
}

func (o *DeleteRelationalTableData) Validate() error {
	return validateRows(MethodDeleteRelationalTableData, o.TableID, o.Rows)
}

// InsertUpdateRelationalTable - insert rows or update them when their key columns match
type InsertUpdateRelationalTable struct {
	TableID int64 `json:"tableId"`
	Rows    []Row `json:"rows"`
}

func (o *InsertUpdateRelationalTable) Validate() error {
	return validateRows(MethodInsertUpdateRelationalTable, o.TableID, o.Rows)
}

func validateRows(method Method, tableID int64, rows []Row) error {
	if tableID <= 0 {
		return apierrors.Validationf(string(method), "table id is required")
	}
	if len(rows) == 0 {
		return apierrors.Validationf(string(method), "you must provide rows")
	}
	for i, row := range rows {
		if len(row) == 0 {
			return apierrors.Validationf(string(method), "row %d can not be empty", i)
		}
		for j, column := range row {
			if column.Name == "" {
				return apierrors.Validationf(string(method), "row %d column %d has no name", i, j)
			}
			if err := xmlapi.CheckText(column.Name); err != nil {
				return apierrors.Validationf(string(method), "row %d column %d name: %v", i, j, err)
			}
			if err := xmlapi.CheckText(column.Value); err != nil {
				return apierrors.Validationf(string(method), "row %d column %q value: %v", i, column.Name, err)
			}
		}
	}
	return nil
}
