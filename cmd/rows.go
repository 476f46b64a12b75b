package cmd

import (
	"github.com/foomo/wca/requests"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// parseRows reads a yaml sequence of mappings, keeping the column order of every mapping:
//
//	[{Record Id: GHbjh73643hsdiy, Purchase Date: 01/09/1975}]
func parseRows(data []byte) ([]requests.Row, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse rows")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("rows file is empty")
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, errors.Errorf("line %d: rows must be a sequence", seq.Line)
	}
	rows := make([]requests.Row, 0, len(seq.Content))
	for _, mapping := range seq.Content {
		if mapping.Kind != yaml.MappingNode {
			return nil, errors.Errorf("line %d: a row must be a mapping of column names to values", mapping.Line)
		}
		row := make(requests.Row, 0, len(mapping.Content)/2)
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			key, value := mapping.Content[i], mapping.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return nil, errors.Errorf("line %d: column %q must hold a scalar", value.Line, key.Value)
			}
			row = append(row, requests.Column{Name: key.Value, Value: value.Value})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
