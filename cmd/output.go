package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/foomo/wca/pkg/xmlapi"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeOutput renders v as json or yaml
func writeOutput(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "json", "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal output")
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to marshal output")
		}
		return enc.Close()
	default:
		return errors.Errorf("unknown output format %q (supported: json, yaml)", format)
	}
}

// parseDate accepts RFC3339, the api request layout and plain dates
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, xmlapi.RequestDateLayout, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, errors.Errorf("invalid date %q, use RFC3339, %q or 2006-01-02", value, xmlapi.RequestDateLayout)
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}
