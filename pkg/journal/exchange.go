package journal

import (
	"strings"
	"time"

	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/pkg/errors"
)

// Exchange is one request response pair sent to the api
type Exchange struct {
	ID         string        `json:"id" yaml:"id"`
	Method     string        `json:"method" yaml:"method"`
	Time       time.Time     `json:"time" yaml:"time"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	StatusCode int           `json:"statusCode" yaml:"statusCode"`
	Request    string        `json:"request" yaml:"request"`
	// empty when no response was received
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
}

// Key is the storage key of the exchange, sortable by time
func (e *Exchange) Key() string {
	method := e.Method
	if method == "" {
		method = "Unknown"
	}
	return KeyPrefix + e.Time.UTC().Format(keyTimeLayout) + "-" + method + "-" + e.ID + KeySuffix
}

// MarshalXML renders the exchange as a standalone document
func (e *Exchange) MarshalXML() ([]byte, error) {
	b := xmlapi.NewMethodBuilder("Exchange")
	root := b.Root()
	b.AddText(root, "ID", e.ID)
	b.AddText(root, "METHOD", e.Method)
	b.AddText(root, "TIME", e.Time.UTC().Format(time.RFC3339Nano))
	b.AddText(root, "DURATION", e.Duration.String())
	b.AddInt(root, "STATUS_CODE", int64(e.StatusCode))
	b.AddCData(root, "REQUEST", e.Request)
	if e.Response != "" {
		b.AddCData(root, "RESPONSE", e.Response)
	}
	xml, err := b.XML()
	if err != nil {
		return nil, err
	}
	return []byte(xml), nil
}

// UnmarshalExchange reads a document written by MarshalXML
func UnmarshalExchange(data []byte) (*Exchange, error) {
	doc, err := xmlapi.Parse(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root.Tag != "Exchange" {
		return nil, errors.Errorf("unexpected root element %q", root.Tag)
	}
	e := &Exchange{}
	if e.ID, err = xmlapi.Text(root, "ID"); err != nil {
		return nil, err
	}
	if e.Method, err = xmlapi.Text(root, "METHOD"); err != nil {
		return nil, err
	}
	if e.Time, err = xmlapi.Time(root, "TIME", time.RFC3339Nano); err != nil {
		return nil, err
	}
	duration, err := xmlapi.Text(root, "DURATION")
	if err != nil {
		return nil, err
	}
	if e.Duration, err = time.ParseDuration(strings.TrimSpace(duration)); err != nil {
		return nil, errors.Wrap(err, "invalid duration")
	}
	statusCode, err := xmlapi.Int64(root, "STATUS_CODE")
	if err != nil {
		return nil, err
	}
	e.StatusCode = int(statusCode)
	if e.Request, err = xmlapi.Text(root, "REQUEST"); err != nil {
		return nil, err
	}
	e.Response, _ = xmlapi.OptionalText(root, "RESPONSE")
	return e, nil
}
