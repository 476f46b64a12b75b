package cmd

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/requests"
	"github.com/foomo/wca/responses"
	"github.com/foomo/wca/testing/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseRows(t *testing.T) {
	rows, err := parseRows([]byte(`
- Record Id: GHbjh73643hsdiy
  Purchase Date: 01/09/1975
  Amount: 12
- Record Id: abc
`))
	require.NoError(t, err)
	assert.Equal(t, []requests.Row{
		{{Name: "Record Id", Value: "GHbjh73643hsdiy"}, {Name: "Purchase Date", Value: "01/09/1975"}, {Name: "Amount", Value: "12"}},
		{{Name: "Record Id", Value: "abc"}},
	}, rows)

	for _, invalid := range []string{"", "a: b", "- a\n- b", "- a: [1, 2]", "- a: {b: c}", "[:"} {
		_, err := parseRows([]byte(invalid))
		assert.Error(t, err, invalid)
	}
}

func TestWriteOutput(t *testing.T) {
	allow := true
	response := &responses.GetMailingTemplates{MailingTemplates: []responses.MailingTemplate{{
		MailingID:     1,
		MailingName:   "Welcome",
		LastModified:  time.Date(2014, time.April, 24, 15, 37, 0, 0, time.UTC),
		Visibility:    requests.VisibilityShared,
		AllowCRMBlock: &allow,
	}}}

	var out bytes.Buffer
	require.NoError(t, writeOutput(&out, "json", response))
	assert.Contains(t, out.String(), `"visibility": "Shared"`)
	assert.Contains(t, out.String(), `"lastModified": "2014-04-24T15:37:00Z"`)
	assert.Contains(t, out.String(), `"allowCrmBlock": true`)

	out.Reset()
	require.NoError(t, writeOutput(&out, "yaml", map[string]interface{}{"visibility": requests.VisibilityShared}))
	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Shared", decoded["visibility"])

	assert.Error(t, writeOutput(&out, "xml", response))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDate("2024-03-07T14:05:09Z")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, time.March, 7, 14, 5, 9, 0, time.UTC)))

	d, err = parseDate("03/07/2024 14:05:09")
	require.NoError(t, err)
	assert.Equal(t, "03/07/2024 14:05:09", d.Format(xmlapi.RequestDateLayout))

	d, err = parseDate("2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, 7, d.Day())

	_, err = parseDate("yesterday")
	assert.Error(t, err)
}

func TestParseJobIDs(t *testing.T) {
	ids, err := parseJobIDs([]string{"1", "789052"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 789052}, ids)

	_, err = parseJobIDs([]string{"x"})
	assert.Error(t, err)
}

func TestIsValidBlobScheme(t *testing.T) {
	assert.True(t, isValidBlobScheme("gs://bucket"))
	assert.True(t, isValidBlobScheme("s3://bucket?region=eu-central-1"))
	assert.True(t, isValidBlobScheme("azblob://container"))
	assert.False(t, isValidBlobScheme("file:///tmp"))
}

func TestCreateStorage(t *testing.T) {
	l := zaptest.NewLogger(t)
	ctx := context.Background()

	v := newViper()
	addJournalFlags(NewJournalCommand().Flags(), v)
	v.Set("journal.dir", t.TempDir())
	storage, err := createStorage(ctx, v, l)
	require.NoError(t, err)
	require.NoError(t, storage.Write(ctx, "key", []byte("value")))

	v.Set("journal.storage_type", "blob")
	_, err = createStorage(ctx, v, l)
	assert.Error(t, err, "bucket is required")

	v.Set("journal.blob.bucket", "file:///tmp")
	_, err = createStorage(ctx, v, l)
	assert.Error(t, err, "scheme is not supported")

	v.Set("journal.storage_type", "ftp")
	_, err = createStorage(ctx, v, l)
	assert.Error(t, err)
}

func TestGetJobStatusCommand(t *testing.T) {
	s := server.New(zaptest.NewLogger(t))
	defer s.Close()
	s.Handle("GetJobStatus", func(method *etree.Element) (int, string) {
		jobID, _ := xmlapi.Text(method, "JOB_ID")
		return http.StatusOK, server.Envelope(`<RESULT><SUCCESS>TRUE</SUCCESS><JOB_ID>` + jobID + `</JOB_ID><JOB_STATUS>COMPLETE</JOB_STATUS></RESULT>`)
	})

	out, err := runCommand(t, "", "get-job-status", "12", "--endpoint", s.URL, "--access-token", server.AccessToken)
	require.NoError(t, err)
	status := &responses.GetJobStatus{}
	require.NoError(t, json.Unmarshal([]byte(out), status))
	assert.Equal(t, int64(12), status.JobID)
	assert.Equal(t, responses.JobStatusComplete, status.Status)

	out, err = runCommand(t, "", "get-job-status", "12", "13", "--endpoint", s.URL, "--access-token", server.AccessToken, "-o", "yaml")
	require.NoError(t, err)
	var statuses []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 2)
	assert.Equal(t, 13, statuses[1]["jobId"])
}

func TestMetricsTextfile(t *testing.T) {
	s := server.New(zaptest.NewLogger(t))
	defer s.Close()
	s.Result("GetJobStatus", `<JOB_ID>5</JOB_ID><JOB_STATUS>RUNNING</JOB_STATUS>`)

	filename := filepath.Join(t.TempDir(), "wca.prom")
	_, err := runCommand(t, "", "get-job-status", "5",
		"--endpoint", s.URL, "--access-token", server.AccessToken,
		"--metrics-textfile", filename,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `wca_request_count{method="GetJobStatus",status="success"}`)
}

func TestInsertUpdateRelationalTableCommand(t *testing.T) {
	s := server.New(zaptest.NewLogger(t))
	defer s.Close()
	s.Result("InsertUpdateRelationalTable", "")

	_, err := runCommand(t, "- Record Id: 1\n  Note: hi\n",
		"insert-update-relational-table", "--table-id", "42",
		"--endpoint", s.URL, "--access-token", server.AccessToken,
	)
	require.NoError(t, err)

	received := s.Requests()
	require.Len(t, received, 1)
	assert.Contains(t, received[0].Body, `<ROWS><ROW><COLUMN name="Record Id"><![CDATA[1]]></COLUMN><COLUMN name="Note"><![CDATA[hi]]></COLUMN></ROW></ROWS>`)
}

func TestCommandValidation(t *testing.T) {
	_, err := runCommand(t, "", "export-table", "--endpoint", "https://example.com", "--access-token", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table id or table name is required")

	_, err = runCommand(t, "", "get-mailing-templates", "--visibility", "Public", "--endpoint", "https://example.com", "--access-token", "x")
	assert.Error(t, err)
}
