package client_test

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/foomo/wca/client"
	"github.com/foomo/wca/pkg/apierrors"
	"github.com/foomo/wca/pkg/auth"
	"github.com/foomo/wca/pkg/journal"
	"github.com/foomo/wca/pkg/xmlapi"
	"github.com/foomo/wca/requests"
	"github.com/foomo/wca/responses"
	"github.com/foomo/wca/testing/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, opts ...client.HTTPTransportOption) (*server.Server, *client.Client) {
	t.Helper()
	l := zaptest.NewLogger(t)
	s := server.New(l)
	t.Cleanup(s.Close)

	ts, err := auth.NewTokenSource(context.Background(), s.Client(), auth.Credentials{
		Endpoint:     s.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "refresh",
	})
	require.NoError(t, err)

	opts = append([]client.HTTPTransportOption{client.HTTPTransportWithHTTPClient(s.Client())}, opts...)
	c, err := client.NewHTTPClient(l, s.URL, ts, opts...)
	require.NoError(t, err)
	return s, c
}

func jobStatusHandler(statuses map[int64]string) server.Handler {
	return func(method *etree.Element) (int, string) {
		jobID, err := xmlapi.Int64(method, "JOB_ID")
		if err != nil {
			return http.StatusBadRequest, err.Error()
		}
		status, ok := statuses[jobID]
		if !ok {
			return http.StatusOK, server.Envelope(`<RESULT><SUCCESS>false</SUCCESS></RESULT>` +
				`<Fault><FaultCode/><FaultString>Invalid job</FaultString><detail><error><errorid>123</errorid></error></detail></Fault>`)
		}
		return http.StatusOK, server.Envelope(fmt.Sprintf(
			`<RESULT><SUCCESS>TRUE</SUCCESS><JOB_ID>%d</JOB_ID><JOB_STATUS>%s</JOB_STATUS></RESULT>`, jobID, status,
		))
	}
}

func TestInvalidHTTPClientInit(t *testing.T) {
	l := zaptest.NewLogger(t)
	ts := auth.StaticTokenSource("token")
	for _, endpoint := range []string{"", "bogus", "htt:/notaurl", "htts://notaurl", "/path/segment/only"} {
		c, err := client.NewHTTPClient(l, endpoint, ts)
		assert.Nil(t, c, endpoint)
		assert.Error(t, err, endpoint)
	}

	c, err := client.NewHTTPClient(l, "https://api-campaign-us-1.goacoustic.com", nil)
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestClientGetMailingTemplates(t *testing.T) {
	s, c := newTestClient(t)
	s.Result("GetMailingTemplates", `<MAILING_TEMPLATE>
		<MAILING_ID>9876</MAILING_ID>
		<MAILING_NAME>Welcome</MAILING_NAME>
		<SUBJECT>Hello</SUBJECT>
		<LAST_MODIFIED>4/24/14 3:37 PM</LAST_MODIFIED>
		<VISIBILITY>Shared</VISIBILITY>
		<USER_ID>ab12</USER_ID>
		<FLAGGED_FOR_BACKUP>false</FLAGGED_FOR_BACKUP>
	</MAILING_TEMPLATE>`)

	for i := 0; i < 2; i++ {
		response, err := c.GetMailingTemplates(context.Background(), &requests.GetMailingTemplates{Visibility: requests.VisibilityShared})
		require.NoError(t, err)
		require.Len(t, response.MailingTemplates, 1)
		assert.Equal(t, "Welcome", response.MailingTemplates[0].MailingName)
	}

	// token is cached
	assert.Equal(t, 1, s.TokenCalls())

	received := s.Requests()
	require.Len(t, received, 2)
	assert.Equal(t, "GetMailingTemplates", received[0].Method)
	assert.Equal(t, "Bearer "+server.AccessToken, received[0].Authorization)
	assert.Equal(t, "text/xml;charset=UTF-8", received[0].ContentType)
	assert.Contains(t, received[0].Body, "<Envelope><Body><GetMailingTemplates><VISIBILITY>1</VISIBILITY></GetMailingTemplates></Body></Envelope>")
}

func TestClientRelationalTables(t *testing.T) {
	s, c := newTestClient(t)
	s.Result("InsertUpdateRelationalTable", `<FAILURES>
		<FAILURE failure_type="permanent" description="Invalid date">
			<COLUMN name="Record Id"><![CDATA[1]]></COLUMN>
			<COLUMN name="Purchase Date"><![CDATA[tomorrow]]></COLUMN>
		</FAILURE>
	</FAILURES>`)
	s.Result("DeleteRelationalTableData", ``)

	ctx := context.Background()
	rows := []requests.Row{{{Name: "Record Id", Value: "1"}, {Name: "Purchase Date", Value: "tomorrow"}}}

	inserted, err := c.InsertUpdateRelationalTable(ctx, &requests.InsertUpdateRelationalTable{TableID: 42, Rows: rows})
	require.NoError(t, err)
	require.Len(t, inserted.Failures, 1)
	assert.Equal(t, rows[0], requests.Row(inserted.Failures[0].Columns))

	deleted, err := c.DeleteRelationalTableData(ctx, &requests.DeleteRelationalTableData{TableID: 42, Rows: rows[:1]})
	require.NoError(t, err)
	assert.Empty(t, deleted.Failures)
}

func TestClientRejectsIllegalCharacters(t *testing.T) {
	s, c := newTestClient(t)
	s.Result("InsertUpdateRelationalTable", ``)

	for _, value := range []string{"a\x01b", "a\xffb"} {
		_, err := c.InsertUpdateRelationalTable(context.Background(), &requests.InsertUpdateRelationalTable{
			TableID: 42,
			Rows:    []requests.Row{{{Name: "Record Id", Value: value}}},
		})
		require.Error(t, err, value)
		assert.Equal(t, apierrors.KindValidation, apierrors.KindOf(err), value)
	}
	assert.Empty(t, s.Requests())
}

func TestClientExportTableAndWait(t *testing.T) {
	s, c := newTestClient(t)
	s.Result("ExportTable", `<JOB_ID>72649</JOB_ID><FILE_PATH>/download/Purchases.CSV</FILE_PATH>`)

	var polls int32
	s.Handle("GetJobStatus", func(method *etree.Element) (int, string) {
		status := "RUNNING"
		if atomic.AddInt32(&polls, 1) >= 3 {
			status = "COMPLETE"
		}
		return http.StatusOK, server.Envelope(`<RESULT><SUCCESS>TRUE</SUCCESS><JOB_ID>72649</JOB_ID><JOB_STATUS>` + status + `</JOB_STATUS></RESULT>`)
	})

	ctx := context.Background()
	export, err := c.ExportTable(ctx, &requests.ExportTable{TableName: "Purchases"})
	require.NoError(t, err)
	assert.Equal(t, int64(72649), export.JobID)

	status, err := c.WaitForJob(ctx, export.JobID, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, responses.JobStatusComplete, status.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))

	_, err = c.WaitForJob(ctx, export.JobID, 0)
	assert.True(t, apierrors.Is(err, apierrors.KindValidation))
}

func TestClientWaitForJobCanceled(t *testing.T) {
	s, c := newTestClient(t)
	s.Handle("GetJobStatus", jobStatusHandler(map[int64]string{1: "WAITING"}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.WaitForJob(ctx, 1, 10*time.Millisecond)
	require.Error(t, err)
}

func TestClientGetJobStatuses(t *testing.T) {
	s, c := newTestClient(t)
	s.Handle("GetJobStatus", jobStatusHandler(map[int64]string{
		1: "WAITING",
		2: "RUNNING",
		3: "COMPLETE",
		4: "ERROR",
		5: "CANCELED",
	}))

	statuses, err := c.GetJobStatuses(context.Background(), []int64{5, 3, 1, 4, 2})
	require.NoError(t, err)
	require.Len(t, statuses, 5)
	var got []responses.JobStatus
	for i, status := range statuses {
		assert.Equal(t, []int64{5, 3, 1, 4, 2}[i], status.JobID)
		got = append(got, status.Status)
	}
	assert.Equal(t, []responses.JobStatus{
		responses.JobStatusCanceled,
		responses.JobStatusComplete,
		responses.JobStatusWaiting,
		responses.JobStatusError,
		responses.JobStatusRunning,
	}, got)

	_, err = c.GetJobStatuses(context.Background(), []int64{1, 99})
	require.Error(t, err)
	assert.True(t, apierrors.Is(err, apierrors.KindFault))

	empty, err := c.GetJobStatuses(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClientJournal(t *testing.T) {
	j, err := journal.New(zaptest.NewLogger(t), journal.JournalWithDir(t.TempDir()))
	require.NoError(t, err)
	defer j.Close()

	s, c := newTestClient(t, client.HTTPTransportWithJournal(j))
	s.Handle("GetJobStatus", jobStatusHandler(map[int64]string{7: "COMPLETE"}))

	ctx := context.Background()
	_, err = c.GetJobStatus(ctx, &requests.GetJobStatus{JobID: 7})
	require.NoError(t, err)
	_, err = c.GetJobStatus(ctx, &requests.GetJobStatus{JobID: 8})
	require.Error(t, err)

	keys, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	for _, key := range keys {
		e, err := j.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "GetJobStatus", e.Method)
		assert.Equal(t, http.StatusOK, e.StatusCode)
		assert.Contains(t, e.Request, "<Envelope><Body><GetJobStatus>")
		assert.Contains(t, e.Response, "<RESULT>")
	}
}
