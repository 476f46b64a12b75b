package responses_test

import (
	"testing"

	"github.com/foomo/wca/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobStatus(t *testing.T) {
	s, err := responses.ParseJobStatus("complete")
	require.NoError(t, err)
	assert.Equal(t, responses.JobStatusComplete, s)
	assert.True(t, s.Final())

	s, err = responses.ParseJobStatus("RUNNING")
	require.NoError(t, err)
	assert.False(t, s.Final())

	_, err = responses.ParseJobStatus("PAUSED")
	assert.Error(t, err)
}

func TestFaultError(t *testing.T) {
	f := &responses.Fault{Code: "Client", Message: "Invalid table id", ErrorID: "145"}
	assert.Equal(t, `code:"Client", errorId:"145", message:"Invalid table id"`, f.Error())
	assert.Equal(t, `code:"", message:"x"`, (&responses.Fault{Message: "x"}).Error())
}
