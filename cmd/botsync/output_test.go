package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/botsync/internal/jobs"
	"github.com/GriffinCanCode/botsync/internal/shared/types"
)

func TestEncodeStatusJSON(t *testing.T) {
	status := jobs.Status{
		StatusCode: 200,
		Body:       []types.Target{{BotName: "Orders", BotID: "B1", AliasID: "A1"}},
	}

	data, err := encodeStatus(status, formatJSON)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"statusCode":200,"body":[{"BotName":"Orders","BotId":"B1","BotAliasId":"A1"}]}`,
		string(data))
	assert.True(t, bytes.HasSuffix(data, []byte("\n")))
}

func TestEncodeStatusYAML(t *testing.T) {
	status := jobs.Status{StatusCode: 200, Body: jobs.Body{Message: "done"}}

	data, err := encodeStatus(status, formatYAML)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "statusCode: 200")
	assert.Contains(t, out, "message: done")
}

func TestEncodeStatusUnknownFormat(t *testing.T) {
	_, err := encodeStatus(jobs.Status{StatusCode: 200}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestWriteStatus(t *testing.T) {
	var buf bytes.Buffer
	err := writeStatus(&buf, jobs.Status{StatusCode: 200, Body: []types.Target{}}, formatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200,"body":[]}`, buf.String())
}
