package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gaze-network/tzbot/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSource      = "tz1fyYJwgV1ozj6RyjtU1hLTBeoqQvQmRjVv"
	testDestination = "tz1Nhj1wHs7nzHSwdybxrYjpEQCTaEpWwu6w"
	testBranch      = "BM8hgE2Fmer4BP6xizFmeiVSSb3DjgomPw538TkPzMBrvqi93Ab"
)

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("1500", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), amount)

	amount, err = parseAmount("1.5", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), amount)

	_, err = parseAmount("1.5", false)
	assert.ErrorIs(t, err, errs.InvalidArgument)
	_, err = parseAmount("0.0000001", true)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestBuildCommand(t *testing.T) {
	cmd := NewBuildCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{testSource, testDestination, "0.000017", testBranch, "--tez", "--counter", "26146", "--gas-limit", "1521"})
	require.NoError(t, cmd.Execute())

	var envelope struct {
		Branch   string           `json:"branch"`
		Contents []map[string]any `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &envelope))
	assert.Equal(t, testBranch, envelope.Branch)
	require.Len(t, envelope.Contents, 1)
	assert.Equal(t, "transaction", envelope.Contents[0]["kind"])
	assert.Equal(t, "17", envelope.Contents[0]["amount"])
	assert.Equal(t, "26146", envelope.Contents[0]["counter"])
	assert.Equal(t, "1521", envelope.Contents[0]["gas_limit"])
	assert.NotContains(t, out.String(), "signature")
}

func TestBuildCommandInvalid(t *testing.T) {
	cmd := NewBuildCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--", testSource, testDestination, "-1", testBranch})
	assert.ErrorIs(t, cmd.Execute(), errs.InvalidArgument)
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--module", "tipbot"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "v0.1.0\n", out.String())

	cmd = NewVersionCommand()
	cmd.SetArgs([]string{"--module", "runes"})
	assert.ErrorIs(t, cmd.Execute(), errs.Unsupported)
}
