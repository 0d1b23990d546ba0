package operation

import (
	"encoding/json"
	"strconv"
	"sync"
	"testing"

	"github.com/gaze-network/tzbot/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pkh1      = "tz1fyYJwgV1ozj6RyjtU1hLTBeoqQvQmRjVv"
	pkh2      = "tz1Nhj1wHs7nzHSwdybxrYjpEQCTaEpWwu6w"
	branch    = "BM8hgE2Fmer4BP6xizFmeiVSSb3DjgomPw538TkPzMBrvqi93Ab"
	fakeSig   = "edsigtXomBKi5CTRf5cjATJWSyaRvhfYNHqSUGrn4SdbYRcGwQrUGjzEfQDTuqHhuA8b2d8NarZjz8TRf65WkpQmo423BtomS8Q"
	protocol  = "PtParisBxoLz5gzMmn3d9WBQNoPSZakgnkMC2VNuQ3KXfUtUQeZ"
	counter   = 26146
	tipAmount = 42
)

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestMakeTransactionOperation(t *testing.T) {
	data, err := MakeTransactionOperation(pkh1, pkh2, tipAmount, branch, WithCounter(counter), WithSignature(fakeSig))
	require.NoError(t, err)

	op := decode(t, data)
	assert.Equal(t, branch, op["branch"])
	assert.Equal(t, fakeSig, op["signature"])
	assert.NotContains(t, op, "protocol")

	contents, ok := op["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)

	content := contents[0].(map[string]any)
	assert.Equal(t, "transaction", content["kind"])
	assert.Equal(t, pkh1, content["source"])
	assert.Equal(t, pkh2, content["destination"])
	assert.Equal(t, "26146", content["counter"])
	assert.Equal(t, "42", content["amount"])
}

func TestBuildDefaults(t *testing.T) {
	envelope, err := Build(pkh1, pkh2, tipAmount, branch)
	require.NoError(t, err)

	tx := envelope.Transaction()
	assert.Equal(t, Int(DefaultCounter), tx.Counter)
	assert.Equal(t, Int(DefaultFee), tx.Fee)
	assert.Equal(t, Int(DefaultGasLimit), tx.GasLimit)
	assert.Equal(t, Int(DefaultStorageLimit), tx.StorageLimit)
	assert.False(t, envelope.IsSigned())

	data, err := Marshal(envelope)
	require.NoError(t, err)
	op := decode(t, data)
	assert.NotContains(t, op, "signature")
	assert.NotContains(t, op, "protocol")
}

func TestBuildOptions(t *testing.T) {
	envelope, err := Build(pkh1, pkh2, 17, branch,
		WithCounter(counter),
		WithFee(1420),
		WithGasLimit(1101),
		WithStorageLimit(257),
		WithProtocol(protocol),
		WithSignature(fakeSig),
	)
	require.NoError(t, err)

	data, err := Marshal(envelope)
	require.NoError(t, err)
	op := decode(t, data)
	assert.Equal(t, protocol, op["protocol"])
	assert.Equal(t, fakeSig, op["signature"])

	content := op["contents"].([]any)[0].(map[string]any)
	expected := map[string]int64{
		"amount":        17,
		"fee":           1420,
		"counter":       counter,
		"gas_limit":     1101,
		"storage_limit": 257,
	}
	for field, value := range expected {
		raw, ok := content[field].(string)
		require.Truef(t, ok, "%s must be encoded as a string, got %T", field, content[field])
		parsed, err := strconv.ParseInt(raw, 10, 64)
		require.NoError(t, err)
		assert.Equal(t, value, parsed, field)
	}
}

func TestBuildInvalidArgument(t *testing.T) {
	testCases := []struct {
		name        string
		source      string
		destination string
		amount      int64
		branch      string
	}{
		{name: "negative amount", source: pkh1, destination: pkh2, amount: -1, branch: branch},
		{name: "empty source", source: "", destination: pkh2, amount: 1, branch: branch},
		{name: "empty destination", source: pkh1, destination: "", amount: 1, branch: branch},
		{name: "empty branch", source: pkh1, destination: pkh2, amount: 1, branch: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			envelope, err := Build(tc.source, tc.destination, tc.amount, tc.branch)
			assert.ErrorIs(t, err, errs.InvalidArgument)
			assert.Empty(t, envelope.Contents)

			data, err := MakeTransactionOperation(tc.source, tc.destination, tc.amount, tc.branch)
			assert.ErrorIs(t, err, errs.InvalidArgument)
			assert.Nil(t, data)
		})
	}
}

func TestBuildZeroAmount(t *testing.T) {
	data, err := MakeTransactionOperation(pkh1, pkh2, 0, branch)
	require.NoError(t, err)
	content := decode(t, data)["contents"].([]any)[0].(map[string]any)
	assert.Equal(t, "0", content["amount"])
}

func TestBuildDeterministic(t *testing.T) {
	opts := []Option{WithCounter(counter), WithSignature(fakeSig), WithFee(100)}
	first, err := MakeTransactionOperation(pkh1, pkh2, tipAmount, branch, opts...)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = MakeTransactionOperation(pkh1, pkh2, tipAmount, branch, opts...)
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, first, result)
	}
}

func TestEnvelopeWithSignatureCopies(t *testing.T) {
	unsigned, err := Build(pkh1, pkh2, tipAmount, branch, WithCounter(counter))
	require.NoError(t, err)

	signed := unsigned.WithSignature(fakeSig).WithProtocol(protocol)
	signed.Contents[0].Fee = 99

	assert.Empty(t, unsigned.Signature)
	assert.Empty(t, unsigned.Protocol)
	assert.Equal(t, Int(DefaultFee), unsigned.Transaction().Fee)
	assert.Equal(t, fakeSig, signed.Signature)
	assert.Equal(t, protocol, signed.Protocol)

	rebuilt, err := Build(pkh1, pkh2, tipAmount, branch, WithCounter(counter), WithSignature(fakeSig), WithProtocol(protocol))
	require.NoError(t, err)
	rebuilt.Contents[0].Fee = 99
	assert.Equal(t, rebuilt, signed)
}
