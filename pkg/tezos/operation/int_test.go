package operation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntMarshalJSON(t *testing.T) {
	test := func(value Int, encoded string) {
		t.Run(encoded, func(t *testing.T) {
			t.Parallel()
			data, err := json.Marshal(value)
			require.NoError(t, err)
			assert.Equal(t, encoded, string(data))

			var decoded Int
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, value, decoded)
		})
	}

	test(0, `"0"`)
	test(42, `"42"`)
	test(-7, `"-7"`)
	test(math.MaxInt64, `"9223372036854775807"`)
}

func TestIntUnmarshalJSON(t *testing.T) {
	var v Int
	require.NoError(t, json.Unmarshal([]byte(`1101`), &v))
	assert.Equal(t, Int(1101), v)

	assert.Error(t, json.Unmarshal([]byte(`"12a"`), &v))
	assert.Error(t, json.Unmarshal([]byte(`"9223372036854775808"`), &v))
}

func TestTransactionContentNumbersAreStrings(t *testing.T) {
	data, err := json.Marshal(TransactionContent{Kind: KindTransaction, Amount: 1, Fee: 2, Counter: 3, GasLimit: 4, StorageLimit: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "transaction",
		"source": "",
		"destination": "",
		"amount": "1",
		"fee": "2",
		"counter": "3",
		"gas_limit": "4",
		"storage_limit": "5"
	}`, string(data))
}
