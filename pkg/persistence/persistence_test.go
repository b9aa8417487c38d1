package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHash(t *testing.T) {
	lower := "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "already canonical", input: lower, want: lower},
		{name: "mixed case", input: "0x5C504ED432CB51138BCF09AA5E8A410DD4A1E204EF84BFED1BE16DFBA1B22060", want: lower},
		{name: "missing prefix", input: lower[2:], want: lower},
		{name: "too short", input: "0x1234", wantErr: true},
		{name: "not hex", input: "0x" + "zz" + lower[4:], wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHash(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupKey(t *testing.T) {
	lower := "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"

	key, err := LookupKey(lower[2:])
	require.NoError(t, err)
	assert.Equal(t, lower, key)

	key, err = LookupKey(" 0xABCD ")
	require.NoError(t, err)
	assert.Equal(t, "0xabcd", key)

	_, err = LookupKey("")
	require.Error(t, err)
	_, err = LookupKey("0x")
	require.Error(t, err)
}

func TestTransactionRecordSerialization(t *testing.T) {
	data, err := MarshalTransactionRecord(&TransactionRecord{TransactionId: "tx-1", SavedAt: 1700000000})
	require.NoError(t, err)

	record, err := UnmarshalTransactionRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", record.TransactionId)
	assert.Equal(t, int64(1700000000), record.SavedAt)

	_, err = MarshalTransactionRecord(nil)
	require.Error(t, err)

	_, err = UnmarshalTransactionRecord(nil)
	require.Error(t, err)

	_, err = UnmarshalTransactionRecord([]byte(`{"savedAt":1}`))
	require.Error(t, err)
}
