// ABOUTME: Tests for the Charm client helpers that do not need a Charm server.
// ABOUTME: Covers key filtering and the buffered transaction overlay.
package charm

import (
	"errors"
	"testing"

	"github.com/harperreed/gainsbook/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterKeys(t *testing.T) {
	all := [][]byte{
		[]byte("workout:0000000002"),
		[]byte("exercise:0000000001"),
		[]byte("workout:0000000001"),
	}
	assert.Equal(t, []string{"workout:0000000001", "workout:0000000002"}, filterKeys(all, "workout:"))
	assert.Empty(t, filterKeys(all, "year:"))
}

func newTestTxn(base map[string]string) *bufferedTxn {
	read := func(key string) ([]byte, error) {
		v, ok := base[key]
		if !ok {
			return nil, kvstore.ErrKeyNotFound
		}
		return []byte(v), nil
	}
	list := func(prefix string) ([]string, error) {
		var all [][]byte
		for k := range base {
			all = append(all, []byte(k))
		}
		return filterKeys(all, prefix), nil
	}
	return newBufferedTxn(read, list)
}

func TestBufferedTxnOverlay(t *testing.T) {
	txn := newTestTxn(map[string]string{"a:1": "x", "a:2": "y"})

	require.NoError(t, txn.Set("a:3", []byte("z")))
	require.NoError(t, txn.Delete("a:1"))

	_, err := txn.Get("a:1")
	assert.True(t, errors.Is(err, kvstore.ErrKeyNotFound))

	v, err := txn.Get("a:3")
	require.NoError(t, err)
	assert.Equal(t, "z", string(v))

	v, err = txn.Get("a:2")
	require.NoError(t, err)
	assert.Equal(t, "y", string(v))

	keys, err := txn.Keys("a:")
	require.NoError(t, err)
	assert.Equal(t, []string{"a:2", "a:3"}, keys)
}

func TestBufferedTxnKeepsLatestWritePerKey(t *testing.T) {
	txn := newTestTxn(map[string]string{})

	require.NoError(t, txn.Set("k", []byte("1")))
	require.NoError(t, txn.Set("other", []byte("o")))
	require.NoError(t, txn.Set("k", []byte("2")))

	require.Len(t, txn.writes, 2)
	assert.Equal(t, "k", txn.writes[0].key)
	assert.Equal(t, "2", string(txn.writes[0].value))
	assert.Equal(t, "other", txn.writes[1].key)
}
