// ABOUTME: Tests for the Badger key-value store.
// ABOUTME: Covers get/set/delete, prefix scans and transactional rollback.
package kvstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Badger {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerGetSetDelete(t *testing.T) {
	s := setupStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set("a", []byte("1")))
	val, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", string(val))

	require.NoError(t, s.Delete("a"))
	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// deleting again is a no-op
	assert.NoError(t, s.Delete("a"))
}

func TestBadgerKeysByPrefix(t *testing.T) {
	s := setupStore(t)

	for _, k := range []string{"workout:0000000002", "workout:0000000001", "exercise:0000000001", "year:2024"} {
		require.NoError(t, s.Set(k, []byte("{}")))
	}

	keys, err := s.Keys("workout:")
	require.NoError(t, err)
	assert.Equal(t, []string{"workout:0000000001", "workout:0000000002"}, keys)

	keys, err = s.Keys("lift:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBadgerUpdateRollsBackOnError(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Set("keep", []byte("old")))

	boom := errors.New("boom")
	err := s.Update(func(txn Txn) error {
		if err := txn.Set("keep", []byte("new")); err != nil {
			return err
		}
		if err := txn.Set("extra", []byte("x")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	val, err := s.Get("keep")
	require.NoError(t, err)
	assert.Equal(t, "old", string(val))
	_, err = s.Get("extra")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestBadgerUpdateSeesOwnWrites(t *testing.T) {
	s := setupStore(t)

	err := s.Update(func(txn Txn) error {
		if err := txn.Set("p:1", []byte("a")); err != nil {
			return err
		}
		val, err := txn.Get("p:1")
		if err != nil {
			return err
		}
		assert.Equal(t, "a", string(val))
		keys, err := txn.Keys("p:")
		if err != nil {
			return err
		}
		assert.Equal(t, []string{"p:1"}, keys)
		return nil
	})
	require.NoError(t, err)
}

func TestOpenBadgerOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir, nil)
	require.NoError(t, err)
	defer s.Close()
	val, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(val))
}
