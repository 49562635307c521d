// ABOUTME: Charm KV client wrapper for gainsbook storage with cloud sync.
// ABOUTME: Implements kvstore.Store; writes are synced to Charm Cloud after each change.
package charm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/gainsbook/internal/kvstore"
)

const (
	// DefaultDBName is the Charm KV database name.
	DefaultDBName = "gainsbook"
	// DefaultHost is the Charm server used when CHARM_HOST is unset.
	DefaultHost = "charm.2389.dev"
)

// ErrReadOnly is returned by writes while another process holds the database lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// Options configures a Client.
type Options struct {
	DBName   string
	Host     string
	AutoSync bool
}

// Client is a kvstore.Store over a Charm KV database.
type Client struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

var _ kvstore.Store = (*Client)(nil)

// Open opens the Charm KV database and pulls remote data unless read-only.
func Open(opts Options) (*Client, error) {
	if opts.DBName == "" {
		opts.DBName = DefaultDBName
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if os.Getenv("CHARM_HOST") == "" {
		// Set server before opening KV
		if err := os.Setenv("CHARM_HOST", opts.Host); err != nil {
			return nil, fmt.Errorf("set charm host: %w", err)
		}
	}

	db, err := kv.OpenWithDefaultsFallback(opts.DBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &Client{kv: db, autoSync: opts.AutoSync}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Get returns the value stored under key.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.get(key)
}

func (c *Client) get(key string) ([]byte, error) {
	val, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, kvstore.ErrKeyNotFound
	}
	return val, err
}

// Set stores a value with the given key.
func (c *Client) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes a key.
func (c *Client) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// Keys returns all keys matching the given prefix.
func (c *Client) Keys(prefix string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keys(prefix)
}

func (c *Client) keys(prefix string) ([]string, error) {
	all, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	return filterKeys(all, prefix), nil
}

// Update buffers the writes made by fn and applies them in order once fn succeeds.
// Charm KV offers no multi-key transaction, so a failure while applying can leave
// a prefix of the writes in place.
func (c *Client) Update(fn func(kvstore.Txn) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	txn := newBufferedTxn(c.get, c.keys)
	if err := fn(txn); err != nil {
		return err
	}

	for _, w := range txn.writes {
		var err error
		if w.deleted {
			err = c.kv.Delete([]byte(w.key))
		} else {
			err = c.kv.Set([]byte(w.key), w.value)
		}
		if err != nil {
			return fmt.Errorf("apply %s: %w", w.key, err)
		}
	}
	c.syncIfEnabled()
	return nil
}

func filterKeys(all [][]byte, prefix string) []string {
	prefixBytes := []byte(prefix)
	var keys []string
	for _, key := range all {
		if bytes.HasPrefix(key, prefixBytes) {
			keys = append(keys, string(key))
		}
	}
	sort.Strings(keys)
	return keys
}

type write struct {
	key     string
	value   []byte
	deleted bool
}

// bufferedTxn overlays pending writes on top of a read function.
type bufferedTxn struct {
	read    func(string) ([]byte, error)
	list    func(string) ([]string, error)
	writes  []write
	pending map[string]int
}

func newBufferedTxn(read func(string) ([]byte, error), list func(string) ([]string, error)) *bufferedTxn {
	return &bufferedTxn{read: read, list: list, pending: make(map[string]int)}
}

func (t *bufferedTxn) Get(key string) ([]byte, error) {
	if i, ok := t.pending[key]; ok {
		if t.writes[i].deleted {
			return nil, kvstore.ErrKeyNotFound
		}
		return t.writes[i].value, nil
	}
	return t.read(key)
}

func (t *bufferedTxn) Set(key string, value []byte) error {
	t.record(write{key: key, value: append([]byte(nil), value...)})
	return nil
}

func (t *bufferedTxn) Delete(key string) error {
	t.record(write{key: key, deleted: true})
	return nil
}

func (t *bufferedTxn) Keys(prefix string) ([]string, error) {
	base, err := t.list(prefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(base))
	var keys []string
	for _, k := range base {
		seen[k] = true
		if i, ok := t.pending[k]; ok && t.writes[i].deleted {
			continue
		}
		keys = append(keys, k)
	}
	for k, i := range t.pending {
		if !seen[k] && !t.writes[i].deleted && strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// record keeps the latest write per key, in first-write order.
func (t *bufferedTxn) record(w write) {
	if i, ok := t.pending[w.key]; ok {
		t.writes[i] = w
		return
	}
	t.pending[w.key] = len(t.writes)
	t.writes = append(t.writes, w)
}
