// Package keychain stores named Tezos secret keys in a JSON file and signs forged operations with them.
package keychain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/trilitech/tzgo/tezos"
)

type entry struct {
	SecretKey string `json:"secret_key"`
}

// Keychain is a set of named keys backed by a file. Safe for concurrent use.
type Keychain struct {
	mu   sync.RWMutex
	path string
	keys map[string]*Key
}

// Load reads the keychain at path. A missing file yields an empty keychain that Save will create.
func Load(path string) (*Keychain, error) {
	kc := &Keychain{
		path: path,
		keys: make(map[string]*Key),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return kc, nil
		}
		return nil, errors.Wrapf(err, "can't read keychain %s", path)
	}

	var entries map[string]entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "malformed keychain %s: %v", path, err)
	}
	for name, e := range entries {
		key, err := ParseKey(name, e.SecretKey)
		if err != nil {
			return nil, errors.Wrapf(err, "keychain %s", path)
		}
		kc.keys[name] = key
	}
	return kc, nil
}

// Save writes the keychain back to its file, readable by the owner only.
func (kc *Keychain) Save() error {
	kc.mu.RLock()
	entries := make(map[string]entry, len(kc.keys))
	for name, key := range kc.keys {
		entries[name] = entry{SecretKey: key.secret.String()}
	}
	kc.mu.RUnlock()

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errs.InternalError, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(kc.path), 0o700); err != nil {
		return errors.Wrap(errs.SomethingWentWrong, "create keychain directory")
	}
	if err := os.WriteFile(kc.path, data, 0o600); err != nil {
		return errors.Wrapf(err, "can't write keychain %s", kc.path)
	}
	return nil
}

// Get returns the key stored under name. Returns errs.NotFound if there is none.
func (kc *Keychain) Get(name string) (*Key, error) {
	kc.mu.RLock()
	defer kc.mu.RUnlock()
	key, ok := kc.keys[name]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "key %q", name)
	}
	return key, nil
}

// Add stores key under its name, replacing any existing key with the same name.
func (kc *Keychain) Add(key *Key) {
	kc.mu.Lock()
	defer kc.mu.Unlock()
	kc.keys[key.Name()] = key
}

// Generate creates a new ed25519 key and adds it. Existing names are never overwritten.
func (kc *Keychain) Generate(name string) (*Key, error) {
	if name == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "key name is required")
	}
	if _, err := kc.Get(name); err == nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "key %q already exists", name)
	}

	secret, err := tezos.GenerateKey(tezos.KeyTypeEd25519)
	if err != nil {
		return nil, errors.Wrap(errs.SomethingWentWrong, "generate key")
	}
	key := &Key{name: name, secret: secret}
	kc.Add(key)
	return key, nil
}

// Names returns the stored key names, sorted.
func (kc *Keychain) Names() []string {
	kc.mu.RLock()
	defer kc.mu.RUnlock()
	names := make([]string, 0, len(kc.keys))
	for name := range kc.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
