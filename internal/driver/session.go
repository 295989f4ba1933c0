package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"silver/internal/symbols"
	"silver/internal/types"
)

// Current schema version - increment when SessionPayload format changes.
const sessionSchemaVersion uint16 = 1

// SessionPayload is the on-disk form of a REPL variable store.
type SessionPayload struct {
	Schema    uint16           `msgpack:"schema"`
	Variables []SessionBinding `msgpack:"vars"`
}

// SessionBinding is one saved variable. The value's kind is its type.
type SessionBinding struct {
	Name  string      `msgpack:"name"`
	Value types.Value `msgpack:"value"`
}

// ErrSessionSchema is returned for sessions written by another format version.
var ErrSessionSchema = errors.New("session schema mismatch")

// SaveSession writes store to path atomically.
func SaveSession(path string, store *symbols.Store) error {
	payload := SessionPayload{Schema: sessionSchemaVersion}
	for _, b := range store.Bindings() {
		payload.Variables = append(payload.Variables, SessionBinding{Name: b.Var.Name, Value: b.Value})
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "session-*")
	if err != nil {
		return fmt.Errorf("create session temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("encode session: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadSession reads a store saved by SaveSession. A missing file yields an
// empty store.
func LoadSession(path string) (*symbols.Store, error) {
	store := symbols.NewStore()
	// #nosec G304 -- path comes from config or flags
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, err
	}

	var payload SessionPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", path, err)
	}
	if payload.Schema != sessionSchemaVersion {
		return nil, fmt.Errorf("%w: %s has version %d, want %d", ErrSessionSchema, path, payload.Schema, sessionSchemaVersion)
	}
	for _, b := range payload.Variables {
		switch b.Value.Kind {
		case types.Number, types.Boolean:
		default:
			return nil, fmt.Errorf("decode session %s: variable %q has unknown type %d", path, b.Name, b.Value.Kind)
		}
		if _, dup := store.Lookup(b.Name); dup {
			return nil, fmt.Errorf("decode session %s: variable %q saved twice", path, b.Name)
		}
		store.Set(symbols.Variable{Name: b.Name, Type: b.Value.Kind}, b.Value)
	}
	return store, nil
}
