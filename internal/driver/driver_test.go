package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"silver/internal/symbols"
	"silver/internal/token"
	"silver/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEvalText(t *testing.T) {
	res := EvalText(context.Background(), "<test>", "2 * (3 + 4)", symbols.NewStore(), Options{})
	require.True(t, res.OK)
	assert.Equal(t, types.NumberValue(14), res.Value)
	assert.Equal(t, 0, res.Bag.Len())
	require.Len(t, res.Timing.Phases, 3)
	assert.Equal(t, "parse", res.Timing.Phases[0].Name)
}

func TestEvalTextCapsDiagnostics(t *testing.T) {
	res := EvalText(context.Background(), "<test>", "1 $ $ $ $", symbols.NewStore(), Options{MaxDiagnostics: 2})
	assert.False(t, res.OK)
	assert.Equal(t, 2, res.Bag.Len())
	assert.True(t, res.Bag.HasErrors())
}

func TestEvalFileMissing(t *testing.T) {
	_, err := EvalFile(context.Background(), filepath.Join(t.TempDir(), "nope.sv"), symbols.NewStore(), Options{})
	assert.Error(t, err)
}

func TestTokenizeText(t *testing.T) {
	res := TokenizeText("<test>", "a == 1", 0)
	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{token.Ident, token.EqEq, token.Number, token.EOF}, kinds)
	assert.Equal(t, 0, res.Bag.Len())
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "expr.sv", "1 + ")
	res, err := Parse(context.Background(), path, 10)
	require.NoError(t, err)
	assert.True(t, res.Tree.Root.IsValid())
	assert.Equal(t, 1, res.Bag.Len())
}

func TestEvaluateFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sv", "x = 2\n")
	writeFile(t, dir, "nested/b.sv", "x + 1")
	writeFile(t, dir, "c.sv", "1 + 2 * 3")
	writeFile(t, dir, "notes.txt", "ignored")

	paths, err := ListSourceFiles(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	var (
		mu   sync.Mutex
		seen []string
	)
	_, results, err := EvaluateFiles(context.Background(), paths, 2, Options{}, func(r FileResult) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r.Path)
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.ElementsMatch(t, paths, seen)

	byName := map[string]FileResult{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}

	a := byName["a.sv"]
	require.False(t, a.Failed())
	assert.Equal(t, types.NumberValue(2), a.Result.Value)
	assert.Equal(t, []string{"x"}, a.Store.Names())

	// Every file has its own store, so b.sv cannot see x from a.sv.
	b := byName["b.sv"]
	assert.True(t, b.Failed())
	assert.Equal(t, 1, b.Result.Bag.Len())

	c := byName["c.sv"]
	require.False(t, c.Failed())
	assert.Equal(t, types.NumberValue(7), c.Result.Value)
}

func TestEvaluateFilesLoadError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.sv")
	_, results, err := EvaluateFiles(context.Background(), []string{missing}, 1, Options{}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.True(t, results[0].Failed())
}

func TestEvaluateFilesCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.sv", "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := EvaluateFiles(ctx, []string{path}, 1, Options{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.mp")
	store := symbols.NewStore()
	res := EvalText(context.Background(), "<repl>", "x = (flag = true) == false", store, Options{})
	require.True(t, res.OK)
	res = EvalText(context.Background(), "<repl>", "n = 0.5", store, Options{})
	require.True(t, res.OK)

	require.NoError(t, SaveSession(path, store))
	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, store.Bindings(), loaded.Bindings())

	// The restored types still gate reassignment.
	res = EvalText(context.Background(), "<repl>", "n = true", loaded, Options{})
	assert.False(t, res.OK)
}

func TestLoadSessionMissingIsEmpty(t *testing.T) {
	store, err := LoadSession(filepath.Join(t.TempDir(), "none.mp"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestLoadSessionRejectsGarbage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.mp", "not msgpack at all")
	_, err := LoadSession(path)
	assert.Error(t, err)
}

func TestLoadSessionRejectsUnknownKinds(t *testing.T) {
	for _, kind := range []types.Kind{types.Invalid, types.Kind(7)} {
		t.Run(fmt.Sprint(uint8(kind)), func(t *testing.T) {
			payload := SessionPayload{
				Schema:    sessionSchemaVersion,
				Variables: []SessionBinding{{Name: "x", Value: types.Value{Kind: kind, Num: 1}}},
			}
			data, err := msgpack.Marshal(&payload)
			require.NoError(t, err)
			path := writeFile(t, t.TempDir(), "corrupt.mp", string(data))

			_, err = LoadSession(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), `variable "x" has unknown type`)
		})
	}
}

func TestEvaluateFilesReportsPhasesPerFile(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.sv", "1 + 1")
	bad := writeFile(t, dir, "bad.sv", "1 + true")

	var (
		mu     sync.Mutex
		phases = map[string][]string{}
	)
	opts := Options{FileObserver: func(path string, ev PhaseEvent) {
		if ev.Status != PhaseEnd {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		phases[path] = append(phases[path], ev.Name)
	}}
	_, _, err := EvaluateFiles(context.Background(), []string{ok, bad}, 2, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"parse", "bind", "eval"}, phases[ok])
	assert.Equal(t, []string{"parse", "bind"}, phases[bad])
}

func TestTestdataCorpus(t *testing.T) {
	root := filepath.Join("..", "..", "testdata")
	paths, err := ListSourceFiles(root)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	wantValues := map[string]types.Value{
		"arith.sv":  types.NumberValue(7),
		"assign.sv": types.NumberValue(42),
		"logic.sv":  types.BoolValue(true),
	}
	wantCodes := map[string]string{
		"mismatch.sv":   "SEM3016",
		"unclosed.sv":   "SYN2006",
		"unresolved.sv": "SEM3005",
	}

	_, results, err := EvaluateFiles(context.Background(), paths, 2, Options{}, nil)
	require.NoError(t, err)
	for _, r := range results {
		name := filepath.Base(r.Path)
		require.NoError(t, r.Err, name)
		if want, ok := wantValues[name]; ok {
			require.True(t, r.Result.OK, name)
			assert.Equal(t, want, r.Result.Value, name)
			continue
		}
		require.True(t, r.Failed(), name)
		items := r.Result.Bag.Items()
		require.NotEmpty(t, items, name)
		assert.Equal(t, wantCodes[name], items[0].Code.ID(), name)
	}
}
