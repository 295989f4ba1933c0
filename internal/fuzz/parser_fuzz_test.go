package fuzztests

import (
	"context"
	"testing"
	"time"

	"silver/internal/diag"
	"silver/internal/driver"
	"silver/internal/format"
	"silver/internal/symbols"
	"silver/internal/syntax"
	"silver/internal/testkit"
	"silver/internal/types"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		bag := diag.NewBag(128)
		tree := syntax.ParseString(string(input), &diag.BagReporter{Bag: bag})
		if err := testkit.CheckSpanInvariants(tree); err != nil {
			t.Fatalf("span invariants broken for %q: %v", truncateForLog(input, 200), err)
		}
		if bag.HasErrors() {
			return
		}
		// a clean parse must survive formatting
		for _, opt := range []format.Options{{}, {Minimal: true}} {
			if ok, msg := format.CheckRoundTrip(tree, opt); !ok {
				t.Fatalf("%s for %q", msg, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("((((((((((((((((((((1"))
	f.Add([]byte("- - - - - - - - - -"))
	f.Add([]byte("a = b = c = d = e ="))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = syntax.ParseString(string(input), &diag.BagReporter{Bag: diag.NewBag(128)})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzEvaluate runs the whole pipeline. Evaluation may fail with
// diagnostics but must never panic, and a failed run must leave the store
// untouched.
func FuzzEvaluate(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		store := symbols.NewStore()
		store.Set(symbols.Variable{Name: "x", Type: types.Number}, types.NumberValue(1))

		res := driver.EvalText(context.Background(), "fuzz.sv", string(input), store, driver.Options{MaxDiagnostics: 8})
		if res.OK == res.Bag.HasErrors() {
			t.Fatalf("OK=%v but HasErrors=%v for %q", res.OK, res.Bag.HasErrors(), truncateForLog(input, 200))
		}
		x, _ := store.Lookup("x")
		if !res.OK && (store.Len() != 1 || !x.Value.Equal(types.NumberValue(1))) {
			t.Fatalf("failed evaluation changed the store for %q", truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
