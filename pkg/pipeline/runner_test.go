package pipeline

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/silhouette/pkg/cache"
	"github.com/matzehuels/silhouette/pkg/lex"
)

// testArt is an 80-wide, 3-row target with a block of foreground.
func testArt() string {
	row := strings.Repeat("#", 30) + strings.Repeat(" ", 50)
	return row + "\n" + row + "\n" + row + "\n"
}

func TestRunner_Execute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Code: "int main() { return 42; }",
		Art:  testArt(),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if res.Width != 80 || res.Height != 3 {
		t.Errorf("dims = %dx%d, want 80x3", res.Width, res.Height)
	}
	if res.CacheHit {
		t.Error("first run should not be a cache hit")
	}
	if res.Stats.TokenCount == 0 {
		t.Error("token count should be non-zero")
	}
	if res.Stats.Lines < 3 {
		t.Errorf("lines = %d, want at least grid height 3", res.Stats.Lines)
	}
	if res.RunID == "" {
		t.Error("run ID should be set")
	}

	// The output must re-tokenize to the input's token stream.
	want := lex.Tokenize(lex.Strip("int main() { return 42; }"))
	got := lex.Tokenize(lex.Strip(res.Output))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("retokenize = %v, want %v", got, want)
	}
}

func TestRunner_Meta(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Code: "x", Art: testArt()})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if got, want := res.Meta(), "W=80 H=3, tokens=1"; got != want {
		t.Errorf("Meta() = %q, want %q", got, want)
	}
}

func TestRunner_CacheHit(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(store, nil, nil)
	opts := Options{Code: "int a = 1;", Art: testArt()}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if first.Output != second.Output {
		t.Error("cached output differs from computed output")
	}
}

func TestRunner_CacheKeyRespectsOptions(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(store, nil, nil)

	a, err := r.Execute(context.Background(), Options{Code: "x", Art: testArt(), Seed: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := r.Execute(context.Background(), Options{Code: "x", Art: testArt(), Seed: 2})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if b.CacheHit {
		t.Error("different seeds must not share a cache entry")
	}
	_ = a
}

func TestRunner_HeightZeroOverride(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Code:      "x",
		Art:       testArt(),
		HasHeight: true,
		Height:    0,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Height != 0 {
		t.Errorf("Height = %d, want 0", res.Height)
	}
	if res.Output != "x\n" {
		t.Errorf("Output = %q, want %q", res.Output, "x\n")
	}
}

func TestOptions_EffectiveSeed(t *testing.T) {
	o := Options{}
	if got := o.effectiveSeed(); got != DefaultSeed {
		t.Errorf("zero seed resolves to %d, want DefaultSeed %d", got, DefaultSeed)
	}
	o.Seed = 7
	if got := o.effectiveSeed(); got != 7 {
		t.Errorf("explicit seed resolves to %d, want 7", got)
	}
	o.Seed = SeedRandom
	if got := o.effectiveSeed(); got == SeedRandom || got == 0 {
		t.Errorf("random seed resolved to sentinel %d", got)
	}
}
