package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/silhouette/pkg/errors"
	"github.com/matzehuels/silhouette/pkg/lex"
)

// newTestCLI builds a CLI that cannot touch the user's real config or
// cache directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(os.Stderr, LogInfo)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRenderCommand_WritesOutput(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	code := "int main() { return 0; }"
	artRow := strings.Repeat("#", 24) + strings.Repeat(" ", 56)
	codePath := writeFile(t, dir, "in.c", code)
	artPath := writeFile(t, dir, "art.txt", artRow+"\n"+artRow+"\n")
	outPath := filepath.Join(dir, "nested", "out.c")

	root := c.RootCommand()
	root.SetArgs([]string{
		"render",
		"--code", codePath,
		"--art", artPath,
		"--out", outPath,
		"--no-cache",
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file missing (parent dirs should be created): %v", err)
	}

	want := lex.Tokenize(lex.Strip(code))
	got := lex.Tokenize(lex.Strip(string(out)))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output does not retokenize to the input: got %v, want %v", got, want)
	}
}

func TestRenderCommand_MissingInputIsEmptyContent(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	artRow := strings.Repeat("#", 80)
	artPath := writeFile(t, dir, "art.txt", artRow+"\n")
	outPath := filepath.Join(dir, "out.c")

	root := c.RootCommand()
	root.SetArgs([]string{
		"render",
		"--code", filepath.Join(dir, "no-such-file.c"),
		"--art", artPath,
		"--out", outPath,
		"--no-cache",
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("missing input must not be fatal: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := lex.Tokenize(lex.Strip(string(out))); len(got) != 0 {
		t.Errorf("empty code should produce a token-free render, got %v", got)
	}
}

func TestRenderCommand_MissingRequiredFlag(t *testing.T) {
	c := newTestCLI(t)

	root := c.RootCommand()
	root.SetArgs([]string{"render", "--code", "x.c"})
	err := root.Execute()
	if err == nil {
		t.Fatal("missing required flags should error")
	}
	if errors.ExitCode(err) != 2 {
		t.Errorf("ExitCode = %d, want 2 (argument error)", errors.ExitCode(err))
	}
}

func TestRenderCommand_BadWidth(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	codePath := writeFile(t, dir, "in.c", "x")
	artPath := writeFile(t, dir, "art.txt", strings.Repeat("#", 80))

	root := c.RootCommand()
	root.SetArgs([]string{
		"render",
		"--code", codePath,
		"--art", artPath,
		"--out", filepath.Join(dir, "out.c"),
		"--width", "-5",
	})
	err := root.Execute()
	if err == nil {
		t.Fatal("negative width should error")
	}
	if errors.ExitCode(err) != 2 {
		t.Errorf("ExitCode = %d, want 2", errors.ExitCode(err))
	}
}

func TestRequireFlags(t *testing.T) {
	c := newTestCLI(t)
	cmd := c.renderCommand()
	_ = cmd.Flags().Set("code", "a")
	if err := requireFlags(cmd, "code"); err != nil {
		t.Errorf("set flag reported missing: %v", err)
	}
	err := requireFlags(cmd, "out")
	if err == nil {
		t.Fatal("unset flag should be reported")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFlag {
		t.Errorf("code = %q, want INVALID_FLAG", errors.GetCode(err))
	}
}

func TestWriteOutput_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "out.txt")
	if err := writeOutput(path, []byte("data")); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "data" {
		t.Errorf("read back %q, err %v", got, err)
	}
}

func TestWriteOutput_FailureIsCoded(t *testing.T) {
	dir := t.TempDir()
	// A path whose parent is a file cannot be created.
	blocker := writeFile(t, dir, "blocker", "x")
	err := writeOutput(filepath.Join(blocker, "out.txt"), []byte("data"))
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.ExitCode(err) != 3 {
		t.Errorf("ExitCode = %d, want 3 (output-open failure)", errors.ExitCode(err))
	}
}
