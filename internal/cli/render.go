package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/silhouette/pkg/errors"
	"github.com/matzehuels/silhouette/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	code     string // source code path, "-" for stdin
	art      string // art image path
	out      string // output path, "-" for stdout
	width    int    // art width override, 0 = inferred
	height   int    // art height override, meaningful when heightSet
	seed     int64  // layout PRNG seed
	dumpMeta bool   // print W/H/token summary to stderr
	noCache  bool   // bypass the render cache
}

// renderCommand creates the render command, the main operation of the tool.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render --code <path> --art <path> --out <path>",
		Short: "Reformat source code into the silhouette of an art image",
		Long: `Render reformats the given source file so its output characters cluster
where the art image has foreground pixels. The result re-tokenizes to the
original token stream.

Missing or unreadable input files are not fatal; they are treated as empty.
Parent directories of the output path are created as needed. Pass "-" as
--code to read from stdin or as --out to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "code", "art", "out"); err != nil {
				return err
			}
			opts.seed = c.cfg.Seed
			if cmd.Flags().Changed("seed") {
				opts.seed, _ = cmd.Flags().GetInt64("seed")
			}
			return c.runRender(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.code, "code", "", "source code file (required)")
	cmd.Flags().StringVar(&opts.art, "art", "", "ASCII art file, UTF-8 (required)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output path (required)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "override inferred art width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "override inferred art height")
	cmd.Flags().Int64("seed", 0, "layout PRNG seed (-1 for a random seed)")
	cmd.Flags().BoolVar(&opts.dumpMeta, "dump-meta", false, "write a W/H/token summary to stderr")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// runRender executes the render pipeline for the CLI flags.
func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	popts, err := c.pipelineOptions(cmd, opts)
	if err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(opts.out); err != nil {
		return err
	}

	runner, err := c.newRunner(cmd.Context(), opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d tokens into %d lines", res.Stats.TokenCount, res.Stats.Lines))

	if opts.dumpMeta {
		fmt.Fprintln(os.Stderr, res.Meta())
	}

	if err := writeOutput(opts.out, []byte(res.Output)); err != nil {
		return err
	}
	if opts.out != "-" {
		c.Logger.Info("wrote output", "path", opts.out, "bytes", len(res.Output))
	}
	return nil
}

// pipelineOptions validates the flags and assembles pipeline options.
// Input files that are missing or unreadable become empty content.
func (c *CLI) pipelineOptions(cmd *cobra.Command, opts *renderOpts) (pipeline.Options, error) {
	if cmd.Flags().Changed("width") {
		if err := errors.ValidateDimension("width", opts.width); err != nil {
			return pipeline.Options{}, err
		}
	}
	heightSet := cmd.Flags().Changed("height")
	if heightSet && (opts.height < 0 || opts.height > 1_000_000_000) {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidFlag, "height must be a non-negative integer, got %d", opts.height)
	}

	code := c.readInput(opts.code)
	artText := c.readInput(opts.art)

	return pipeline.Options{
		Code:      string(code),
		Art:       string(artText),
		Width:     opts.width,
		Height:    opts.height,
		HasHeight: heightSet,
		Seed:      opts.seed,
		Density:   c.cfg.Density,
	}, nil
}

// readInput reads a file, or stdin for "-". Failures are deliberately
// non-fatal and yield empty content.
func (c *CLI) readInput(path string) []byte {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			c.Logger.Debug("reading stdin failed, using empty content", "error", err)
			return nil
		}
		return data
	}
	data, err := os.ReadFile(path)
	if err != nil {
		c.Logger.Debug("reading input failed, using empty content", "path", path, "error", err)
		return nil
	}
	return data
}

// writeOutput writes data to path, creating parent directories. "-"
// writes to stdout. Open or write failures carry the output-open error
// code so the process exits with status 3.
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return errors.Wrap(errors.ErrCodeOutputOpen, err, "write stdout")
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeOutputOpen, err, "create output directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputOpen, err, "open --out path %s", path)
	}
	return nil
}
