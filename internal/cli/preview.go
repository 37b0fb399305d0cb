package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spf13/cobra"

	"github.com/matzehuels/silhouette/pkg/pipeline"
)

// previewCommand creates the preview command: render without writing a
// file, then browse the result in an interactive pager.
func (c *CLI) previewCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "preview --code <path> --art <path>",
		Short: "Render and browse the result interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "code", "art"); err != nil {
				return err
			}
			opts.seed = c.cfg.Seed
			if cmd.Flags().Changed("seed") {
				opts.seed, _ = cmd.Flags().GetInt64("seed")
			}

			popts, err := c.pipelineOptions(cmd, &opts)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			sp := newSpinnerWithContext(cmd.Context(), "rendering...")
			sp.Start()
			res, err := runner.Execute(cmd.Context(), popts)
			sp.Stop()
			if err != nil {
				return err
			}

			model := newPreviewModel(res)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&opts.code, "code", "", "source code file (required)")
	cmd.Flags().StringVar(&opts.art, "art", "", "ASCII art file, UTF-8 (required)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "override inferred art width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "override inferred art height")
	cmd.Flags().Int64("seed", 0, "layout PRNG seed (-1 for a random seed)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// =============================================================================
// previewModel - Scrollable Output Viewer
// =============================================================================

// previewModel is the bubbletea model paging through rendered output.
type previewModel struct {
	lines  []string
	meta   string
	offset int
	height int
}

func newPreviewModel(res *pipeline.Result) previewModel {
	return previewModel{
		lines:  strings.Split(strings.TrimRight(res.Output, "\n"), "\n"),
		meta:   res.Meta(),
		height: 24,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 2 // reserve header and footer rows
		if m.height < 1 {
			m.height = 1
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		case "pgup", "b":
			m.offset -= m.height
			if m.offset < 0 {
				m.offset = 0
			}
		case "pgdown", "f", " ":
			m.offset += m.height
			if max := m.maxOffset(); m.offset > max {
				m.offset = max
			}
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.offset = m.maxOffset()
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("silhouette preview") + " " + StyleDim.Render(m.meta) + "\n")

	end := m.offset + m.height
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for _, line := range m.lines[m.offset:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("lines %d-%d/%d · j/k scroll · q quit", m.offset+1, end, len(m.lines))))
	return b.String()
}

func (m previewModel) maxOffset() int {
	max := len(m.lines) - m.height
	if max < 0 {
		return 0
	}
	return max
}
