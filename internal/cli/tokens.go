package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/silhouette/pkg/lex"
)

// tokensCommand creates the tokens debug command. It runs only the
// lexical half of the pipeline and dumps the token stream the layout
// engine would consume.
func (c *CLI) tokensCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tokens --code <path>",
		Short: "Dump the token stream of a source file (debug)",
		Long: `Tokens strips comments from the source file and prints the resulting
token sequence, one lexeme per line. This is the exact sequence the layout
engine preserves; rendering never reorders, splits, or merges it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "code"); err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("code")
			code := c.readInput(path)
			toks := lex.Tokenize(lex.Strip(string(code)))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(toks)
			}
			for _, t := range toks {
				fmt.Println(t)
			}
			c.Logger.Info("tokenized", "tokens", len(toks))
			return nil
		},
	}

	cmd.Flags().String("code", "", "source code file (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit a JSON array instead of lines")

	return cmd
}
