package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-gtrfx/dsp/delay"
	"github.com/cwbudde/algo-gtrfx/dsp/effectchain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the chain built from --patch and --fx",
	Long: `Status prints every node with its parameters. On a terminal the
listing is a table; when piped it is one line per node. --json prints
the patch instead.

Example:
  gtrfx status --patch board.json --fx reverb`,
	RunE: runStatus,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List effect types and their parameters",
	RunE:  runList,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the patch as JSON")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	chain, err := buildChain(logger)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if statusJSON {
		data, err := chain.MarshalPatch()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	}

	if isTerminal(w) {
		printStatusTable(w, chain.Nodes())
	} else {
		printStatusLines(w, chain.Nodes())
	}

	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	h, err := delay.NewHistory(global.history)
	if err != nil {
		return err
	}

	reg := effectchain.DefaultRegistry()
	ctx := effectchain.Context{SampleRate: global.sampleRate, History: h.View()}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tPARAMETERS (defaults)")

	for _, typ := range reg.Types() {
		fx, err := reg.Lookup(typ)(ctx)
		if err != nil {
			fmt.Fprintf(tw, "%s\tunavailable: %v\n", typ, err)
			continue
		}

		fmt.Fprintf(tw, "%s\t%s\n", typ, formatParams(fx.ParamNames(), fx.Params()))
	}

	return tw.Flush()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 0 if unknown.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}

	return width
}

func printStatusTable(w io.Writer, nodes []effectchain.NodeInfo) {
	width := terminalWidth(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tTYPE\tSTATE\tPARAMETERS")

	for i, n := range nodes {
		var params string
		if len(n.Names) > 1 && len(n.Values) > 1 {
			params = formatParams(n.Names[1:], n.Values[1:])
		}

		if width > 40 && len(params) > width-40 {
			params = params[:width-43] + "..."
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, n.ID, n.Type, n.State, params)
	}

	_ = tw.Flush()
}

func printStatusLines(w io.Writer, nodes []effectchain.NodeInfo) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s %s %s\n", n.ID, n.Type, formatParams(n.Names, n.Values))
	}
}

// formatParams renders name=value pairs with six significant digits.
func formatParams(names []string, values []float64) string {
	parts := make([]string, 0, len(names))
	for i, name := range names {
		if i < len(values) {
			parts = append(parts, name+"="+strconv.FormatFloat(values[i], 'g', 6, 64))
		}
	}

	return strings.Join(parts, " ")
}
