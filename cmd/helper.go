// nolint:errcheck
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/AliceAlbano/vgrep/internal/command"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	titleStyle   = color.New(color.Bold, color.FgHiWhite)
	commandStyle = color.New(color.FgHiGreen)
	keyStyle     = color.New(color.Bold, color.FgHiYellow)
	exampleStyle = color.New(color.FgHiCyan)
	flagStyle    = color.New(color.Bold, color.FgHiCyan)
	tipStyle     = color.New(color.FgHiYellow)
)

// HelpTemplate prints the long description, then the usage text, then
// where to report problems.
var HelpTemplate = "{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}\n\n{{end}}" +
	"{{.UsageString}}\n" +
	titleStyle.Sprint("Issues:") + " https://github.com/AliceAlbano/vgrep/issues\n"

// helpRow is one line of a two-column help listing.
type helpRow struct {
	key  string
	text string
}

func flagRows(fs *pflag.FlagSet) []helpRow {
	var rows []helpRow
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		key := "    --" + f.Name
		if f.Shorthand != "" {
			key = "-" + f.Shorthand + ", --" + f.Name
		}
		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			key += " " + varname
		}
		switch f.DefValue {
		case "", "false", "0", "[]":
		default:
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		rows = append(rows, helpRow{key: key, text: usage})
	})
	return rows
}

func commandRows() []helpRow {
	cmds := command.Commands()
	rows := make([]helpRow, len(cmds))
	for i, c := range cmds {
		rows[i] = helpRow{key: c.Usage, text: c.Description}
	}
	return rows
}

// writeRows prints rows as two aligned columns with the keys styled.
func writeRows(w io.Writer, rows []helpRow, style *color.Color) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.key))
	}
	for _, r := range rows {
		io.WriteString(w, "  ")
		style.Fprint(w, r.key)
		fmt.Fprintf(w, "%s  %s\n", strings.Repeat(" ", width-len(r.key)), strings.TrimRight(r.text, " \t"))
	}
}

func ColorUsageFunc(w io.Writer, cmd *cobra.Command) error {
	buf := &bytes.Buffer{}

	titleStyle.Fprintln(buf, "Usage:")
	if cmd.Runnable() {
		io.WriteString(buf, "  ")
		commandStyle.Fprintln(buf, cmd.UseLine())
	}

	if cmd.HasExample() {
		buf.WriteByte('\n')
		titleStyle.Fprintln(buf, "Examples:")
		exampleStyle.Fprintln(buf, cmd.Example)
	}

	if cmd.HasAvailableLocalFlags() {
		buf.WriteByte('\n')
		titleStyle.Fprintln(buf, "Flags:")
		writeRows(buf, flagRows(cmd.LocalFlags()), flagStyle)
	}

	buf.WriteByte('\n')
	titleStyle.Fprintln(buf, "Interactive Commands:")
	io.WriteString(buf, "  ")
	tipStyle.Fprintln(buf, `<selector><letter> [argument], e.g. "2-5,8c 3" or "/TODO/p"`)
	writeRows(buf, commandRows(), keyStyle)

	_, err := w.Write(buf.Bytes())
	return err
}
