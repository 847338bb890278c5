package probe

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	prettyjson "github.com/hokaccha/go-prettyjson"
)

// PrintJSON writes v as colored, indented JSON.
func PrintJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	pj, err := prettyjson.Format(data)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	_, err = fmt.Fprintf(w, "\n%s\n\n", pj)
	return err
}

// PrintError writes err in bold red.
func PrintError(w io.Writer, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	_, _ = boldRed.Fprint(w, "\nerror: ")
	_, _ = fmt.Fprintf(w, "%s\n\n", color.RedString(err.Error()))
}

// PrintReport writes a one-line summary followed by any failures.
func PrintReport(w io.Writer, r *Report) error {
	if r.OK() {
		_, _ = fmt.Fprintf(w, "\n%s %d/%d sport options passed (%d empty) in %s\n",
			color.GreenString("ok"), r.Checked, r.Options, r.Empty, r.Duration.Round(1e6))
		return nil
	}
	_, _ = fmt.Fprintf(w, "\n%s %d failures across %d sport options\n",
		color.New(color.FgRed, color.Bold).Sprint("FAIL"), len(r.Failures), r.Options)
	return PrintJSON(w, r.Failures)
}
