package display

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/langkit/errors"
)

// Table writes rows under a header as a pterm table.
func Table(w io.Writer, header []string, rows [][]string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// KeyValues writes label/value pairs as a two-column table without header.
func KeyValues(w io.Writer, pairs [][2]string) error {
	data := make(pterm.TableData, len(pairs))
	for i, p := range pairs {
		data[i] = []string{pterm.LightCyan(p[0]), p[1]}
	}
	out, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
