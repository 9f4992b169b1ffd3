package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/xvzc/netsniff/internal/packet"
	"github.com/xvzc/netsniff/internal/proto"
)

// RenderStats writes an end-of-run summary table for st to w.
func RenderStats(w io.Writer, st packet.Stats) error {
	data := pterm.TableData{
		{"Counter", "Value"},
		{"Frames", strconv.FormatUint(st.Frames, 10)},
		{"Bytes", strconv.FormatUint(st.Bytes, 10)},
		{"Truncated", strconv.FormatUint(st.Truncated, 10)},
	}

	for _, n := range proto.DefaultRegistry().Names() {
		if c := st.Protocols[n]; c > 0 {
			data = append(data, []string{string(n), strconv.FormatUint(c, 10)})
		}
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render stats: %w", err)
	}

	_, err = fmt.Fprintln(w, table)
	return err
}
