package tsalert

import (
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultMessageWidth bounds the message column of WriteAlertTable.
const DefaultMessageWidth = 72

// WriteAlertTable writes alerts as a borderless table. Paths are shown
// relative to sourceRoot and messages are cut to maxMessageWidth display
// cells (0 means DefaultMessageWidth, negative means no limit).
func WriteAlertTable(w io.Writer, alerts []Alert, sourceRoot string, maxMessageWidth int) error {
	if maxMessageWidth == 0 {
		maxMessageWidth = DefaultMessageWidth
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"file", "line", "column", "message"})
	for _, a := range alerts {
		if err := table.Append([]string{
			displayPath(sourceRoot, a.File),
			strconv.Itoa(a.Line),
			strconv.Itoa(a.Column),
			truncateMessage(a.Message, maxMessageWidth),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// truncateMessage flattens msg to one line and cuts it to width display cells.
func truncateMessage(msg string, width int) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if width < 0 || runewidth.StringWidth(msg) <= width {
		return msg
	}
	return runewidth.Truncate(msg, width, "...")
}
