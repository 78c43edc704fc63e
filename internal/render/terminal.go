package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/MikeSquared-Agency/backupviewer/internal/export"
)

var (
	dateStyle     = color.New(color.FgHiBlack, color.Bold)
	sentStyle     = color.New(color.FgGreen, color.Bold)
	receivedStyle = color.New(color.FgCyan, color.Bold)
	stampStyle    = color.New(color.FgHiBlack)
	fileStyle     = color.New(color.FgYellow)
	warnStyle     = color.New(color.FgRed)
)

// Terminal writes conv to w as a plain chat log: a separator per day,
// a sender line per run, indented text, and one line per attachment.
func Terminal(w io.Writer, conv *export.Conversation, webRoot string) error {
	if len(conv.Messages) == 0 {
		_, err := fmt.Fprintln(w, "(no messages)")
		return err
	}

	if user, ok := conv.Primary(); ok {
		fmt.Fprintf(w, "%d messages, viewing as %s\n", len(conv.Messages), conv.DisplayName(user))
	}

	for _, e := range conv.Entries() {
		if e.ShowDateHeader {
			fmt.Fprintf(w, "\n%s\n", dateStyle.Sprintf("── %s ──", e.DisplayDate))
		}
		if !e.IsConsecutiveSender || e.ShowDateHeader {
			style := receivedStyle
			marker := "<"
			if e.IsPrimary {
				style = sentStyle
				marker = ">"
			}
			fmt.Fprintf(w, "%s [%s] %s %s\n", marker, e.Initials, style.Sprint(e.DisplayName), stampStyle.Sprint(e.TimeLabel))
		}
		for _, line := range strings.Split(e.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(w, "    %s\n", line)
		}
		for _, a := range export.ResolveAttachments(e.Files, webRoot) {
			fmt.Fprintf(w, "    %s %s %s\n", fileStyle.Sprintf("[%s]", a.Kind), a.Name, a.URL)
		}
	}

	if len(conv.Skipped) > 0 {
		fmt.Fprintf(w, "\n%s\n", warnStyle.Sprintf("%d malformed messages skipped", len(conv.Skipped)))
		for _, s := range conv.Skipped {
			fmt.Fprintf(w, "  %s\n", s.Error())
		}
	}
	return nil
}
