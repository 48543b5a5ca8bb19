package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"safeupload.dev/safeupload/internal/filter"
)

// CandidateTable renders the files about to be uploaded with their sizes
func CandidateTable(candidates []filter.Candidate) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"#", "File", "Size"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	var total int64
	for i, c := range candidates {
		size := "?"
		if info, err := os.Lstat(c.Path); err == nil {
			size = formatSize(info.Size())
			total += info.Size()
		}
		table.Append([]string{fmt.Sprintf("%d", i+1), c.RelPath, size})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d files", len(candidates)), formatSize(total)})

	table.Render()
	return buf.String()
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
