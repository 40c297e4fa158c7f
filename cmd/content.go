package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/hybridzdynamics/portfolio/internal/content"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "List the site's websites, projects and skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := content.Load()
		if err != nil {
			return err
		}
		printContent(cmd.OutOrStdout(), site)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contentCmd)
}

func printContent(w io.Writer, site *content.Site) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Section", "Title", "Tags", "Link"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, ws := range site.Websites {
		table.Append([]string{"website", ws.Title, strings.Join(ws.Tags, ", "), ws.URL})
	}
	for _, p := range site.Projects {
		table.Append([]string{"project", p.Title, strings.Join(p.Tags, ", "), ""})
	}
	for _, s := range site.Skills {
		table.Append([]string{"skills", s.Title, strings.Join(s.Skills, ", "), ""})
	}
	table.Render()

	tags := site.Tags()
	fmt.Fprintf(w, "\n%d tags: %s\n", len(tags), strings.Join(tags, ", "))
}
