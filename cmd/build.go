package cmd

import (
	"github.com/hybridzdynamics/portfolio/internal/content"
	"github.com/hybridzdynamics/portfolio/internal/web"
	"github.com/spf13/cobra"
)

var outputDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `Renders the page and copies its assets into the output directory.
The exported contact form posts directly to the form endpoint from the browser.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := content.Load()
		if err != nil {
			return err
		}

		n, err := web.Export(site, web.ExportOptions{
			Dir:       outputDir,
			Endpoint:  appConfig.ContactEndpoint,
			ImagesDir: appConfig.ImagesDir,
			BaseURL:   appConfig.SiteBaseURL,
		})
		if err != nil {
			return err
		}
		logger.Info("site exported", "dir", outputDir, "files", n)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outputDir, "out", "o", "public", "output directory")
	rootCmd.AddCommand(buildCmd)
}
