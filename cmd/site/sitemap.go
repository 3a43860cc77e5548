package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	site "github.com/brainbridge/site"
	"github.com/brainbridge/site/content"
)

func newSitemapCmd(v *viper.Viper) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml for the current corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(v)
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("sitemap: %w", err)
				}
				defer f.Close()
				w = f
			}
			return exportSitemap(w, cfg, time.Now())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func exportSitemap(w io.Writer, cfg config, now time.Time) error {
	posts, err := content.NewFileRepository(cfg.Site.ContentDir, nil).ListAll()
	if err != nil {
		return fmt.Errorf("sitemap: list posts: %w", err)
	}
	return site.WriteSitemap(w, site.BuildSitemap(cfg.Site.URL, posts, now))
}
