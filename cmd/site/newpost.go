package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	site "github.com/brainbridge/site"
	"github.com/brainbridge/site/content"
)

// postFrontMatter is written at the top of a new post. Field order is the
// order keys appear in the file.
type postFrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PublishedAt string   `yaml:"publishedAt"`
	Author      string   `yaml:"author"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Image       string   `yaml:"image"`
	Featured    bool     `yaml:"featured"`
}

type newPostOptions struct {
	Dir         string
	Description string
	Category    string
	Tags        []string
	Featured    bool
	Date        time.Time
}

func newPostCmd(v *viper.Viper) *cobra.Command {
	var opts newPostOptions
	cmd := &cobra.Command{
		Use:   "new-post <title or slug>",
		Short: "Create a blog post skeleton",
		Long: `new-post writes <content-dir>/<slug>.mdx with a filled-in front matter
header. A single hyphenated argument is treated as the slug and the title
is derived from it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = loadConfig(v).Site.ContentDir
			opts.Date = time.Now()
			path, err := writeNewPost(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Description, "description", "", "post description")
	cmd.Flags().StringVar(&opts.Category, "category", content.DefaultCategory, "post category")
	cmd.Flags().StringSliceVar(&opts.Tags, "tags", nil, "comma-separated tags")
	cmd.Flags().BoolVar(&opts.Featured, "featured", false, "mark the post as featured")
	return cmd
}

// titleAndSlug interprets arg as either a title or a slug.
func titleAndSlug(arg string) (title, slug string) {
	arg = strings.TrimSpace(arg)
	if !strings.ContainsAny(arg, " \t") && arg == site.Slugify(arg) {
		return cases.Title(language.English).String(strings.ReplaceAll(arg, "-", " ")), arg
	}
	return arg, site.Slugify(arg)
}

func writeNewPost(arg string, opts newPostOptions) (string, error) {
	title, slug := titleAndSlug(arg)
	if slug == "" {
		return "", errors.New("new-post: title produces an empty slug")
	}
	tags := opts.Tags
	if tags == nil {
		tags = []string{}
	}
	front := postFrontMatter{
		Title:       title,
		Description: opts.Description,
		PublishedAt: opts.Date.Format("2006-01-02"),
		Author:      content.DefaultAuthor,
		Category:    opts.Category,
		Tags:        tags,
		Image:       content.DefaultImage,
		Featured:    opts.Featured,
	}
	out, err := yaml.Marshal(front)
	if err != nil {
		return "", fmt.Errorf("new-post: encode front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(out)
	b.WriteString("---\n\n")
	b.WriteString("Write your post here.\n")

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("new-post: %w", err)
	}
	path := filepath.Join(opts.Dir, slug+".mdx")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("new-post: %s already exists", path)
		}
		return "", fmt.Errorf("new-post: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(b.Bytes()); err != nil {
		return "", fmt.Errorf("new-post: write %s: %w", path, err)
	}
	return path, nil
}
