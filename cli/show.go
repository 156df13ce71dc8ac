package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/castawaylabs/status-board/feeds"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch one category once and print its cards",
	RunE:  show,
}

func init() {
	f := showCmd.Flags()
	f.String("category", string(feeds.DefaultCategory), "summary, incidents or maintenance")
	f.String("search", "", "only keep records whose name contains this text")
	f.String("format", "text", "output format [text/html]")

	rootCmd.AddCommand(showCmd)
}

func show(cmd *cobra.Command, args []string) error {
	categoryName, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	format, _ := cmd.Flags().GetString("format")

	category, err := feeds.ParseCategory(categoryName)
	if err != nil {
		return err
	}
	if format != "text" && format != "html" {
		return fmt.Errorf("unknown format %q", format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	feed, err := cfg.Backend.Fetch(context.Background(), category)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("search") {
		feed = feeds.FilterByName(feed, strings.ToLower(strings.TrimSpace(search)))
	}

	var out string
	if format == "html" {
		html, err := cfg.Renderer.Render(feed)
		if err != nil {
			return err
		}
		out = string(html) + "\n"
	} else {
		out, err = cfg.Renderer.RenderText(feed)
		if err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), out)

	return nil
}
