package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"alcyxob/hoops-trainer/internal/app"
	"alcyxob/hoops-trainer/internal/config"
	"alcyxob/hoops-trainer/internal/domain"
	"alcyxob/hoops-trainer/internal/logger"
)

// errPrincipalRequired guards commands that write as the principal; an empty
// one would strip ownership from every record they touch.
var errPrincipalRequired = errors.New("--principal is required")

type rootOptions struct {
	configPath string
	principal  string
	logLevel   string

	app *app.App
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hoopsctl",
		Short:         "Inspect and maintain the hoops trainer stores",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			level := cfg.Log.Level
			if opts.logLevel != "" {
				level = opts.logLevel
			}
			logger.InitWithWriter(level, "console", cmd.ErrOrStderr())

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				_ = a.Close()
				return err
			}
			opts.app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.app == nil {
				return nil
			}
			return opts.app.Close()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", ".", "directory holding config.yaml and .env")
	root.PersistentFlags().StringVar(&opts.principal, "principal", "", "principal id to act as; empty sees public entries only")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level")

	root.AddCommand(
		newEnrichCmd(opts),
		newLibraryCmd(opts),
		newPlansCmd(opts),
		newResourcesCmd(opts),
	)
	return root
}

func newEnrichCmd(opts *rootOptions) *cobra.Command {
	var videoID string
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fetch missing YouTube titles for videos the principal can see",
		Long: "Fetch missing YouTube titles for videos the principal can see.\n" +
			"Enriched videos are saved as the principal, so --principal is required.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.principal == "" {
				return errPrincipalRequired
			}
			if videoID != "" {
				video, err := opts.app.Titles.UpdateVideoTitle(cmd.Context(), opts.principal, videoID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), video)
			}
			report, err := opts.app.Titles.UpdateAllMissingTitles(cmd.Context(), opts.principal)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&videoID, "video", "", "only enrich the video with this id")
	return cmd
}

func newLibraryCmd(opts *rootOptions) *cobra.Command {
	var filter domain.BrowseFilter
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Print the visible videos and exercises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), opts.app.Library.Browse(cmd.Context(), opts.principal, filter))
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "category, all or uncategorized")
	cmd.Flags().StringVar(&filter.Visibility, "visibility", "", "public, private or all")
	return cmd
}

func newPlansCmd(opts *rootOptions) *cobra.Command {
	var resolve string
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Print the visible training plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resolve != "" {
				plan, err := opts.app.Plans.Resolve(cmd.Context(), opts.principal, resolve)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), plan)
			}
			return printJSON(cmd.OutOrStdout(), opts.app.Plans.LoadVisible(cmd.Context(), opts.principal))
		},
	}
	cmd.Flags().StringVar(&resolve, "resolve", "", "print one plan joined to its library entries")
	return cmd
}

func newResourcesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "Print the visible resources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), opts.app.Resources.LoadVisible(cmd.Context(), opts.principal))
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
