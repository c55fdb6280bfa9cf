package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagar-developer08/tree-json/editorkit"
	"github.com/sagar-developer08/tree-json/infrastructure/notify"
	"github.com/sagar-developer08/tree-json/infrastructure/render/console"
	"github.com/sagar-developer08/tree-json/pkg/config"
)

// defaultSessionID lets consecutive runs share a draft when the session
// backend outlives the process.
const defaultSessionID = "cli"

type commonFlags struct {
	envFile string
	api     string
	backend string
	noAPI   bool
}

func newRootCmd() *cobra.Command {
	flags := &commonFlags{}

	cmd := &cobra.Command{
		Use:           "tree-json",
		Short:         "Edit JSON, YAML, TOML, XML and CSV documents as one canonical tree.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Read configuration from this .env file.")
	cmd.PersistentFlags().StringVar(&flags.api, "api", "", "Document API base URL (overrides API_URL).")
	cmd.PersistentFlags().StringVar(&flags.backend, "session-backend", "", "Draft storage: memory, sqlite or redis (overrides SESSION_BACKEND).")
	cmd.PersistentFlags().BoolVar(&flags.noAPI, "offline", false, "Do not contact the document API.")

	cmd.AddCommand(
		openCmd(flags),
		convertCmd(),
		formatCmd(flags),
		loadCmd(flags),
		saveCmd(flags),
		healthCmd(flags),
		clearCmd(flags),
	)

	return cmd
}

func loadConfig(flags *commonFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.envFile != "" {
		cfg, err = config.Load(flags.envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if flags.api != "" {
		cfg.Editor.APIBaseURL = flags.api
	}
	if flags.backend != "" {
		cfg.Session.Backend = flags.backend
	}
	if cfg.Session.ID == "" {
		cfg.Session.ID = defaultSessionID
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openSession assembles an editing session that renders to out and reports
// notifications on errOut.
func openSession(flags *commonFlags, out, errOut io.Writer) (*editorkit.Session, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	logger, err := editorkit.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	cache, err := editorkit.OpenCache(cfg.Session.Backend, cfg.Session.SQLitePath, cfg.Cache.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	opts, err := editorkit.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		editorkit.WithLogger(logger),
		editorkit.WithCache(cache),
		editorkit.WithRenderer(console.NewRenderer(out)),
		editorkit.WithNotifier(notify.NewLogNotifier(logger, errOut)),
	)
	if flags.noAPI {
		opts = append(opts, editorkit.WithoutAPI())
	}

	return editorkit.NewSession(opts...)
}

// readInput reads the named file, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeContents(w io.Writer, contents string) error {
	if !strings.HasSuffix(contents, "\n") {
		contents += "\n"
	}
	_, err := io.WriteString(w, contents)
	return err
}
