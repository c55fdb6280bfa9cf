package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/editor"
)

func openCmd(flags *commonFlags) *cobra.Command {
	var (
		jsonURL string
		widget  bool
	)

	cmd := cobra.Command{
		Use:   "open",
		Short: "Start an editing session and print the resulting document.",
		Long: `Start an editing session and print the resulting document.

The document comes from --json when given, otherwise from the document API,
the previous draft or the built-in sample, depending on the remote policy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Start(cmd.Context(), jsonURL, widget); err != nil {
				return err
			}

			state := s.Snapshot()
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "format=%s status=%s changes=%t\n", state.Format, state.Status, state.HasChanges)
			return err
		},
	}

	cmd.Flags().StringVar(&jsonURL, "json", "", "Load the document from this URL.")
	cmd.Flags().BoolVar(&widget, "widget", false, "Run as an embedded widget (no drafts).")

	return &cmd
}

func formatCmd(flags *commonFlags) *cobra.Command {
	var to string

	cmd := cobra.Command{
		Use:   "format",
		Short: "Re-express the current draft in another format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := domain.ParseFormat(to)
			if err != nil {
				return err
			}

			s, err := openSession(flags, nil, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Start(cmd.Context(), "", false); err != nil {
				return err
			}
			if err := s.SetFormat(cmd.Context(), format); err != nil {
				return err
			}
			return writeContents(cmd.OutOrStdout(), s.Contents())
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target format.")
	_ = cmd.MarkFlagRequired("to")

	return &cmd
}

func loadCmd(flags *commonFlags) *cobra.Command {
	cmd := cobra.Command{
		Use:   "load",
		Short: "Load the document from the document API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, nil, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.LoadFromAPI(cmd.Context()); err != nil {
				return err
			}
			return writeContents(cmd.OutOrStdout(), s.Contents())
		},
	}
	return &cmd
}

func saveCmd(flags *commonFlags) *cobra.Command {
	var (
		format string
		merge  bool
	)

	cmd := cobra.Command{
		Use:   "save [file]",
		Short: "Save a document to the document API.",
		Long: `Save a document to the document API.

Reads the file, or stdin when no file is given, parses it under --format and
replaces the stored document. With --merge the document is applied as a JSON
merge patch instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := domain.ParseFormat(format)
			if err != nil {
				return err
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			text, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			s, err := openSession(flags, nil, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetContents(cmd.Context(), text, editor.WithFormat(f)); err != nil {
				return err
			}
			if merge {
				return s.MergeToAPI(cmd.Context())
			}
			return s.SaveToAPI(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Format of the input.")
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge into the stored document instead of replacing it.")

	return &cmd
}

func healthCmd(flags *commonFlags) *cobra.Command {
	cmd := cobra.Command{
		Use:   "health",
		Short: "Report whether the document API is reachable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, nil, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.IsAPIConnected(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), "disconnected")
				return fmt.Errorf("document API is not reachable")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "connected")
			return err
		},
	}
	return &cmd
}

func clearCmd(flags *commonFlags) *cobra.Command {
	var local bool

	cmd := cobra.Command{
		Use:   "clear",
		Short: "Clear the document stored by the document API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(flags, nil, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			if local {
				if s.Drafts != nil {
					s.Drafts.Clear(cmd.Context())
				}
				s.Clear(cmd.Context())
				return nil
			}
			return s.ClearRemote(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Discard the local draft instead.")

	return &cmd
}
