package main

import (
	"github.com/spf13/cobra"

	"github.com/sagar-developer08/tree-json/core/convert"
	"github.com/sagar-developer08/tree-json/core/domain"
)

func convertCmd() *cobra.Command {
	var from, to string

	cmd := cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a document between formats.",
		Long: `Convert a document between formats.

Reads the file, or stdin when no file is given, parses it under --from and
prints it in --to. Key order is preserved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFormat, err := domain.ParseFormat(from)
			if err != nil {
				return err
			}
			toFormat, err := domain.ParseFormat(to)
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

			out, err := convert.NewPipeline().Convert(text, fromFormat, toFormat)
			if err != nil {
				return err
			}
			return writeContents(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&from, "from", "json", "Input format.")
	cmd.Flags().StringVar(&to, "to", "json", "Output format.")

	return &cmd
}
