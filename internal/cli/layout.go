package cli

import (
	"fmt"
	"os"

	"github.com/sigrok-cross/cleanlinkrsp/internal/config"
	"github.com/sigrok-cross/cleanlinkrsp/internal/layout"
	"github.com/spf13/cobra"
)

var layoutInitForce bool

func init() {
	layoutInitCmd.Flags().BoolVar(&layoutInitForce, "force", false, "Overwrite an existing file")
	layoutCmd.AddCommand(layoutValidateCmd)
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutInitCmd)
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Args:  cobra.NoArgs,
	RunE:  requireSubcommand,
	Short: "Inspect and validate group order layouts",
	Long: `A layout file lists the groups of a rewritten response file in the order
they are written. A group may be listed more than once to repeat it, which
helps when libraries depend on each other in both directions.

  version: "1.0.0"
  groups:
    - search-paths
    - prefix-libs
    - archives
    - import-libs
    - other-libs`,
}

var layoutValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a layout file against the layout schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		result, err := layout.ValidateFile(path)
		if err != nil {
			return err
		}
		if !result.Valid {
			fmt.Fprintf(out, "%s: %d issue(s)\n", path, len(result.Issues))
			for _, issue := range result.Issues {
				loc := issue.Path
				if loc == "" {
					loc = "/"
				}
				fmt.Fprintf(out, "  %s [%s] %s\n", loc, issue.Keyword, issue.Message)
			}
			return fmt.Errorf("layout %s is invalid", path)
		}

		// Schema-valid files can still carry an unsupported version.
		if _, err := layout.LoadFile(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: valid\n", path)
		return nil
	},
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective group order as a layout",
	Long: `Print the group order a rewrite would use, after applying the --order and
--layout flags, the config file and CLEANLINKRSP_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, source, err := resolveOrder(layoutFlag, orderFlag, config.Current())
		if err != nil {
			return err
		}

		l := &layout.Layout{Version: layout.DefaultVersion}
		for _, g := range order {
			l.Groups = append(l.Groups, string(g))
		}
		data, err := l.Marshal()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# source: %s\n", source)
		_, err = out.Write(data)
		return err
	},
}

var layoutInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the default layout to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil && !layoutInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		data, err := layout.Default().Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing layout file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default layout to %s\n", path)
		return nil
	},
}
