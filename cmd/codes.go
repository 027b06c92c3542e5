package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/carlot/internal/config"
	"github.com/zjrosen/carlot/internal/registration"
)

var setCodes []string

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Print or replace the county code allow-list",
	Long: `Print the county codes accepted by "Search by County Code".

With --set the list in the config file is replaced. Comments and other
settings in the file are kept. When no config file exists yet one is
created at .carlot/config.yaml.

Examples:
  carlot codes
  carlot codes --set C,D,W,WX,KK,G`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		if len(setCodes) == 0 {
			return printCodes(cmd.OutOrStdout(), cfg.Registration.CountyCodes)
		}

		path := viper.ConfigFileUsed()
		if path == "" {
			path = localConfigPath
		}
		if err := config.SaveCountyCodes(path, setCodes); err != nil {
			return fmt.Errorf("saving county codes: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
		return printCodes(cmd.OutOrStdout(), setCodes)
	},
}

func init() {
	codesCmd.Flags().StringSliceVar(&setCodes, "set", nil, "replace the allow-list (comma separated)")
	rootCmd.AddCommand(codesCmd)
}

// printCodes writes the normalised codes on one line.
func printCodes(w io.Writer, codes []string) error {
	v := registration.NewValidator(codes)
	_, err := fmt.Fprintln(w, strings.Join(v.Codes(), ", "))
	return err
}
