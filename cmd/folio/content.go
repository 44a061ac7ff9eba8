package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"folio/internal/content"
)

var (
	showLocale string
	showFormat string
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and validate the locale files",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check every locale file against the content schema",
	Long: `Loads en.toml, es.toml and ar.toml from dir (or the embedded copies)
and reports every defect found, one per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContentValidate,
}

var contentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one locale's resolved content",
	Args:  cobra.NoArgs,
	RunE:  runContentShow,
}

func init() {
	contentShowCmd.Flags().StringVar(&showLocale, "locale", string(content.DefaultLocale), "Locale to print (en, es, ar)")
	contentShowCmd.Flags().StringVar(&showFormat, "format", string(content.FormatTOML), "Output format (toml, yaml, json)")

	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentShowCmd)
}

func runContentValidate(cmd *cobra.Command, args []string) error {
	dir := cfg.ContentDir
	if len(args) == 1 {
		dir = args[0]
	}

	var err error
	if dir == "" {
		_, err = content.LoadEmbedded()
	} else {
		_, err = content.LoadDir(dir)
	}
	out := cmd.OutOrStdout()
	if err != nil {
		defects := multierr.Errors(err)
		for _, d := range defects {
			fmt.Fprintln(out, d)
		}
		return fmt.Errorf("%d content defect(s)", len(defects))
	}
	fmt.Fprintf(out, "ok: %d locales\n", len(content.Locales))
	return nil
}

func runContentShow(cmd *cobra.Command, _ []string) error {
	locale, ok := content.ParseLocale(showLocale)
	if !ok {
		return fmt.Errorf("%w: %q", content.ErrInvalidLocale, showLocale)
	}
	source, _, err := openContent(cfg.ContentDir)
	if err != nil {
		return err
	}
	return content.Export(cmd.OutOrStdout(), source.Catalog().Get(locale), content.Format(showFormat))
}
