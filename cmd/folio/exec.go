package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/app"
	"folio/internal/content"
	"folio/internal/i18n"
	"folio/internal/prefs"
	"folio/internal/terminal"
)

var (
	execLocale string
	execJSON   bool
)

var execCmd = &cobra.Command{
	Use:   "exec <line...>",
	Short: "Run one terminal command and print its output",
	Long: `Runs a single line through the same interpreter the SSH overlay uses.

Example:
  folio exec projects
  folio exec --locale ar about
  folio exec --json help`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&execLocale, "locale", string(content.DefaultLocale), "Locale to answer in (en, es, ar)")
	execCmd.Flags().BoolVar(&execJSON, "json", false, "Print the transcript entry as JSON")
}

func runExec(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	locale, ok := content.ParseLocale(execLocale)
	if !ok {
		return fmt.Errorf("%w: %q", content.ErrInvalidLocale, execLocale)
	}

	source, _, err := openContent(cfg.ContentDir)
	if err != nil {
		return err
	}
	tr, err := i18n.New(logger)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	client := app.NewClient(ctx, app.Deps{
		Source:     source,
		Prefs:      prefs.NewMemoryBackend(),
		Translator: tr,
		Logger:     logger,
	}, app.ObserverID(nil, "local"))
	defer client.Close()
	client.SetLocale(ctx, locale)

	client.Session.Open()
	client.Session.SetInput(strings.Join(args, " "))
	res := client.Session.Submit(ctx)
	if res.Action != terminal.Appended {
		return nil
	}

	out := cmd.OutOrStdout()
	if execJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res.Entry)
	}
	_, err = fmt.Fprintln(out, res.Entry.Output.String())
	return err
}
