package main

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/contact"
)

var (
	contactEndpoint string
	contactMessage  contact.Message
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Contact form tools",
}

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a message to a running contact endpoint",
	Long: `Posts one message the way the site's form does and prints the outcome.

Example:
  folio contact send --name Ada --email ada@example.com \
    --subject Hello --message "I would like to talk."`,
	Args: cobra.NoArgs,
	RunE: runContactSend,
}

func init() {
	f := contactSendCmd.Flags()
	f.StringVar(&contactEndpoint, "endpoint", "", "Contact URL (default: http://<FOLIO_HTTP_ADDR>/api/contact)")
	f.StringVar(&contactMessage.Name, "name", "", "Sender name")
	f.StringVar(&contactMessage.Email, "email", "", "Sender email (required)")
	f.StringVar(&contactMessage.Subject, "subject", "", "Subject (required)")
	f.StringVar(&contactMessage.Message, "message", "", "Message body (required)")
	_ = contactSendCmd.MarkFlagRequired("email")
	_ = contactSendCmd.MarkFlagRequired("subject")
	_ = contactSendCmd.MarkFlagRequired("message")

	contactCmd.AddCommand(contactSendCmd)
}

func runContactSend(cmd *cobra.Command, _ []string) error {
	endpoint := contactEndpoint
	if endpoint == "" {
		endpoint = "http://" + localAddr(cfg.HTTPAddr) + "/api/contact"
	}

	client := contact.NewClient(endpoint, nil)
	ctx := cmd.Context()
	started := time.Now()
	err := client.Submit(ctx, contactMessage)

	var friendly *contact.FriendlyError
	switch {
	case err == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", contact.CodeSent, time.Since(started).Round(time.Millisecond))
		return nil
	case errors.As(err, &friendly):
		return fmt.Errorf("%s: %s", friendly.Code, friendly.Message)
	default:
		return err
	}
}

// localAddr swaps a wildcard listen host for loopback.
func localAddr(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}
