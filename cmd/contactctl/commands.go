package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/contactrelay/contactrelay/internal/app"
	"github.com/contactrelay/contactrelay/internal/config"
	"github.com/contactrelay/contactrelay/internal/mail"
	"github.com/contactrelay/contactrelay/internal/metrics"
	"github.com/contactrelay/contactrelay/internal/model"
	"github.com/contactrelay/contactrelay/internal/quote"
)

type submissionFlags struct {
	name    string
	email   string
	message string
}

func (f *submissionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "submitter name")
	cmd.Flags().StringVar(&f.email, "email", "", "submitter email address")
	cmd.Flags().StringVar(&f.message, "message", "", "message text")
}

func (f *submissionFlags) submission() (*model.Submission, error) {
	sub := model.NewSubmission(f.name, f.email, f.message)
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return sub, nil
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "contactctl",
		Short: "Operate the contact form relay",
		Long: `contactctl runs the contact form workflow from the command line.

It reads the same environment as the server and Lambda entrypoints and
loads a .env file when one is present.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotenv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")

	root.AddCommand(
		newSubmitCmd(),
		newInvokeCmd(),
		newRenderCmd(),
		newPromptCmd(),
		newVersionCmd(),
	)
	return root
}

func newSubmitCmd() *cobra.Command {
	var (
		flags       submissionFlags
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Run the workflow once and print what each step did",
		Example: `  contactctl submit --name Ann --email ann@example.com --message "Hello"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := flags.submission()
			if err != nil {
				return err
			}

			recorder := metrics.NewInMemory()
			a, logger, cleanup, err := bootstrap(cmd, recorder)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Info("received message", zap.String("name", sub.Name), zap.String("submission_id", sub.ID))
			outcome := a.Service.Process(cmd.Context(), sub)
			if err := writeJSON(cmd.OutOrStdout(), outcome); err != nil {
				return err
			}
			if !outcome.Delivered() {
				logger.Warn("submission not fully delivered", zap.String("submission_id", sub.ID))
			}
			if showMetrics {
				return writeJSON(cmd.ErrOrStderr(), recorder.Snapshot())
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print step counters to stderr afterwards")
	return cmd
}

func newInvokeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "invoke [body]",
		Short: "Pass a raw request body through the handler and print the response",
		Long: `invoke behaves exactly like a request to the deployed handler. The body
is taken from the argument, from --file, or from stdin when neither is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args, file)
			if err != nil {
				return err
			}

			a, _, cleanup, err := bootstrap(cmd, metrics.NewNoop())
			if err != nil {
				return err
			}
			defer cleanup()

			res := a.Contact.Handle(cmd.Context(), body)
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", res.StatusCode, res.Body)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the body from a file")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		flags       submissionFlags
		quoteText   string
		attribution string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print both emails for a submission without sending them",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := flags.submission()
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			id := app.Identity(cfg)
			out := cmd.OutOrStdout()
			printMessage(out, "notification", id.Notification(sub))
			fmt.Fprintln(out)
			printMessage(out, "acknowledgment", id.Acknowledgment(sub, quoteText, attribution))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&quoteText, "quote", quote.Fallback, "quote to embed in the acknowledgment")
	cmd.Flags().StringVar(&attribution, "attribution", "Amazon Bedrock", "service named in the acknowledgment footer")
	return cmd
}

func newPromptCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the quote prompt, or the Bedrock request body with --raw",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !raw {
				fmt.Fprintln(out, quote.Prompt)
				return nil
			}
			body, err := quote.RequestBody()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(body))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the InvokeModel request body")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.ServiceName, app.Version)
		},
	}
}

// bootstrap builds the application with console logging on stderr so the
// command output stays machine-readable.
func bootstrap(cmd *cobra.Command, recorder metrics.Recorder) (*app.App, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.LogFormat == "json" {
		cfg.LogFormat = "console"
	}

	logger, closeLog, err := app.NewLogger(cfg, zapcore.Lock(os.Stderr))
	if err != nil {
		return nil, nil, nil, err
	}

	a, err := app.Bootstrap(cmd.Context(), cfg, recorder, logger)
	if err != nil {
		_ = closeLog()
		return nil, nil, nil, err
	}
	return a, logger, func() { _ = closeLog() }, nil
}

func readBody(cmd *cobra.Command, args []string, file string) ([]byte, error) {
	switch {
	case len(args) == 1:
		return []byte(args[0]), nil
	case file != "":
		body, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return body, nil
	default:
		body, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return body, nil
	}
}

func printMessage(w io.Writer, label string, msg mail.Message) {
	fmt.Fprintf(w, "--- %s ---\n", label)
	fmt.Fprintf(w, "From: %s\n", msg.Source)
	fmt.Fprintf(w, "To: %v\n", msg.To)
	if len(msg.ReplyTo) > 0 {
		fmt.Fprintf(w, "Reply-To: %v\n", msg.ReplyTo)
	}
	fmt.Fprintf(w, "Subject: %s\n\n%s\n", msg.Subject, msg.Body)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
