package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"learner-account-be/internal/pkg/lmsclient"
	"learner-account-be/internal/service"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	lmsURL       string
	token        string
	tokenType    string
	clientID     string
	clientSecret string
	timeout      time.Duration
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "notifprefs",
		Short: "Inspect and toggle LMS course notification preferences",
		Long: `notifprefs talks to the LMS notification preference API with either a
user token or service client credentials. Responses are printed as JSON.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.lmsURL, "lms-url", envOr("LMS_BASE_URL", "http://localhost:18000"), "LMS base URL")
	pf.StringVar(&flags.token, "token", os.Getenv("LMS_TOKEN"), "user access token")
	pf.StringVar(&flags.tokenType, "token-type", envOr("LMS_TOKEN_TYPE", "JWT"), "authorization scheme for --token")
	pf.StringVar(&flags.clientID, "client-id", os.Getenv("LMS_CLIENT_ID"), "OAuth2 client id (used when --token is empty)")
	pf.StringVar(&flags.clientSecret, "client-secret", os.Getenv("LMS_CLIENT_SECRET"), "OAuth2 client secret")
	pf.DurationVar(&flags.timeout, "timeout", 30*time.Second, "request timeout")

	rootCmd.AddCommand(
		newEnrollmentsCmd(flags, out),
		newGetCmd(flags, out),
		newPatchAppCmd(flags, out),
		newPatchTypeCmd(flags, out),
	)
	return rootCmd
}

func newEnrollmentsCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "enrollments",
		Short: "List the courses that have notification preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := flags.service(cmd.Context())
			if err != nil {
				return err
			}
			data, err := svc.GetCourseList(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(out, data)
		},
	}
}

func newGetCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <course-id>",
		Short: "Show the notification preferences of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := flags.service(cmd.Context())
			if err != nil {
				return err
			}
			data, err := svc.GetCourseNotificationPreferences(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(out, data)
		},
	}
}

func newPatchAppCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "patch-app <course-id> <app> <true|false>",
		Short: "Toggle every notification of an app",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[2])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[2], err)
			}
			svc, err := flags.service(cmd.Context())
			if err != nil {
				return err
			}
			data, err := svc.PatchAppPreferenceToggle(cmd.Context(), args[0], args[1], value)
			if err != nil {
				return err
			}
			return printJSON(out, data)
		},
	}
}

func newPatchTypeCmd(flags *globalFlags, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "patch-type <course-id> <app> <type> <channel> <true|false>",
		Short: "Toggle one notification type on one channel",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[4])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[4], err)
			}
			svc, err := flags.service(cmd.Context())
			if err != nil {
				return err
			}
			data, err := svc.PatchPreferenceToggle(cmd.Context(), args[0], args[1], args[2], args[3], value)
			if err != nil {
				return err
			}
			return printJSON(out, data)
		},
	}
}

func (f *globalFlags) service(ctx context.Context) (service.INotificationPreferenceService, error) {
	opts := lmsclient.Options{TokenType: f.tokenType, Timeout: f.timeout}
	switch {
	case f.token != "":
		opts.Fallback = lmsclient.NewStaticTokenSource(f.token, f.tokenType)
	case f.clientID != "" && f.clientSecret != "":
		opts.Fallback = lmsclient.NewClientCredentialsSource(ctx, f.lmsURL, f.clientID, f.clientSecret)
	default:
		return nil, errors.New("either --token or --client-id and --client-secret are required")
	}
	return service.NewNotificationPreferenceService(f.lmsURL, lmsclient.New(opts)), nil
}

func printJSON(out io.Writer, data json.RawMessage) error {
	if len(data) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err := fmt.Fprintln(out, buf.String())
	return err
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
