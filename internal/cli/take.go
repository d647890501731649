package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"quiz-trainer/internal/app"
	"quiz-trainer/internal/config"
	"quiz-trainer/internal/infra/memory"
	"quiz-trainer/internal/ingest"
	"quiz-trainer/internal/transport/terminal"
	"quiz-trainer/internal/upload"
)

type takeOptions struct {
	server   string
	username string
	password string
	local    bool
}

// NewTakeCmd runs a quiz in the terminal, uploading FILE to a server or
// parsing it locally with --local.
func NewTakeCmd(configPath *string) *cobra.Command {
	opts := takeOptions{}
	cmd := &cobra.Command{
		Use:   "take FILE",
		Short: "Take a quiz from a .docx, .pdf or .txt file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTake(cmd.Context(), *configPath, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.server, "server", "", "server URL (overrides client.server_url)")
	cmd.Flags().StringVar(&opts.username, "user", os.Getenv("QUIZ_USER"), "login user name")
	cmd.Flags().StringVar(&opts.password, "password", os.Getenv("QUIZ_PASSWORD"), "login password")
	cmd.Flags().BoolVar(&opts.local, "local", false, "parse the file in-process instead of uploading it")
	return cmd
}

func runTake(ctx context.Context, configPath, path string, opts takeOptions) error {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	uploader, err := takeUploader(ctx, cfg, opts)
	if err != nil {
		return err
	}

	view := terminal.NewView(os.Stdout)
	c := app.NewController(view, uploader, app.WithMessages(messagesFrom(cfg)))
	return terminal.Run(ctx, c, view, os.Stdin, filepath.Base(path), content)
}

func takeUploader(ctx context.Context, cfg config.Config, opts takeOptions) (app.Uploader, error) {
	if opts.local {
		return ingest.NewService(memory.NewPoolCache(config.TTLDuration(cfg.Pool.TTL, defaultPoolTTL))), nil
	}

	serverURL := opts.server
	if serverURL == "" {
		serverURL = cfg.Client.ServerURL
	}
	if serverURL == "" {
		serverURL = "http://localhost:" + defaultPort
	}
	username, password := opts.username, opts.password
	if username == "" {
		username, password = cfg.Client.Username, cfg.Client.Password
	}

	client := upload.NewClient(serverURL, &http.Client{Timeout: 2 * time.Minute})
	if err := client.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("login to %s: %w", serverURL, err)
	}
	return client, nil
}
