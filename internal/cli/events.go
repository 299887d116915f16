package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "events <code>",
		Short: "Stream live events from a table",
		Long: `Stream live events from a table over SSE.

Prints each event as it arrives until interrupted with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw event JSON")

	return cmd
}

func streamEvents(code string, asJSON bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel the stream on Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	url := strings.TrimSuffix(cfg.ServerURL, "/") + tablePath(code) + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// No timeout; the stream stays open until cancelled
	httpClient := &http.Client{}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned HTTP %d", resp.StatusCode)
	}

	fmt.Fprintf(os.Stderr, "Streaming events from table %s (Ctrl+C to stop)\n", strings.ToUpper(code))

	scanner := bufio.NewScanner(resp.Body)
	var eventName string
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			eventName = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			printEvent(eventName, data, asJSON)
		case line == "":
			eventName = ""
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	return nil
}

func printEvent(name, data string, asJSON bool) {
	if name == "" || name == "ping" {
		return
	}

	if asJSON {
		fmt.Println(data)
		return
	}

	ts := time.Now().Format("15:04:05")
	fmt.Printf("[%s] %s: %s\n", ts, name, data)
}
