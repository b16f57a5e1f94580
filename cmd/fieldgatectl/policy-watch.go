package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/fieldgate/fieldgate/pkg/policy"
)

// policyWatchCmd represents the policy watch command
var policyWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a policy defaults file and validate it on change",
	Long: `Watch a policy defaults file and validate it whenever it changes.

Every write to the file reloads it over the built-in defaults and reports
whether the result is usable. Run this next to an editor session to catch
mistakes before the server picks the file up.

Example:
  fieldgatectl policy watch /etc/fieldgate/policy-defaults.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchDefaults(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch policy defaults: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	policyCmd.AddCommand(policyWatchCmd)
}

func watchDefaults(filename string) error {
	// Validate once before watching so a bad file is reported immediately.
	reportDefaults(filename)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for policy defaults changes\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] File modified, revalidating...\n", time.Now().Format(time.RFC3339))
				reportDefaults(filename)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func reportDefaults(filename string) {
	defaults, err := policy.LoadDefaults(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid policy defaults: %v\n", err)
		return
	}

	fmt.Printf("Policy defaults OK: document TTL %s, PIN mode %s, heartbeat %ds\n",
		defaults.DocumentTTL, defaults.PIN.Mode, defaults.Telemetry.HeartbeatSeconds)
}
