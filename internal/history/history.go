// Package history records egressctl runs as JSONL events under ~/.egressctl.
// Events are append-only; nothing here affects assessment results.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Event is a single recorded CLI run.
type Event struct {
	Timestamp     string   `json:"timestamp"`
	Operation     string   `json:"operation"`
	Subscriptions string   `json:"subscriptions,omitempty"`
	Args          []string `json:"args"`
	Result        string   `json:"result"`
	ExitCode      int      `json:"exitCode"`
	DurationMs    int64    `json:"durationMs"`
}

// BuildEvent constructs a run event from the process arguments and outcome.
func BuildEvent(args []string, result string, exitCode int, duration time.Duration) Event {
	return Event{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Operation:     inferOperation(args),
		Subscriptions: inferSubscriptions(args),
		Args:          args,
		Result:        result,
		ExitCode:      exitCode,
		DurationMs:    duration.Milliseconds(),
	}
}

// Write appends the event to the user run log.
func Write(event Event) error {
	path, err := logPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// Read returns all recorded run events, oldest first.
// Malformed lines are skipped.
func Read() ([]Event, error) {
	path, err := logPath()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var out []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event Event
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			out = append(out, event)
		}
	}
	return out, scanner.Err()
}

func logPath() (string, error) {
	if override := os.Getenv("EGRESSCTL_HISTORY_FILE"); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".egressctl", "history.log"), nil
}

func inferOperation(args []string) string {
	for i := 1; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			return args[i]
		}
	}
	return "root"
}

func inferSubscriptions(args []string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "--subscription" || args[i] == "-s" {
			return args[i+1]
		}
	}
	return ""
}
