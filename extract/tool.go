package extract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ToolExtractor runs an external metadata dumper (e.g. parquet-tools meta)
// against the sample file and scrapes the schema out of its stdout.
type ToolExtractor struct {
	Command string
	Args    []string
}

func (t *ToolExtractor) Extract(ctx context.Context, path string) ([]byte, error) {
	args := append(append([]string{}, t.Args...), path)
	cmd := exec.CommandContext(ctx, t.Command, args...)

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running %s: %w: %s", t.Command, err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("running %s: %w", t.Command, err)
	}

	return findRawSchema(output)
}
