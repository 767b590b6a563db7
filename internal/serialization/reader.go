package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadFrom decodes and validates a checkpoint.
func ReadFrom(r io.Reader) (*Checkpoint, error) {
	var ckpt Checkpoint
	if err := json.NewDecoder(r).Decode(&ckpt); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}
	if err := ckpt.Validate(); err != nil {
		return nil, err
	}
	return &ckpt, nil
}

// Load reads and validates the checkpoint at path.
func Load(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint: %w", err)
	}
	defer func() {
		_ = file.Close() // Read-only; close error carries no information
	}()

	ckpt, err := ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ckpt, nil
}
