package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"time"
)

var (
	// ErrPredictionTimeout means the prediction process exceeded its
	// deadline and was killed.
	ErrPredictionTimeout = errors.New("prediction process timed out")

	// ErrInvalidOutput means the process terminated but its stdout was not
	// a JSON document.
	ErrInvalidOutput = errors.New("invalid JSON from prediction process")

	// ErrOutputTooLarge means stdout exceeded the buffer cap and the
	// process was killed.
	ErrOutputTooLarge = errors.New("prediction output exceeds size limit")
)

// maxOutputBytes caps how much stdout is buffered from the child process.
const maxOutputBytes = 10 << 20

// Predictor runs the external prediction script against a stored image and
// relays its stdout. One child process is spawned per call.
type Predictor struct {
	pythonBin string
	script    string
	timeout   time.Duration
}

// NewPredictor creates a Predictor for the given interpreter and script.
func NewPredictor(pythonBin, script string, timeout time.Duration) *Predictor {
	return &Predictor{
		pythonBin: pythonBin,
		script:    script,
		timeout:   timeout,
	}
}

// Run invokes the script with imagePath as its sole argument, buffers stdout
// until the stream closes, and returns it once validated as JSON. Stderr is
// logged, never returned. The process is killed on deadline or when stdout
// exceeds the cap.
func (p *Predictor) Run(ctx context.Context, imagePath string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.pythonBin, p.script, imagePath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start prediction process: %w", err)
	}

	output, readErr := io.ReadAll(io.LimitReader(stdout, maxOutputBytes+1))

	if len(output) > maxOutputBytes {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, ErrOutputTooLarge
	}

	waitErr := cmd.Wait()

	if stderr.Len() > 0 {
		log.Printf("prediction stderr: %s", stderr.String())
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, ErrPredictionTimeout
	}
	if readErr != nil {
		return nil, fmt.Errorf("read prediction output: %w", readErr)
	}

	output = bytes.TrimSpace(output)
	if !json.Valid(output) {
		log.Printf("prediction emitted invalid JSON: %q", string(output))
		if waitErr != nil {
			log.Printf("prediction process exit: %v", waitErr)
		}
		return nil, ErrInvalidOutput
	}

	return output, nil
}
