// Package muxer builds and supervises the ffmpeg subprocess that muxes
// the chosen stream URLs into a single output container on stdout.
package muxer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/utils"
)

// Invocation describes one muxing run. Inputs are ordered: the audio
// input precedes the video input when both are given, because the muxer
// maps input streams to output tracks positionally.
type Invocation struct {
	Inputs     []string
	Details    models.VideoDetails
	Container  string
	StreamCopy bool
}

// Args renders the subprocess argument list. The subprocess fetches the
// input URLs itself with reconnect enabled, embeds the video metadata
// into the output and writes the container to stdout.
func (inv Invocation) Args() []string {
	args := []string{"-hide_banner"}

	for _, input := range inv.Inputs {
		args = append(args, "-reconnect", "1", "-reconnect_streamed", "1", "-i", input)
	}

	// Calendar date only: the publish date is truncated to its first ten
	// characters, dropping time-of-day.
	date := inv.Details.PublishDate
	if len(date) > 10 {
		date = date[:10]
	}
	args = append(args,
		"-metadata", "title="+inv.Details.Title,
		"-metadata", "artist="+inv.Details.Channel,
		"-metadata", "date="+date,
		"-metadata", fmt.Sprintf("duration=%d", inv.Details.DurationSeconds),
	)

	if inv.StreamCopy {
		args = append(args, "-c", "copy")
	}

	return append(args, "-f", inv.Container, "-")
}

// Timeout is the hard deadline for the subprocess. Stream-copy muxing
// finishes much faster than playback duration, so running longer than the
// media indicates a hung or stalled subprocess.
func (inv Invocation) Timeout() time.Duration {
	if inv.Details.DurationSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(inv.Details.DurationSeconds) * time.Second
}

type Invoker struct {
	binary string
}

func NewInvoker(binary string) *Invoker {
	return &Invoker{binary: binary}
}

// Process is a live muxing subprocess. Stdout is the muxed byte stream;
// the process dies with an unrecoverable kill when its context is
// cancelled or its timeout elapses.
type Process struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	Stdout io.ReadCloser
}

// Start spawns the subprocess. The returned process is bound to ctx:
// cancelling it (client disconnect) kills the subprocess immediately.
func (m *Invoker) Start(ctx context.Context, inv Invocation) (*Process, error) {
	if len(inv.Inputs) == 0 || len(inv.Inputs) > 2 {
		return nil, fmt.Errorf("muxer: expected 1 or 2 inputs, got %d", len(inv.Inputs))
	}

	ctx, cancel := context.WithTimeout(ctx, inv.Timeout())

	cmd := exec.CommandContext(ctx, m.binary, inv.Args()...)
	// SIGKILL, never a graceful terminate: a stalled subprocess ignoring
	// signals must not survive its consumer.
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
	cmd.Stdin = nil
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("muxer: stdout pipe: %w", err)
	}

	utils.LogInfo(ctx, "Starting muxer subprocess", utils.Fields{
		"inputs":    len(inv.Inputs),
		"container": inv.Container,
		"timeout":   inv.Timeout().String(),
	})

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("muxer: start: %w", err)
	}

	return &Process{cmd: cmd, cancel: cancel, Stdout: stdout}, nil
}

// Wait blocks until the subprocess exits and releases its resources.
func (p *Process) Wait() error {
	err := p.cmd.Wait()
	p.cancel()
	return err
}

// Kill forcibly terminates the subprocess. Safe to call after Wait.
func (p *Process) Kill() {
	p.cancel()
}
