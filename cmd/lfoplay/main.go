//go:build !headless

// Command lfoplay plays a test oscillator through the LFO-modulated filter
// on the default audio device.
//
// Usage:
//
//	lfoplay [flags]
//
// Examples:
//
//	lfoplay -type Bandpass -q 4 -rate 0.25 -depth 1
//	lfoplay -osc noise -waveform random -temposync -bpm 128
//
// While playing, typing a tempo in BPM and pressing enter retunes the
// transport; "stop" removes the tempo.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	ossignal "os/signal"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-lfofilter/internal/cli"
)

const statusInterval = 250 * time.Millisecond

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", log.LstdFlags)
	if o.verbose {
		logger.SetOutput(os.Stderr)
		cli.LogFeatures(logger)
	}

	sess, err := newSession(o)
	if err != nil {
		return err
	}
	cli.LogParameters(logger, sess.store.Snapshot())

	out, err := newDeviceOutput(o.rate, o.channels, time.Duration(o.bufferMs)*time.Millisecond, sess.stream)
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	defer out.Close()

	logger.Printf("Playing %s at %d Hz, %d channels, block %d", o.osc, o.rate, o.channels, o.blockSize)
	out.Start()

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	var commands <-chan string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		commands = readLines(os.Stdin)
	}

	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if interactive {
				fmt.Println()
			}
			return nil
		case line, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if err := sess.command(line); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			logger.Printf("Tempo command %q applied", line)
		case <-ticker.C:
			if err := out.Err(); err != nil {
				return fmt.Errorf("audio device: %w", err)
			}
			if interactive {
				fmt.Printf("\r%s", sess.status())
			}
			if sess.done() {
				if interactive {
					fmt.Println()
				}
				logger.Printf("Stopped after %.1f s, %d failed blocks", sess.elapsedSeconds(), sess.stream.Failures())
				return nil
			}
		}
	}
}

// readLines forwards lines from r until it is exhausted.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	return lines
}
