// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui renders lightweight terminal progress while a scan walks a
// program's subcommand tree.
package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated progress line on a terminal. Update may be
// called from multiple goroutines.
type Spinner struct {
	out      io.Writer
	interval time.Duration
	paint    *color.Color

	mu      sync.Mutex
	msg     string
	idx     int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{
		out:      out,
		interval: 120 * time.Millisecond,
		paint:    color.New(color.FgCyan),
	}
}

func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	if s.running {
		s.msg = msg
		s.mu.Unlock()
		return
	}
	s.running = true
	s.msg = msg
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	s.renderFrame(0, msg)
	go s.loop()
}

func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	running := s.running
	idx := s.idx
	s.mu.Unlock()
	if !running {
		return
	}
	s.renderFrame(idx, msg)
}

// Stop ends the animation, clearing the line when clear is set.
func (s *Spinner) Stop(clear bool) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stopCh := s.stopCh
	doneCh := s.doneCh
	s.running = false
	s.mu.Unlock()

	close(stopCh)
	<-doneCh

	if clear {
		fmt.Fprint(s.out, "\r\033[K")
	} else {
		fmt.Fprintln(s.out)
	}
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			close(s.doneCh)
			return
		}
	}
}

func (s *Spinner) tick() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.idx = (s.idx + 1) % len(spinnerFrames)
	idx := s.idx
	msg := s.msg
	s.mu.Unlock()

	s.renderFrame(idx, msg)
}

func (s *Spinner) renderFrame(idx int, msg string) {
	line := s.paint.Sprint(spinnerFrames[idx%len(spinnerFrames)])
	if msg != "" {
		line += " " + msg
	}
	fmt.Fprintf(s.out, "\r\033[K%s", line)
}
