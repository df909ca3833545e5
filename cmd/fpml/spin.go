package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Spinner struct {
	frames  []string
	message string
	out     io.Writer

	stop   sync.Once
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewSpinner(w io.Writer, msg string) *Spinner {
	msg = strings.TrimSpace(msg)
	msg = strings.TrimRight(msg, ".")
	return &Spinner{
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: msg,
		out:     w,
		ticker:  time.NewTicker(time.Millisecond * 90),
		done:    make(chan struct{}),
	}
}

// Run shows the spinner until fn returns.
func (s *Spinner) Run(fn func() error) error {
	s.wg.Add(1)
	go s.run()
	defer s.Stop()
	return fn()
}

func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.done)
		s.ticker.Stop()
		s.wg.Wait()
		io.WriteString(s.out, "\x1b[0G\x1b[2K\x1b[0G")
	})
}

func (s *Spinner) run() {
	defer s.wg.Done()
	for i := 0; ; i++ {
		select {
		case <-s.ticker.C:
			f := s.frames[i%len(s.frames)]
			fmt.Fprintf(s.out, "\r%s", f)
			if s.message != "" && i == 0 {
				fmt.Fprintf(s.out, " %s...", s.message)
			}
		case <-s.done:
			return
		}
	}
}
