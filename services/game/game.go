// Package game is the guess-a-number sub-application. Each round it picks a
// number in [0, max], answers too high / too low per guess, and reports the
// attempt count on success.
package game

import (
	"context"
	"math/rand"

	"deviceconsole-go/services/prompt"
	"deviceconsole-go/signal"
	"deviceconsole-go/x/fmtx"
)

const (
	banner  = "\r\n\nThis is a game sub-application"
	ask     = "\r\nGuess a number between 0 to %d: "
	tooHigh = "\r\n\nYou guessed too high\r\n"
	tooLow  = "\r\n\nYou guessed too low\r\n"
	correct = "\r\n\nYou guessed the correct number!\r\nIt took you %d attempt(s) to guess the number!"
)

type Service struct {
	io   prompt.IO
	run  *signal.Note
	done *signal.Note
	max  int32

	// pick returns the round's target; swappable so a round is
	// deterministic under test.
	pick func(max int32) int32
}

func New(io prompt.IO, run, done *signal.Note, max int32) *Service {
	if max <= 0 {
		max = 25
	}
	return &Service{
		io:   io,
		run:  run,
		done: done,
		max:  max,
		pick: func(max int32) int32 { return rand.Int31n(max + 1) },
	}
}

// Start launches the game task. It blocks on its run notification until the
// dispatcher hands it the console, and hands back on quit.
func (s *Service) Start(ctx context.Context) {
	go func() {
		if !s.run.Wait(ctx) {
			return
		}
		for {
			if quit := s.round(ctx); quit {
				s.done.Notify()
				if !s.run.Wait(ctx) {
					return
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

// round plays one game. It returns true when the user quit; a timeout or an
// invalid guess ends the round and a fresh number is picked.
func (s *Service) round(ctx context.Context) (quit bool) {
	target := s.pick(s.max)
	attempts := 0

	text := banner + fmtx.Sprintf(ask, s.max)
	for {
		guess, res, ok := s.io.Number(ctx, text, 0, 1<<31-1)
		if res.Quit {
			return true
		}
		if !ok {
			return false
		}
		attempts++
		if guess == target {
			s.io.W.Post(fmtx.Sprintf(correct, attempts))
			return false
		}
		if guess > target {
			s.io.W.Post(tooHigh)
		} else {
			s.io.W.Post(tooLow)
		}
		text = fmtx.Sprintf(ask, s.max)
	}
}
