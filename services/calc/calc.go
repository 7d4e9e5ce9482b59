// Package calc is the integer calculator sub-application: two numbers, one
// operator from {+ - * /}, 32-bit signed arithmetic with wraparound.
package calc

import (
	"context"

	"deviceconsole-go/errcode"
	"deviceconsole-go/services/prompt"
	"deviceconsole-go/signal"
	"deviceconsole-go/x/fmtx"
)

const (
	firstPrompt  = "\r\n\nThis is a calculator sub-application\r\nEnter the first integer = "
	secondPrompt = "\r\n\nEnter the second integer = "
	opPrompt     = "\r\n\nEnter the operator (+ - * /) = "
	resultMsg    = "\r\n\nThe calculated integer is %d"
	badOperator  = "\r\nError: Unrecognized mathematical operator selected\r\n"
	divByZero    = "\r\nError: Division by zero is not allowed\r\n"
)

type Service struct {
	io   prompt.IO
	run  *signal.Note
	done *signal.Note
}

func New(io prompt.IO, run, done *signal.Note) *Service {
	return &Service{io: io, run: run, done: done}
}

func (s *Service) Start(ctx context.Context) {
	go func() {
		if !s.run.Wait(ctx) {
			return
		}
		for {
			if quit := s.session(ctx); quit {
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

// session runs one calculation. Any timeout or invalid step abandons it and
// the next session starts from the first prompt.
func (s *Service) session(ctx context.Context) (quit bool) {
	const maxI32 = 1<<31 - 1

	a, res, ok := s.io.Number(ctx, firstPrompt, 0, maxI32)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}

	b, res, ok := s.io.Number(ctx, secondPrompt, 0, maxI32)
	if res.Quit {
		return true
	}
	if !ok {
		return false
	}

	res = s.io.Line(ctx, opPrompt)
	if res.Quit {
		return true
	}
	if !res.OK {
		return false
	}

	var op byte
	if len(res.Text) > 0 {
		op = res.Text[0]
	}
	out, err := Apply(a, b, op)
	if err != nil {
		switch errcode.Of(err) {
		case errcode.DivideByZero:
			s.io.W.Post(divByZero)
		default:
			s.io.W.Post(badOperator)
		}
		return false
	}
	s.io.W.Post(fmtx.Sprintf(resultMsg, out))
	return false
}

// Apply evaluates a <op> b in int32 semantics; overflow wraps. Division by
// zero is reported, not trapped.
func Apply(a, b int32, op byte) (int32, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, &errcode.E{C: errcode.DivideByZero, Op: "calc.Apply", Msg: "division by zero"}
		}
		return a / b, nil
	default:
		return 0, &errcode.E{C: errcode.Unrecognized, Op: "calc.Apply", Msg: "unknown operator"}
	}
}
