package xsd

import (
	"io"
	"log/slog"
	"os"
)

type Tracer interface {
	Enter(string)
	Leave(string, int)
	Skip(string)
	Error(string, error)
}

func NoopTracer() Tracer {
	return discardTracer{}
}

type discardTracer struct{}

func (_ discardTracer) Enter(_ string)          {}
func (_ discardTracer) Leave(_ string, _ int)   {}
func (_ discardTracer) Skip(_ string)           {}
func (_ discardTracer) Error(_ string, _ error) {}

type stdioTracer struct {
	logger *slog.Logger
	depth  int
}

func TraceStderr() Tracer {
	return TraceWriter(os.Stderr)
}

func TraceWriter(w io.Writer) Tracer {
	tracer := stdioTracer{
		logger: stdioLogger(w),
	}
	return &tracer
}

func stdioLogger(w io.Writer) *slog.Logger {
	opts := slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

func (t *stdioTracer) Enter(file string) {
	t.depth++
	t.logger.Debug("start schema", "file", file, "depth", t.depth)
}

func (t *stdioTracer) Leave(file string, count int) {
	t.logger.Info("done schema", "file", file, "depth", t.depth, "elements", count)
	t.depth--
}

func (t *stdioTracer) Skip(file string) {
	t.logger.Debug("schema already processed", "file", file, "depth", t.depth)
}

func (t *stdioTracer) Error(file string, err error) {
	t.logger.Error("fail to load schema", "file", file, "depth", t.depth, "err", err.Error())
	t.depth--
}
