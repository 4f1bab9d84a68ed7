package progrock

import (
	"bytes"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/elmpack/internal/core/ports"
)

var _ progrock.Writer = (*LogSink)(nil)

// LogSink is a progrock.Writer that forwards vertex stdout to a logger, one
// line at a time, prefixed with the vertex name. Stderr is not forwarded:
// failures reach the logger through the transform result.
type LogSink struct {
	logger ports.Logger

	mu      sync.Mutex
	names   map[string]string
	pending map[string]*bytes.Buffer
}

// NewLogSink creates a LogSink writing to logger.
func NewLogSink(logger ports.Logger) *LogSink {
	return &LogSink{
		logger:  logger,
		names:   make(map[string]string),
		pending: make(map[string]*bytes.Buffer),
	}
}

// WriteStatus consumes one status update. State for a vertex is dropped once
// it completes.
func (s *LogSink) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.GetVertexes() {
		if v.GetCompleted() == nil {
			s.names[v.GetId()] = v.GetName()
		}
	}

	for _, l := range update.GetLogs() {
		if l.GetStream() != progrock.LogStream_STDOUT {
			continue
		}
		buf, ok := s.pending[l.GetVertex()]
		if !ok {
			buf = new(bytes.Buffer)
			s.pending[l.GetVertex()] = buf
		}
		buf.Write(l.GetData())
		s.flushLines(l.GetVertex(), buf)
	}

	for _, v := range update.GetVertexes() {
		if v.GetCompleted() != nil {
			s.finish(v.GetId())
		}
	}
	return nil
}

// Close forwards any unterminated output.
func (s *LogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.pending {
		s.finish(id)
	}
	return nil
}

func (s *LogSink) flushLines(id string, buf *bytes.Buffer) {
	for {
		i := bytes.IndexByte(buf.Bytes(), '\n')
		if i < 0 {
			return
		}
		line := buf.Next(i + 1)
		s.forward(id, string(bytes.TrimRight(line, "\r\n")))
	}
}

func (s *LogSink) finish(id string) {
	if buf, ok := s.pending[id]; ok && buf.Len() > 0 {
		s.forward(id, buf.String())
	}
	delete(s.pending, id)
	delete(s.names, id)
}

func (s *LogSink) forward(id, line string) {
	if line == "" {
		return
	}
	if name, ok := s.names[id]; ok {
		line = name + ": " + line
	}
	s.logger.Info(line)
}
