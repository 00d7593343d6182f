// Package session runs the interactive message protocol: JSON lines in,
// JSON lines out, one message per line.
package session

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tether/internal/analyzer"
	"github.com/jmylchreest/tether/internal/binding"
	"github.com/jmylchreest/tether/internal/scan"
)

// Inbound message types.
const (
	TypeAnalyze        = "analyze"
	TypeConnectElement = "connect-element"
	TypeCreateStyle    = "create-style"
)

// Outbound message types.
const (
	TypeAnalysisResult    = "analysis-result"
	TypeConnectionSuccess = "connection-success"
	TypeStyleCreated      = "style-created"
	TypeError             = "error"
	TypeNoSelection       = "no-selection"
)

// maxLineBytes bounds a single inbound message.
const maxLineBytes = 1 << 20

// Request is a message sent to the session.
type Request struct {
	Type        string    `json:"type"`
	NodeID      string    `json:"nodeId,omitempty"`
	StyleID     string    `json:"styleId,omitempty"`
	ElementType scan.Kind `json:"elementType,omitempty"`
	StyleName   string    `json:"styleName,omitempty"`
	PaintIndex  *int      `json:"paintIndex,omitempty"`
}

// Response is a message emitted by the session. Analysis results carry the
// result fields inline.
type Response struct {
	Type string `json:"type"`
	*analyzer.Result
	NodeID    string `json:"nodeId,omitempty"`
	StyleName string `json:"styleName,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Session connects a message stream to an analyzer and a binder.
type Session struct {
	analyzer *analyzer.Analyzer
	binder   binding.Binder
	logger   hclog.Logger

	mu  sync.Mutex
	enc *json.Encoder
}

// New creates a session writing responses to w.
func New(a *analyzer.Analyzer, binder binding.Binder, w io.Writer) *Session {
	return &Session{
		analyzer: a,
		binder:   binder,
		logger:   hclog.NewNullLogger(),
		enc:      json.NewEncoder(w),
	}
}

// WithLogger sets the session logger.
func (s *Session) WithLogger(logger hclog.Logger) *Session {
	s.logger = logger.Named("session")
	return s
}

// Run reads requests from r until EOF or ctx is cancelled. Analyses run in
// the background; Run returns once the last one has been delivered.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	coalescer := analyzer.NewCoalescer(ctx, s.analyzer, s.deliver)
	defer coalescer.Wait()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.emit(Response{Type: TypeError, Message: fmt.Sprintf("invalid message: %v", err)})
			continue
		}
		s.logger.Debug("request", "type", req.Type, "node", req.NodeID)

		switch req.Type {
		case TypeAnalyze:
			coalescer.Trigger()

		case TypeConnectElement:
			// Writes must not overlap a running analysis of the same document.
			coalescer.Wait()
			if s.connect(ctx, req) {
				coalescer.Trigger()
			}

		case TypeCreateStyle:
			coalescer.Wait()
			if s.createStyle(ctx, req) {
				coalescer.Trigger()
			}

		default:
			s.emit(Response{Type: TypeError, Message: fmt.Sprintf("unknown message type: %q", req.Type)})
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}
	return nil
}

func (s *Session) connect(ctx context.Context, req Request) bool {
	err := s.binder.Connect(ctx, binding.ConnectRequest{
		NodeID:     req.NodeID,
		StyleID:    req.StyleID,
		Kind:       req.ElementType,
		PaintIndex: req.PaintIndex,
	})
	if err != nil {
		s.logger.Debug("connect failed", "node", req.NodeID, "error", err)
		s.emit(Response{Type: TypeError, Message: err.Error()})
		return false
	}

	s.emit(Response{Type: TypeConnectionSuccess, NodeID: req.NodeID})
	return true
}

func (s *Session) createStyle(ctx context.Context, req Request) bool {
	created, err := s.binder.CreateStyle(ctx, binding.CreateStyleRequest{
		NodeID:     req.NodeID,
		Kind:       req.ElementType,
		StyleName:  req.StyleName,
		PaintIndex: req.PaintIndex,
	})
	if err != nil {
		s.logger.Debug("create style failed", "node", req.NodeID, "error", err)
		s.emit(Response{Type: TypeError, Message: err.Error()})
		return false
	}

	s.emit(Response{Type: TypeStyleCreated, NodeID: req.NodeID, StyleName: created.Name})
	return true
}

func (s *Session) deliver(result *analyzer.Result, err error) {
	switch {
	case errors.Is(err, analyzer.ErrNoSelection):
		s.emit(Response{Type: TypeNoSelection})
	case err != nil:
		s.emit(Response{Type: TypeError, Message: err.Error()})
	default:
		s.emit(Response{Type: TypeAnalysisResult, Result: result})
	}
}

func (s *Session) emit(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(resp); err != nil {
		s.logger.Error("failed to write response", "type", resp.Type, "error", err)
	}
}
