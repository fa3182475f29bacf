package server

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/srcspell/srcspell/internal/logger"
	"github.com/srcspell/srcspell/pkg/checker"
)

// Server handles the IPC for spell check requests.
type Server struct {
	pipeline *checker.Pipeline
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
	log      *log.Logger
}

// NewServer creates a check server using stdin/stdout for IPC.
func NewServer(pipeline *checker.Pipeline) *Server {
	return NewServerWithIO(pipeline, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a check server on the given streams.
func NewServerWithIO(pipeline *checker.Pipeline, r io.Reader, w io.Writer) *Server {
	return &Server{
		pipeline: pipeline,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
		log:      logger.New("ipc"),
	}
}

// Start begins listening for IPC requests. It returns nil when the client
// closes stdin and the context error when the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting server.")

	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var req CheckRequest
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			continue
		}
		s.handleCheck(ctx, req)
	}
}

// handleCheck runs one buffer through the pipeline and responds with its
// diagnostics.
func (s *Server) handleCheck(ctx context.Context, req CheckRequest) {
	if req.Path == "" {
		s.sendError(req.ID, "missing 'p' field", 400)
		s.log.Debug("Path is empty in request")
		return
	}

	start := time.Now()
	res, err := s.pipeline.Check(ctx, []checker.File{{Path: req.Path, Content: req.Content}})
	elapsed := time.Since(start)
	if err != nil {
		s.sendError(req.ID, err.Error(), 500)
		return
	}
	if len(res.Errors) > 0 {
		s.sendError(req.ID, res.Errors[0].Error(), 422)
		return
	}

	diags := res.Diagnostics
	if diags == nil {
		diags = []checker.Diagnostic{}
	}
	s.sendResponse(CheckResponse{
		ID:          req.ID,
		Diagnostics: diags,
		Count:       len(diags),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) sendResponse(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
