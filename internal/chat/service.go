// Package chat runs one question through the whole pipeline: parse,
// compile, query and render. Every outcome, including failures, becomes a
// Reply with user-facing text.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/airq/internal/answer"
	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/history"
	"github.com/roach88/airq/internal/metrics"
	"github.com/roach88/airq/internal/ranking"
	"github.com/roach88/airq/internal/store"
)

// Kind classifies a reply.
type Kind string

const (
	KindAnswer        Kind = "answer"
	KindClarification Kind = "clarification"
	KindNotFound      Kind = "not_found"
	KindUnavailable   Kind = "unavailable"
	KindError         Kind = "error"
)

// Reply is the outcome of one turn.
type Reply struct {
	Text      string         `json:"text"`
	Kind      Kind           `json:"kind"`
	Shape     string         `json:"shape,omitempty"`
	Result    ranking.Result `json:"result,omitempty"`
	RequestID string         `json:"request_id"`
}

// Parser extracts an intent from a question. *nlu.Client implements it.
type Parser interface {
	Parse(ctx context.Context, question string) (compiler.Intent, error)
}

// Runner executes a compiled plan. *ranking.Engine implements it.
type Runner interface {
	Run(ctx context.Context, plan compiler.Plan) (ranking.Result, error)
}

// Recorder stores answered turns. *history.Store implements it.
type Recorder interface {
	Save(ctx context.Context, requestID, kind, question, response string) (history.Conversation, error)
}

// IDGenerator supplies request ids.
type IDGenerator interface {
	Generate() string
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Service answers questions.
type Service struct {
	compiler *compiler.Compiler
	engine   Runner
	renderer *answer.Renderer

	parser  Parser
	history Recorder
	metrics *metrics.Metrics
	ids     IDGenerator
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithParser enables free-text questions. Without one, Ask replies
// KindUnavailable.
func WithParser(p Parser) Option {
	return func(s *Service) {
		s.parser = p
	}
}

// WithHistory records every Ask turn.
func WithHistory(r Recorder) Option {
	return func(s *Service) {
		s.history = r
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithIDGenerator sets the request id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		s.ids = g
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a Service.
func New(c *compiler.Compiler, engine Runner, renderer *answer.Renderer, opts ...Option) *Service {
	s := &Service{
		compiler: c,
		engine:   engine,
		renderer: renderer,
		ids:      uuidGenerator{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers a free-text question and records the turn.
func (s *Service) Ask(ctx context.Context, question string) Reply {
	id := s.ids.Generate()
	logger := s.logger.With("request_id", id)

	var reply Reply
	if s.parser == nil {
		reply = Reply{Text: answer.Unavailable(), Kind: KindUnavailable, RequestID: id}
		s.observe(logger, "", reply.Kind, 0)
	} else {
		intent, err := s.parser.Parse(ctx, question)
		if err != nil {
			logger.Warn("question parsing aborted", "error", err)
			reply = Reply{Text: answer.Failure(), Kind: KindError, RequestID: id}
			s.observe(logger, "", reply.Kind, 0)
		} else {
			logger.Debug("intent parsed", "intent", intent)
			reply = s.run(ctx, logger, id, intent)
		}
	}

	s.record(ctx, logger, question, reply)
	return reply
}

// Run answers a structured intent, bypassing the parser. Turns are not
// recorded.
func (s *Service) Run(ctx context.Context, intent compiler.Intent) Reply {
	id := s.ids.Generate()
	return s.run(ctx, s.logger.With("request_id", id), id, intent)
}

// ReportFunc produces a result that has no compiled plan, such as trends.
type ReportFunc func(ctx context.Context) (ranking.Result, error)

// Report runs fn with the same error handling, logging and metrics as a
// compiled query. name labels the report in logs and metrics.
func (s *Service) Report(ctx context.Context, name string, fn ReportFunc) Reply {
	id := s.ids.Generate()
	logger := s.logger.With("request_id", id)
	return s.execute(ctx, logger, id, name, fn, answer.GenericNotFound)
}

func (s *Service) run(ctx context.Context, logger *slog.Logger, id string, intent compiler.Intent) Reply {
	plan, err := s.compiler.Compile(intent)
	if err != nil {
		logger.Info("clarification needed", "error", err)
		reply := Reply{Text: s.renderer.Clarify(err), Kind: KindClarification, RequestID: id}
		s.observe(logger, "", reply.Kind, 0)
		return reply
	}

	return s.execute(ctx, logger, id, string(plan.Shape), func(ctx context.Context) (ranking.Result, error) {
		return s.engine.Run(ctx, plan)
	}, func() string {
		return s.renderer.NotFound(plan)
	})
}

func (s *Service) execute(ctx context.Context, logger *slog.Logger, id, shape string, fn ReportFunc, notFound func() string) Reply {
	logger = logger.With("shape", shape)
	start := time.Now()
	res, err := fn(ctx)
	elapsed := time.Since(start)

	reply := Reply{Shape: shape, RequestID: id}
	switch {
	case err == nil:
		reply.Kind, reply.Text, reply.Result = KindAnswer, s.renderer.Render(res), res
	case store.IsDataUnavailable(err):
		logger.Warn("movement data unavailable", "error", err)
		reply.Kind, reply.Text = KindNotFound, answer.DataUnavailable()
	case errors.Is(err, ranking.ErrNotFound):
		reply.Kind, reply.Text = KindNotFound, notFound()
	default:
		logger.Error("query execution failed", "error", err, "elapsed", elapsed)
		reply.Kind, reply.Text = KindError, answer.Failure()
	}

	s.observe(logger, shape, reply.Kind, elapsed)
	return reply
}

func (s *Service) observe(logger *slog.Logger, shape string, kind Kind, elapsed time.Duration) {
	s.metrics.Observe(shape, string(kind), elapsed)
	logger.Info("turn answered", "kind", kind, "elapsed", elapsed)
}

func (s *Service) record(ctx context.Context, logger *slog.Logger, question string, r Reply) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Save(ctx, r.RequestID, string(r.Kind), question, r.Text); err != nil {
		logger.Warn("history not saved", "error", err)
	}
}
