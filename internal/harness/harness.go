package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/airq/internal/answer"
	"github.com/roach88/airq/internal/chat"
	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/history"
	"github.com/roach88/airq/internal/metrics"
	"github.com/roach88/airq/internal/movement"
	"github.com/roach88/airq/internal/nlu"
	"github.com/roach88/airq/internal/ranking"
	"github.com/roach88/airq/internal/resolver"
	"github.com/roach88/airq/internal/store"
	"github.com/roach88/airq/internal/testutil"
)

// epoch is the first timestamp written to the conversation log.
var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// scriptedParser replays the parameter records of a scenario in order.
type scriptedParser struct {
	mu   sync.Mutex
	next [][]byte
}

func (p *scriptedParser) push(raw []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next = append(p.next, raw)
}

// Parse decodes the next scripted record. A missing or undecodable record
// yields an empty intent, as the model client does once retries run out.
func (p *scriptedParser) Parse(ctx context.Context, question string) (compiler.Intent, error) {
	if err := ctx.Err(); err != nil {
		return compiler.Intent{}, err
	}

	p.mu.Lock()
	var raw []byte
	if len(p.next) > 0 {
		raw, p.next = p.next[0], p.next[1:]
	}
	p.mu.Unlock()

	if raw == nil {
		return compiler.Intent{}, nil
	}
	intent, err := nlu.Decode(raw)
	if err != nil {
		return compiler.Intent{}, nil
	}
	return intent, nil
}

// Harness holds one scenario's pipeline.
type Harness struct {
	service  *chat.Service
	parser   *scriptedParser
	history  *history.Store
	registry *prometheus.Registry
}

// newHarness builds a pipeline over a fresh data directory and
// conversation log. Both live under t's temp dirs.
func newHarness(t testing.TB, s *Scenario) (*Harness, error) {
	t.Helper()

	dir := t.TempDir()
	if len(s.Data) > 0 {
		records := make([]movement.Record, len(s.Data))
		for i, r := range s.Data {
			records[i] = r.Movement()
		}
		testutil.WritePartition(t, dir, "part-0000.parquet", records...)
	}

	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"),
		history.WithClock(testutil.NewStepClock(epoch, time.Second)))
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	t.Cleanup(func() { h.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	res := resolver.New()
	engine := ranking.New(store.New(dir, store.WithLogger(logger)), ranking.WithLogger(logger))

	harness := &Harness{
		parser:   &scriptedParser{},
		history:  h,
		registry: reg,
	}

	opts := []chat.Option{
		chat.WithHistory(h),
		chat.WithMetrics(metrics.New(reg)),
		chat.WithIDGenerator(testutil.NewFixedIDGenerator("scenario-" + s.Name)),
		chat.WithLogger(logger),
	}
	if !s.NoParser {
		opts = append(opts, chat.WithParser(harness.parser))
	}
	harness.service = chat.New(compiler.New(res), engine, answer.New(res), opts...)
	return harness, nil
}

// Run plays a scenario and returns the result.
//
// Each scenario runs against its own data directory and conversation
// log. Expect clauses and assertion failures are collected in the result;
// the error return is reserved for setup failures.
func Run(t testing.TB, scenario *Scenario) (*Result, error) {
	t.Helper()

	h, err := newHarness(t, scenario)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	result := NewResult()

	for i, turn := range scenario.Turns {
		if turn.Parsed != nil {
			raw, err := json.Marshal(turn.Parsed)
			if err != nil {
				return nil, fmt.Errorf("turns[%d]: encode parsed: %w", i, err)
			}
			h.parser.push(raw)
		} else {
			h.parser.push(nil)
		}

		reply := h.service.Ask(ctx, turn.Question)
		result.AddTurn(TurnRecord{
			Question:  turn.Question,
			Kind:      string(reply.Kind),
			Shape:     reply.Shape,
			Text:      reply.Text,
			RequestID: reply.RequestID,
		})

		for _, msg := range checkExpect(turn.Expect, reply) {
			result.AddError(fmt.Sprintf("turns[%d] %q: %s", i, turn.Question, msg))
		}
	}

	actx := &AssertionContext{
		Ctx:      ctx,
		History:  h.history,
		Registry: h.registry,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// checkExpect compares a reply against an expect clause.
func checkExpect(e *Expect, reply chat.Reply) []string {
	if e == nil {
		return nil
	}

	var errs []string
	if string(reply.Kind) != e.Kind {
		errs = append(errs, fmt.Sprintf("kind: expected %s, got %s (%s)", e.Kind, reply.Kind, reply.Text))
	}
	if e.Shape != "" && reply.Shape != e.Shape {
		errs = append(errs, fmt.Sprintf("shape: expected %s, got %q", e.Shape, reply.Shape))
	}
	for _, want := range e.Contains {
		if !strings.Contains(reply.Text, want) {
			errs = append(errs, fmt.Sprintf("text does not contain %q: %s", want, reply.Text))
		}
	}
	if e.Text != "" && reply.Text != e.Text {
		errs = append(errs, fmt.Sprintf("text: expected %q, got %q", e.Text, reply.Text))
	}
	return errs
}
