package chat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airq/internal/answer"
	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/history"
	"github.com/roach88/airq/internal/metrics"
	"github.com/roach88/airq/internal/ranking"
	"github.com/roach88/airq/internal/resolver"
	"github.com/roach88/airq/internal/store"
	airqtest "github.com/roach88/airq/internal/testutil"
)

type stubParser struct {
	intent compiler.Intent
	err    error
	calls  int
}

func (p *stubParser) Parse(ctx context.Context, question string) (compiler.Intent, error) {
	p.calls++
	return p.intent, p.err
}

type failingRunner struct{ err error }

func (f failingRunner) Run(ctx context.Context, plan compiler.Plan) (ranking.Result, error) {
	return nil, f.err
}

func intPtr(v int) *int {
	return &v
}

type fixture struct {
	svc     *Service
	history *history.Store
	reg     *prometheus.Registry
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, runner Runner, opts ...Option) fixture {
	t.Helper()
	res := resolver.New()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	base := []Option{
		WithHistory(h),
		WithMetrics(m),
		WithIDGenerator(airqtest.NewFixedIDGenerator("req-1")),
	}
	svc := New(compiler.New(res), runner, answer.New(res), append(base, opts...)...)
	return fixture{svc: svc, history: h, reg: reg, metrics: m}
}

func dataEngine(t *testing.T) *ranking.Engine {
	t.Helper()
	dir := airqtest.PartitionDir(t,
		airqtest.Passengers("SBRF", 2023, 1, "AZU", 12000),
		airqtest.Passengers("SBRF", 2023, 2, "GLO", 8000),
		airqtest.Passengers("SBGR", 2023, 1, "TAM", 50000),
	)
	return ranking.New(store.New(dir))
}

func TestAsk_Answer(t *testing.T) {
	parser := &stubParser{intent: compiler.Intent{Airport: "Recife", Year: intPtr(2023)}}
	f := newFixture(t, dataEngine(t), WithParser(parser))
	ctx := context.Background()

	reply := f.svc.Ask(ctx, "Quantos passageiros em Recife em 2023?")
	assert.Equal(t, KindAnswer, reply.Kind)
	assert.Equal(t, string(compiler.ShapeVolume), reply.Shape)
	assert.Equal(t, "req-1", reply.RequestID)
	assert.Equal(t, "Em 2023, o aeroporto de Recife movimentou um total de **20.000** passageiros.", reply.Text)
	require.IsType(t, ranking.VolumeResult{}, reply.Result)

	turns, err := f.history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "req-1", turns[0].RequestID)
	assert.Equal(t, "answer", turns[0].Kind)
	assert.Equal(t, reply.Text, turns[0].Response)

	n, err := testutil.GatherAndCount(f.reg, "airq_queries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAsk_MetricsLabelledByReplyKind(t *testing.T) {
	parser := &stubParser{intent: compiler.Intent{Airport: "Recife", Year: intPtr(2023)}}
	f := newFixture(t, dataEngine(t), WithParser(parser))
	ctx := context.Background()

	first := f.svc.Ask(ctx, "Quantos passageiros em Recife em 2023?")
	parser.intent = compiler.Intent{}
	second := f.svc.Ask(ctx, "oi")

	want := fmt.Sprintf(`
# HELP airq_queries_total Total number of answered turns by query shape and outcome.
# TYPE airq_queries_total counter
airq_queries_total{outcome=%q,shape="volume"} 1
airq_queries_total{outcome=%q,shape="none"} 1
`, first.Kind, second.Kind)
	assert.NoError(t, testutil.GatherAndCompare(f.reg, strings.NewReader(want), "airq_queries_total"))
	assert.Equal(t, KindAnswer, first.Kind)
	assert.Equal(t, KindClarification, second.Kind)
}

func TestAsk_Ranking(t *testing.T) {
	parser := &stubParser{intent: compiler.Intent{BusiestAirport: true}}
	f := newFixture(t, dataEngine(t), WithParser(parser))

	reply := f.svc.Ask(context.Background(), "Qual o aeroporto mais movimentado?")
	assert.Equal(t, KindAnswer, reply.Kind)
	assert.Contains(t, reply.Text, "**Guarulhos**")
	assert.Contains(t, reply.Text, "**50.000**")
}

func TestAsk_Clarification(t *testing.T) {
	f := newFixture(t, dataEngine(t), WithParser(&stubParser{}))
	ctx := context.Background()

	reply := f.svc.Ask(ctx, "oi")
	assert.Equal(t, KindClarification, reply.Kind)
	assert.Empty(t, reply.Shape)
	assert.Contains(t, reply.Text, "Não consegui extrair")

	turns, err := f.history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "clarification", turns[0].Kind)
}

func TestAsk_NotFound(t *testing.T) {
	parser := &stubParser{intent: compiler.Intent{Airport: "Recife", Year: intPtr(1999)}}
	f := newFixture(t, dataEngine(t), WithParser(parser))

	reply := f.svc.Ask(context.Background(), "Passageiros em Recife em 1999?")
	assert.Equal(t, KindNotFound, reply.Kind)
	assert.Contains(t, reply.Text, "ano: 1999")
	assert.Nil(t, reply.Result)
}

func TestAsk_DataUnavailable(t *testing.T) {
	parser := &stubParser{intent: compiler.Intent{BusiestAirport: true}}
	f := newFixture(t, ranking.New(store.New(t.TempDir())), WithParser(parser))

	reply := f.svc.Ask(context.Background(), "Qual o aeroporto mais movimentado?")
	assert.Equal(t, KindNotFound, reply.Kind)
	assert.Equal(t, answer.DataUnavailable(), reply.Text)
}

func TestAsk_ExecutionErrorHidesDetails(t *testing.T) {
	parser := &stubParser{intent: compiler.Intent{BusiestAirport: true}}
	f := newFixture(t, failingRunner{err: errors.New("no such column: SECRET")}, WithParser(parser))

	reply := f.svc.Ask(context.Background(), "Qual o aeroporto mais movimentado?")
	assert.Equal(t, KindError, reply.Kind)
	assert.Equal(t, answer.Failure(), reply.Text)
	assert.NotContains(t, reply.Text, "SECRET")
}

func TestAsk_NoParser(t *testing.T) {
	f := newFixture(t, dataEngine(t))
	ctx := context.Background()

	reply := f.svc.Ask(ctx, "qualquer coisa")
	assert.Equal(t, KindUnavailable, reply.Kind)
	assert.Equal(t, answer.Unavailable(), reply.Text)

	turns, err := f.history.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, turns, 1)
}

func TestAsk_ParserAborted(t *testing.T) {
	parser := &stubParser{err: context.Canceled}
	f := newFixture(t, dataEngine(t), WithParser(parser))

	reply := f.svc.Ask(context.Background(), "pergunta")
	assert.Equal(t, KindError, reply.Kind)
	assert.Equal(t, 1, parser.calls)
}

func TestRun_BypassesParserAndHistory(t *testing.T) {
	f := newFixture(t, dataEngine(t))
	ctx := context.Background()

	reply := f.svc.Run(ctx, compiler.Intent{TopOperatorPassengers: true, Airport: "SBRF", Year: intPtr(2023)})
	assert.Equal(t, KindAnswer, reply.Kind)
	assert.Contains(t, reply.Text, "**Azul**")

	turns, err := f.history.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestReport(t *testing.T) {
	engine := dataEngine(t)
	f := newFixture(t, engine)
	ctx := context.Background()

	reply := f.svc.Report(ctx, "top_airports", func(ctx context.Context) (ranking.Result, error) {
		return engine.TopAirports(ctx, 2023, ranking.DefaultTopAirports)
	})
	assert.Equal(t, KindAnswer, reply.Kind)
	assert.Equal(t, "top_airports", reply.Shape)
	assert.Contains(t, reply.Text, "1. **Guarulhos**")

	reply = f.svc.Report(ctx, "trends", func(ctx context.Context) (ranking.Result, error) {
		return nil, ranking.ErrNotFound
	})
	assert.Equal(t, KindNotFound, reply.Kind)
	assert.Equal(t, answer.GenericNotFound(), reply.Text)
}
