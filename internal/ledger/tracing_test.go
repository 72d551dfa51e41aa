package ledger

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/khushthecoder/Expense-Splitter/internal/metrics"
)

func TestMutationsAreTracedAndCounted(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reg := prometheus.NewRegistry()
	mt, err := metrics.New(reg)
	require.NoError(t, err)

	f := newFixture(t, WithTracer(tp.Tracer("test")), WithMetrics(mt))

	_, err = f.manager.CreateSettlement(context.Background(), SettlementInput{
		GroupID: f.group.ID, PaidBy: f.a.ID, PaidTo: f.a.ID, Amount: dec("1"),
	})
	require.ErrorIs(t, err, ErrSameParty)

	var found bool
	for _, span := range rec.Ended() {
		if span.Name() != "ledger.CreateSettlement" {
			continue
		}
		found = true
		assert.Equal(t, codes.Error, span.Status().Code)

		var kind string
		for _, attr := range span.Attributes() {
			if attr.Key == "ledger.error_kind" {
				kind = attr.Value.AsString()
			}
		}
		assert.Equal(t, string(KindSameParty), kind)
	}
	assert.True(t, found, "expected a ledger.CreateSettlement span")

	// create_user/ok, create_group/ok and create_settlement/same_party.
	count, err := testutil.GatherAndCount(reg, "expense_splitter_ledger_mutations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = f.manager.GroupBalances(context.Background(), f.group.ID)
	require.NoError(t, err)
	count, err = testutil.GatherAndCount(reg, "expense_splitter_balance_computation_entries")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
