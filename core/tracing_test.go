package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"connectsphere/storage"
)

func TestOperationsOpenOneSpanEach(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	node, err := NewNode(storage.NewMemDB(), Options{
		HoldingAccount: holding,
		TracerProvider: provider,
		Now:            func() int64 { return 0 },
	})
	require.NoError(t, err)
	defer node.Close()

	require.NoError(t, node.Mint(creator, big.NewInt(10)))
	require.Error(t, node.Transfer(creator, viewer, big.NewInt(11)))
	_, err = node.BalanceOf(creator)
	require.NoError(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 2, "reads are not traced")
	require.Equal(t, "token.mint", ended[0].Name())
	require.Equal(t, otelcodes.Unset, ended[0].Status().Code)

	require.Equal(t, "token.transfer", ended[1].Name())
	require.Equal(t, otelcodes.Error, ended[1].Status().Code)
	require.Equal(t, "insufficient_funds", ended[1].Status().Description)

	var opID string
	for _, kv := range ended[0].Attributes() {
		if string(kv.Key) == "op.id" {
			opID = kv.Value.AsString()
		}
	}
	require.NotEmpty(t, opID)
}
