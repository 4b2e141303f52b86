package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func TestParseHeadersSkipsMalformedPairs(t *testing.T) {
	got := ParseHeaders(" authorization = Bearer x , broken, =novalue,tenant=csp")
	require.Equal(t, map[string]string{
		"authorization": "Bearer x",
		"tenant":        "csp",
	}, got)
	require.Empty(t, ParseHeaders(""))
}

func TestResourceCarriesServiceAndEnvironment(t *testing.T) {
	res, err := Resource("csphered", "staging")
	require.NoError(t, err)
	service, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	require.Equal(t, "csphered", service.AsString())
	env, ok := res.Set().Value(semconv.DeploymentEnvironmentKey)
	require.True(t, ok)
	require.Equal(t, "staging", env.AsString())
}

func TestInitRequiresServiceName(t *testing.T) {
	_, err := Init(context.Background(), Config{})
	require.Error(t, err)
}
