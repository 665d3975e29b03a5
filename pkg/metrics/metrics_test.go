package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	LoginAttempts.WithLabelValues("success").Inc()
	PostMutations.WithLabelValues("create").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["blog_login_attempts_total"])
	require.True(t, names["blog_post_mutations_total"])

	// registering twice on the same registry must panic
	require.Panics(t, func() { RegisterCollectors(reg) })
}
