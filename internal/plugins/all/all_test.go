package all

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gocalc/internal/plugin"
)

func TestAllPluginsRegistered(t *testing.T) {
	names := make([]string, 0, 8)
	for _, d := range plugin.Default.Descriptors() {
		names = append(names, d.Name)
		require.NotEmpty(t, d.Summary, "plugin %s has no summary", d.Name)
	}
	require.Equal(t, []string{
		"addition", "clearhistory", "division", "exit",
		"menu", "multiplication", "showhistory", "subtraction",
	}, names)
}
