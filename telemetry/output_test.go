package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/volume"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	require.Nil(t, om, "empty dir disables output")

	// Nil manager is a no-op
	assert.NoError(t, om.WritePerf(PerfStats{}, 1))
	assert.NoError(t, om.WriteFieldStats(FieldStatsCSV{}))
	assert.Empty(t, om.Dir())
	assert.NoError(t, om.Close())
}

func TestOutputManager_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, om.Dir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))

	field := &volume.DensityField{Size: 2, Data: []uint8{0, 0, 0, 0, 255, 255, 255, 255}}
	rec := NewFieldStatsCSV(cfg, volume.Summarize(field, 0.25), 12)
	require.NoError(t, om.WriteFieldStats(rec))

	for tick := uint64(1); tick <= 3; tick++ {
		require.NoError(t, om.WritePerf(PerfStats{AvgTickDuration: time.Millisecond}, tick))
	}
	require.NoError(t, om.Close())

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(perf)), "\n")
	assert.Len(t, lines, 4, "header + 3 rows")
	assert.True(t, strings.HasPrefix(lines[0], "tick,avg_tick_us"), "unexpected header: %s", lines[0])

	fieldCSV, err := os.ReadFile(filepath.Join(dir, "field.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(fieldCSV), "perlin")

	_, err = config.Load(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err, "config snapshot does not reload")
}
