package bench

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReport_MirrorsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	var out bytes.Buffer
	r, err := NewReport(path, &out, fixedNow())
	require.NoError(t, err)
	r.Logf("[INSERT] wrote %d rows: %d ms", 10, 3)
	r.Table([]string{"Operation", "Count"}, [][]string{{"mysql.select", "1"}})
	r.Table([]string{"Operation"}, nil)
	require.NoError(t, r.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)
	require.NotContains(t, content, "stale content")
	require.Contains(t, content, "=== Store benchmark report ===")
	require.Contains(t, content, "Date: 2025-03-01T12:00:00Z")
	require.Contains(t, content, "[INSERT] wrote 10 rows: 3 ms\n")
	require.Contains(t, content, "OPERATION")
	require.Contains(t, content, "mysql.select")

	require.Contains(t, out.String(), "[INSERT] wrote 10 rows: 3 ms\n")
	require.Contains(t, out.String(), "=== Store benchmark report ===")
	require.Contains(t, out.String(), "Date: 2025-03-01T12:00:00Z")
}

func TestReport_BadPath(t *testing.T) {
	_, err := NewReport(filepath.Join(t.TempDir(), "missing", "r.txt"), &bytes.Buffer{}, time.Now())
	require.Error(t, err)
}
