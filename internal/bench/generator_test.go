package bench

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(42, fixedNow).Generate(500)
	b := NewGenerator(42, fixedNow).Generate(500)
	require.Equal(t, a, b)

	c := NewGenerator(43, fixedNow).Generate(500)
	require.NotEqual(t, a, c)
}

func TestGenerator_Ranges(t *testing.T) {
	logs := NewGenerator(1, fixedNow).Generate(2000)
	require.Len(t, logs, 2000)
	actions := map[string]bool{"TaskCreated": true, "StatusUpdate": true, "FileUploaded": true, "CommentAdded": true}
	for i, l := range logs {
		require.GreaterOrEqual(t, l.ProjectID, 1)
		require.LessOrEqual(t, l.ProjectID, 49)
		require.GreaterOrEqual(t, l.UserID, 1)
		require.LessOrEqual(t, l.UserID, 99)
		require.True(t, actions[l.ActionType], l.ActionType)
		require.Equal(t, fixedNow(), l.Timestamp)

		var payload struct {
			Description string `json:"description"`
			MetaCode    int    `json:"meta_code"`
		}
		require.NoError(t, json.Unmarshal([]byte(l.DetailsPayload), &payload))
		require.Equal(t, "Log entry #"+strconv.Itoa(i), payload.Description)
		require.Less(t, payload.MetaCode, 9999)
	}
}

func TestCountForProject(t *testing.T) {
	logs := NewGenerator(7, fixedNow).Generate(1000)
	total := 0
	for p := 1; p <= 49; p++ {
		total += CountForProject(logs, p)
	}
	require.Equal(t, 1000, total)
	require.Zero(t, CountForProject(logs, 50))
}
