package bench

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"github.com/stretchr/testify/require"
)

func TestToDocument(t *testing.T) {
	l := NewGenerator(9, fixedNow).Generate(1)[0]
	doc, err := toDocument(l)
	require.NoError(t, err)

	m := doc.Map()
	require.Equal(t, l.ProjectID, m["project_id"])
	require.Equal(t, l.ActionType, m["action"])
	details, ok := m["details"].(bson.M)
	require.True(t, ok)
	require.Equal(t, "Log entry #0", details["description"])
}

func TestToDocument_BadPayload(t *testing.T) {
	l := NewGenerator(9, fixedNow).Generate(1)[0]
	l.DetailsPayload = "{not json"
	_, err := toDocument(l)
	require.Error(t, err)
}

func TestMongo_Run(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping MongoDB test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	run, out := newRun(200)
	m := &Mongo{URI: uri, Database: "bench_test", ConnectTimeout: 5 * time.Second}
	require.NoError(t, m.Run(ctx, run))
	require.Contains(t, out.String(), "[INSERT] wrote 200 documents")
	require.Equal(t, int64(1), run.Measure.Count("mongodb.find"))
}
