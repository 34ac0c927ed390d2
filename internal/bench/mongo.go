package bench

import (
	"context"
	"fmt"
	"time"

	"projects-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDatabaseDefault   = "pm_system_nosql"
	mongoCollectionDefault = "activity_logs"
)

// Mongo writes the dataset as documents with the payload embedded as a sub-document.
type Mongo struct {
	URI            string
	Client         *mongo.Client // connected from URI when nil
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

func (m *Mongo) Name() string { return "MongoDB" }

func (m *Mongo) Run(ctx context.Context, run *Run) error {
	cli := m.Client
	if cli == nil {
		var err error
		if cli, err = connectMongo(ctx, m.URI, m.ConnectTimeout); err != nil {
			return err
		}
		defer cli.Disconnect(context.Background())
	}
	dbName, collName := m.Database, m.Collection
	if dbName == "" {
		dbName = mongoDatabaseDefault
	}
	if collName == "" {
		collName = mongoCollectionDefault
	}
	coll := cli.Database(dbName).Collection(collName)
	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop %s: %w", collName, err)
	}

	docs := make([]interface{}, 0, len(run.Logs))
	for _, l := range run.Logs {
		d, err := toDocument(l)
		if err != nil {
			return err
		}
		docs = append(docs, d)
	}

	took, err := run.Measure.Time("mongodb.insert_many", func() error {
		_, err := coll.InsertMany(ctx, docs)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert many: %w", err)
	}
	run.Report.Logf("[INSERT] wrote %d documents: %d ms", len(docs), took.Milliseconds())

	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "project_id", Value: 1}}}); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	var found []bson.M
	took, err = run.Measure.Time("mongodb.find", func() error {
		cur, err := coll.Find(ctx, bson.M{"project_id": run.ProjectID})
		if err != nil {
			return err
		}
		return cur.All(ctx, &found)
	})
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	run.Report.Logf("[FIND]   project_id=%d: %d ms (found %d)", run.ProjectID, took.Milliseconds(), len(found))
	return nil
}

func toDocument(l domain.ActivityLog) (bson.D, error) {
	var details bson.M
	if err := bson.UnmarshalExtJSON([]byte(l.DetailsPayload), false, &details); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return bson.D{
		{Key: "project_id", Value: l.ProjectID},
		{Key: "user_id", Value: l.UserID},
		{Key: "action", Value: l.ActionType},
		{Key: "created_at", Value: l.Timestamp},
		{Key: "details", Value: details},
	}, nil
}

func connectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := retry(ctx, timeout, func() error { return cli.Ping(ctx, nil) }); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return cli, nil
}
