package bench

import (
	"errors"
	"fmt"
	"strings"
	"time"

	infraconfig "projects-service/internal/infrastructure/config"

	"github.com/magiconair/properties"
)

// property names accepted by the bench command
const (
	PropRecords        = "bench.records"
	PropSeed           = "bench.seed"
	PropProjectID      = "bench.project_id"
	PropReportFile     = "bench.report_file"
	PropStores         = "bench.stores"
	PropConnectTimeout = "bench.connect_timeout"
	PropMySQLDSN       = "mysql.dsn"
	PropMongoURI       = "mongodb.uri"
	PropMongoDatabase  = "mongodb.database"
	PropMongoColl      = "mongodb.collection"
	PropRedisAddr      = "redis.addr"
	PropRedisCacheTTL  = "redis.cache_ttl"
	PropComputeDelay   = "redis.compute_delay"
)

const defaultStores = "mysql,mongodb,redis"

type Config struct {
	Records        int
	Seed           int64
	ProjectID      int
	ReportFile     string
	Stores         []string
	ConnectTimeout time.Duration

	MySQLDSN        string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	RedisAddr       string
	CacheTTL        time.Duration
	ComputeDelay    time.Duration
}

// ConfigFromProperties reads p, falling back to the built-in defaults.
func ConfigFromProperties(p *properties.Properties) Config {
	var stores []string
	for _, s := range strings.Split(p.GetString(PropStores, defaultStores), ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			stores = append(stores, s)
		}
	}
	return Config{
		Records:         p.GetInt(PropRecords, infraconfig.DefaultBenchRecords),
		Seed:            p.GetInt64(PropSeed, time.Now().UnixNano()),
		ProjectID:       p.GetInt(PropProjectID, infraconfig.DefaultBenchProjectID),
		ReportFile:      p.GetString(PropReportFile, infraconfig.DefaultBenchReportFile),
		Stores:          stores,
		ConnectTimeout:  p.GetParsedDuration(PropConnectTimeout, infraconfig.DefaultConnectRetry),
		MySQLDSN:        p.GetString(PropMySQLDSN, ""),
		MongoURI:        p.GetString(PropMongoURI, ""),
		MongoDatabase:   p.GetString(PropMongoDatabase, mongoDatabaseDefault),
		MongoCollection: p.GetString(PropMongoColl, mongoCollectionDefault),
		RedisAddr:       p.GetString(PropRedisAddr, "localhost:6379"),
		CacheTTL:        p.GetParsedDuration(PropRedisCacheTTL, infraconfig.DefaultBenchCacheTTL),
		ComputeDelay:    p.GetParsedDuration(PropComputeDelay, infraconfig.DefaultBenchComputeDelay),
	}
}

var ErrInvalidConfig = errors.New("invalid bench config")

// Validate rejects values the generator and backends cannot run with.
func (c Config) Validate() error {
	if c.Records < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, PropRecords, c.Records)
	}
	if c.ProjectID < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, PropProjectID, c.ProjectID)
	}
	return nil
}

// Backends builds the configured backends in run order. Unknown names are returned separately.
func (c Config) Backends() (out []Backend, unknown []string) {
	for _, s := range c.Stores {
		switch s {
		case "mysql":
			out = append(out, &MySQL{DSN: c.MySQLDSN, ConnectTimeout: c.ConnectTimeout})
		case "mongodb", "mongo":
			out = append(out, &Mongo{URI: c.MongoURI, Database: c.MongoDatabase, Collection: c.MongoCollection, ConnectTimeout: c.ConnectTimeout})
		case "redis":
			out = append(out, &Redis{Addr: c.RedisAddr, CacheTTL: c.CacheTTL, ComputeDelay: c.ComputeDelay, ConnectTimeout: c.ConnectTimeout})
		default:
			unknown = append(unknown, s)
		}
	}
	return out, unknown
}
