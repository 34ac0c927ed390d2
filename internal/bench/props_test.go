package bench

import (
	"testing"
	"time"

	"github.com/magiconair/properties"
	"github.com/stretchr/testify/require"
)

func TestConfigFromProperties(t *testing.T) {
	p := properties.MustLoadString(`
bench.records = 250
bench.seed = 99
bench.stores = redis, MySQL ,cassandra
redis.cache_ttl = 5s
redis.compute_delay = 10ms
mysql.dsn = root:pw@tcp(localhost:3306)/project_management
`)
	c := ConfigFromProperties(p)
	require.Equal(t, 250, c.Records)
	require.Equal(t, int64(99), c.Seed)
	require.Equal(t, 10, c.ProjectID)
	require.Equal(t, "benchmark_results.txt", c.ReportFile)
	require.Equal(t, []string{"redis", "mysql", "cassandra"}, c.Stores)
	require.Equal(t, 5*time.Second, c.CacheTTL)
	require.Equal(t, 10*time.Millisecond, c.ComputeDelay)

	backends, unknown := c.Backends()
	require.Equal(t, []string{"cassandra"}, unknown)
	require.Len(t, backends, 2)
	require.Equal(t, "Redis", backends[0].Name())
	require.Equal(t, "MySQL", backends[1].Name())
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, ConfigFromProperties(properties.NewProperties()).Validate())

	p := properties.NewProperties()
	p.Set(PropRecords, "-5")
	c := ConfigFromProperties(p)
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
	require.NotPanics(t, func() { require.Empty(t, NewGenerator(1, nil).Generate(c.Records)) })

	p = properties.NewProperties()
	p.Set(PropProjectID, "0")
	require.ErrorIs(t, ConfigFromProperties(p).Validate(), ErrInvalidConfig)

	p.Set(PropProjectID, "3")
	p.Set(PropRecords, "0")
	require.NoError(t, ConfigFromProperties(p).Validate())
}

func TestConfigFromProperties_Defaults(t *testing.T) {
	c := ConfigFromProperties(properties.NewProperties())
	require.Equal(t, 10000, c.Records)
	require.Equal(t, []string{"mysql", "mongodb", "redis"}, c.Stores)
	require.Equal(t, time.Minute, c.CacheTTL)
	require.Equal(t, 500*time.Millisecond, c.ComputeDelay)
	require.Equal(t, "pm_system_nosql", c.MongoDatabase)
}
