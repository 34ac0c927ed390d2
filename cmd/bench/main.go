package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"projects-service/internal/bench"
	"projects-service/internal/config"
	"projects-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"github.com/magiconair/properties"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	propertyFiles  []string
	propertyValues []string
	recordsArg     int
	seedArg        int64
	storesArg      string
)

func init() { _ = godotenv.Load() }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare bulk insert and lookup latency of MySQL, MongoDB and Redis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(ctx, cmd)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringSliceVarP(&propertyFiles, "property_file", "P", nil, "Specify a property file")
	rootCmd.Flags().StringArrayVarP(&propertyValues, "prop", "p", nil, "Specify a property value with name=value")
	rootCmd.Flags().IntVar(&recordsArg, "records", 0, "Number of activity logs to generate")
	rootCmd.Flags().Int64Var(&seedArg, "seed", 0, "Random seed for the generator")
	rootCmd.Flags().StringVar(&storesArg, "stores", "", "Comma separated stores to run, in order")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadProperties merges env defaults, property files, -p values and flags, in that order.
func loadProperties(cmd *cobra.Command) (*properties.Properties, error) {
	env := config.Load()
	p := properties.NewProperties()
	p.Set(bench.PropReportFile, env.BenchReportFile)
	p.Set(bench.PropMySQLDSN, env.MySQLDSN)
	p.Set(bench.PropMongoURI, env.MongoURI)
	p.Set(bench.PropRedisAddr, env.RedisAddr)

	if len(propertyFiles) > 0 {
		files, err := properties.LoadFiles(propertyFiles, properties.UTF8, false)
		if err != nil {
			return nil, err
		}
		p.Merge(files)
	}
	for _, prop := range propertyValues {
		seps := strings.SplitN(prop, "=", 2)
		if len(seps) != 2 {
			return nil, fmt.Errorf("bad property: `%s`, expected format `name=value`", prop)
		}
		p.Set(seps[0], seps[1])
	}
	if cmd.Flags().Changed("records") {
		p.Set(bench.PropRecords, fmt.Sprint(recordsArg))
	}
	if cmd.Flags().Changed("seed") {
		p.Set(bench.PropSeed, fmt.Sprint(seedArg))
	}
	if cmd.Flags().Changed("stores") {
		p.Set(bench.PropStores, storesArg)
	}
	return p, nil
}

func run(ctx context.Context, cmd *cobra.Command) error {
	log := logx.L().With(zap.String("component", "bench"))
	p, err := loadProperties(cmd)
	if err != nil {
		return err
	}
	cfg := bench.ConfigFromProperties(p)
	if err := cfg.Validate(); err != nil {
		return err
	}

	report, err := bench.NewReport(cfg.ReportFile, os.Stdout, time.Now())
	if err != nil {
		return err
	}
	defer report.Close()

	backends, unknown := cfg.Backends()
	for _, name := range unknown {
		report.Logf("Unknown store %q ignored.", name)
	}

	report.Logf("Generating %d records...", cfg.Records)
	logs := bench.NewGenerator(cfg.Seed, nil).Generate(cfg.Records)

	runner := &bench.Runner{Backends: backends, Report: report, Measure: bench.NewMeasurement(), Log: log}
	start := time.Now()
	res := runner.Execute(ctx, logs, cfg.ProjectID)
	log.Info("bench.finished",
		zap.Duration("took", time.Since(start)),
		zap.Int("failed", len(res.Failed)),
		zap.String("report", cfg.ReportFile),
	)
	return nil
}
