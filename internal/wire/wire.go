// Package wire provides dependency injection for the Sentinel application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log"
	"sync"

	"go.uber.org/zap"

	"github.com/example/sentinel/internal/adapters/check"
	"github.com/example/sentinel/internal/adapters/git"
	"github.com/example/sentinel/internal/adapters/prompt"
	"github.com/example/sentinel/internal/adapters/sqlite"
	"github.com/example/sentinel/internal/adapters/tasklist"
	"github.com/example/sentinel/internal/adapters/tier"
	"github.com/example/sentinel/internal/app"
	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/db"
	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/primary"
	"github.com/example/sentinel/internal/ports/secondary"
)

var (
	cfg             config.Config
	planService     primary.PlanService
	sentinelService primary.SentinelService
	once            sync.Once
)

// Config returns the loaded configuration.
func Config() config.Config {
	once.Do(initServices)
	return cfg
}

// PlanService returns the singleton PlanService instance.
func PlanService() primary.PlanService {
	once.Do(initServices)
	return planService
}

// SentinelService returns the singleton SentinelService instance.
func SentinelService() primary.SentinelService {
	once.Do(initServices)
	return sentinelService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	loaded, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg = *loaded

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	database, err := db.Open(".")
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	taskRepo := sqlite.NewTaskRepository(database)
	waveRepo := sqlite.NewWaveRepository(database)
	runRepo := sqlite.NewRunRepository(database)

	gitClient := git.NewClient()
	checkRunner := check.NewRunner()
	taskList := tasklist.NewFile(cfg.Sentinel.TasksFile)
	localClient := tier.NewLocalClient(cfg.Tiers.Local, logger)

	// The cloud tier needs its API credential; without one the client
	// stays unconfigured and escalation fails at repair time instead
	// of blocking local-only use.
	var cloudClient secondary.TierClient
	cloudClient, err = tier.NewCloudClient(cfg.Tiers.Cloud, logger)
	if err != nil {
		logger.Warn("cloud tier unavailable", zap.Error(err))
		cloudClient = unconfiguredTier{err: err}
	}

	planService = app.NewPlanService(cfg, taskRepo, waveRepo, taskList, logger)
	sentinelService = app.NewSentinelService(cfg, app.SentinelDeps{
		Tasks:    taskRepo,
		Waves:    waveRepo,
		Runs:     runRepo,
		Git:      gitClient,
		Probe:    localClient,
		Local:    localClient,
		Cloud:    cloudClient,
		Executor: app.NewTierExecutor(checkRunner, gitClient, logger),
		Writer:   app.NewManifestWriter(logger),
		Cascade:  app.NewCascadeAnalyzer(cfg.Sentinel.Mode, taskList, prompt.NewSelector(), logger),
	})
}

// unconfiguredTier stands in for the cloud tier when its credential is
// missing. Repair surfaces the construction error.
type unconfiguredTier struct {
	err error
}

func (u unconfiguredTier) Tier() int { return models.TierCloud }

func (u unconfiguredTier) Repair(context.Context, secondary.RepairRequest) (*secondary.RepairResult, error) {
	return nil, u.err
}
