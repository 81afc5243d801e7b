package services

import (
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAILogRetentionDays = 90
	gaugeRefreshInterval      = 5 * time.Minute
)

// SchedulerService runs the periodic housekeeping jobs.
type SchedulerService struct {
	context.DefaultService

	scheduler *gocron.Scheduler
	db        *PostgresService
	monitor   *MonitoringService

	aiLogRetention time.Duration
}

const SCHEDULER_SVC = "scheduler_svc"

func (svc SchedulerService) Id() string {
	return SCHEDULER_SVC
}

func (svc *SchedulerService) Configure(ctx *context.Context) error {
	days := defaultAILogRetentionDays
	if v, err := strconv.Atoi(os.Getenv("AI_LOG_RETENTION_DAYS")); err == nil && v > 0 {
		days = v
	}
	svc.aiLogRetention = time.Duration(days) * 24 * time.Hour
	svc.scheduler = gocron.NewScheduler(time.UTC)
	return svc.DefaultService.Configure(ctx)
}

func (svc *SchedulerService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitor = svc.Service(MONITORING_SVC).(*MonitoringService)

	if _, err := svc.scheduler.Every(gaugeRefreshInterval).Do(svc.refreshPlatformGauges); err != nil {
		return err
	}
	if _, err := svc.scheduler.Every(1).Day().At("03:00").Do(svc.pruneAILogs); err != nil {
		return err
	}

	svc.scheduler.StartAsync()
	log.WithField("jobs", len(svc.scheduler.Jobs())).Info("Scheduler started")
	return nil
}

func (svc *SchedulerService) Shutdown() {
	if svc.scheduler != nil {
		svc.scheduler.Stop()
	}
}

func (svc *SchedulerService) refreshPlatformGauges() {
	stats, err := collectPlatformStats(svc.db, time.Now())
	if err != nil {
		log.WithError(err).Warn("Failed to refresh platform gauges")
		return
	}
	svc.monitor.SetPlatformGauges(stats.Users, stats.PendingTeachers, stats.PublishedLessons, stats.ActiveLearners7d)
}

func (svc *SchedulerService) pruneAILogs() {
	cutoff := time.Now().Add(-svc.aiLogRetention)
	deleted, err := svc.db.AILogs().DeleteOlderThan(cutoff)
	if err != nil {
		log.WithError(err).Warn("Failed to prune AI generation logs")
		return
	}
	log.WithFields(log.Fields{"deleted": deleted, "cutoff": cutoff}).Info("Pruned AI generation logs")
}
