package services

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "english_api"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// HTTP Metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method", "status"},
	)

	httpResponseSizeBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response payload size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
		},
		[]string{"endpoint", "method"},
	)
)

// Learning Metrics
var (
	lessonCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_completions_total",
			Help: "Lesson completions recorded, by skill",
		},
		[]string{"skill"},
	)

	achievementsAwardedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievements_awarded_total",
			Help: "Achievements awarded, by identifier",
		},
		[]string{"achievement"},
	)

	progressVersionConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "progress_version_conflicts_total",
			Help: "Progress writes that lost an optimistic version check",
		},
	)

	progressCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_cache_lookups_total",
			Help: "Dashboard cache lookups, by result",
		},
		[]string{"result"},
	)
)

// AI and billing Metrics
var (
	aiGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_generations_total",
			Help: "AI generation calls, by purpose and outcome",
		},
		[]string{"purpose", "status"},
	)

	aiGenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_generation_duration_seconds",
			Help:    "AI generation latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"purpose"},
	)

	creditsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credits_consumed_total",
			Help: "AI credits consumed, by reason",
		},
		[]string{"reason"},
	)
)

// Platform Metrics, refreshed by the scheduler
var (
	platformUsers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "platform_users",
			Help: "Registered users, by role",
		},
		[]string{"role"},
	)

	platformPendingTeachers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "platform_pending_teachers",
			Help: "Teacher accounts waiting for approval",
		},
	)

	platformPublishedLessons = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "platform_published_lessons",
			Help: "Lessons visible to students",
		},
	)

	platformActiveLearners = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "platform_active_learners_7d",
			Help: "Learners with a completion in the last 7 days",
		},
	)
)

// System Metrics
var (
	heapAllocBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "heap_alloc_bytes",
			Help: "Heap memory allocated in bytes",
		},
	)

	gcTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gc_total",
			Help: "Total number of garbage collections",
		},
	)
)

// MonitoringService serves /metrics on its own port. The recording methods
// only touch package collectors, so they are safe on a nil receiver.
type MonitoringService struct {
	context.DefaultService

	port     int
	register *prometheus.Registry

	closed      chan struct{}
	server      *fiber.App
	lastGCCount uint32
}

func (svc *MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *context.Context) error {
	port, err := strconv.Atoi(os.Getenv("PROMETHEUS_PORT"))
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port
	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) Start() error {
	svc.closed = make(chan struct{}, 1)

	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reg.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		httpResponseSizeBytes,
		lessonCompletionsTotal,
		achievementsAwardedTotal,
		progressVersionConflictsTotal,
		progressCacheTotal,
		aiGenerationsTotal,
		aiGenerationDurationSeconds,
		creditsConsumedTotal,
		platformUsers,
		platformPendingTeachers,
		platformPublishedLessons,
		platformActiveLearners,
		heapAllocBytes,
		gcTotal,
	)

	svc.register = reg

	go svc.updateMemoryMetrics()

	config := fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	}

	svc.server = fiber.New(config)
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)

	log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
	go func() {
		if err := svc.server.Listen(fmt.Sprintf(":%v", svc.port)); err != nil {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
	return nil
}

func (svc *MonitoringService) Shutdown() {
	if svc.closed != nil {
		svc.closed <- struct{}{}
	}
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) updateMemoryMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			heapAllocBytes.Set(float64(m.Alloc))

			if m.NumGC > svc.lastGCCount {
				gcTotal.Add(float64(m.NumGC - svc.lastGCCount))
				svc.lastGCCount = m.NumGC
			}

		case <-svc.closed:
			log.Info().Msg("Memory metrics updater stopped")
			return
		}
	}
}

func (svc *MonitoringService) RecordRequest(method, endpoint, status string, duration time.Duration, responseSize int) {
	httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	httpRequestDurationSeconds.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())
	httpResponseSizeBytes.WithLabelValues(endpoint, method).Observe(float64(responseSize))
}

func (svc *MonitoringService) RecordLessonCompleted(skill string, awarded []string) {
	if skill == "" {
		skill = "unspecified"
	}
	lessonCompletionsTotal.WithLabelValues(skill).Inc()
	for _, id := range awarded {
		achievementsAwardedTotal.WithLabelValues(id).Inc()
	}
}

func (svc *MonitoringService) RecordVersionConflict() {
	progressVersionConflictsTotal.Inc()
}

func (svc *MonitoringService) RecordCacheLookup(hit bool) {
	if hit {
		progressCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	progressCacheTotal.WithLabelValues("miss").Inc()
}

func (svc *MonitoringService) RecordGeneration(purpose string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	aiGenerationsTotal.WithLabelValues(purpose, status).Inc()
	aiGenerationDurationSeconds.WithLabelValues(purpose).Observe(duration.Seconds())
}

func (svc *MonitoringService) RecordCreditsConsumed(reason string, amount int) {
	creditsConsumedTotal.WithLabelValues(reason).Add(float64(amount))
}

// SetPlatformGauges publishes the periodic platform snapshot.
func (svc *MonitoringService) SetPlatformGauges(usersByRole map[string]int64, pendingTeachers, publishedLessons, activeLearners int64) {
	for role, n := range usersByRole {
		platformUsers.WithLabelValues(role).Set(float64(n))
	}
	platformPendingTeachers.Set(float64(pendingTeachers))
	platformPublishedLessons.Set(float64(publishedLessons))
	platformActiveLearners.Set(float64(activeLearners))
}

// MonitoringMiddleware records request metrics for the API app.
func MonitoringMiddleware(monitoringSvc *MonitoringService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		method := c.Method()

		err := c.Next()

		endpoint := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		monitoringSvc.RecordRequest(method, endpoint, status, time.Since(start), len(c.Response().Body()))

		return err
	}
}
