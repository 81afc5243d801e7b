package services

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/progress"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProgressStore is the persistence the progress write path needs.
type ProgressStore interface {
	GetByUserID(userID string) (*model.UserProgress, error)
	CreateIfAbsent(r *progress.Record) (*model.UserProgress, error)
	UpdateVersioned(r *progress.Record) (bool, error)
	ListByUserIDs(userIDs []string) ([]model.UserProgress, error)
}

type LessonLookup interface {
	GetLesson(id string) (*model.Lesson, error)
}

const (
	defaultWriteAttempts = 3
	defaultStatsTTL      = 5 * time.Minute
)

var errVersionConflict = errors.New("progress was modified concurrently")

type ProgressService struct {
	appContext.DefaultService

	db      *PostgresService
	records ProgressStore
	lessons LessonLookup
	cache   Cache
	monitor *MonitoringService

	skills     []progress.Skill
	recorder   *progress.Recorder
	aggregator *progress.Aggregator
	catalog    *progress.Catalog

	statsTTL      time.Duration
	writeAttempts int
	now           func() time.Time
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	svc.statsTTL = defaultStatsTTL
	if secs, err := strconv.Atoi(os.Getenv("PROGRESS_CACHE_TTL_SECONDS")); err == nil && secs > 0 {
		svc.statsTTL = time.Duration(secs) * time.Second
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.records = svc.db.Progress()
	svc.lessons = svc.db.Content()
	svc.cache = svc.Service(REDIS_SVC).(*RedisService)
	svc.monitor = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.init()
	return nil
}

func (svc *ProgressService) init() {
	svc.skills = progress.Skills()
	evaluator := progress.DefaultEvaluator()
	svc.recorder = progress.NewRecorder(evaluator, svc.skills)
	svc.aggregator = progress.NewAggregator(svc.skills)
	svc.catalog = evaluator.Catalog()
	if svc.writeAttempts == 0 {
		svc.writeAttempts = defaultWriteAttempts
	}
	if svc.statsTTL == 0 {
		svc.statsTTL = defaultStatsTTL
	}
	if svc.now == nil {
		svc.now = time.Now
	}
}

func statsCacheKey(userID string) string {
	return "progress:stats:" + userID
}

// statsTTLAt keeps cached stats from outliving the day they were computed
// for, since the weekly buckets and monthly count depend on it.
func (svc *ProgressService) statsTTLAt(now time.Time) time.Duration {
	y, m, d := now.Date()
	untilMidnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Sub(now)
	if untilMidnight < svc.statsTTL {
		return untilMidnight
	}
	return svc.statsTTL
}

// EnsureProgress returns the user's record, creating an empty one on first use.
func (svc *ProgressService) EnsureProgress(userID string) (*progress.Record, error) {
	row, err := svc.records.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row, err = svc.records.CreateIfAbsent(progress.NewRecord(userID, svc.skills, svc.now()))
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	r := row.ToRecord()
	r.NormalizeScores(svc.skills, svc.now())
	return r, nil
}

// RecordsFor loads the records of several users at once. Users without a
// stored record get an empty one that is not persisted.
func (svc *ProgressService) RecordsFor(userIDs []string) (map[string]*progress.Record, error) {
	rows, err := svc.records.ListByUserIDs(userIDs)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	now := svc.now()
	out := make(map[string]*progress.Record, len(userIDs))
	for i := range rows {
		r := rows[i].ToRecord()
		r.NormalizeScores(svc.skills, now)
		out[r.UserID] = r
	}
	for _, id := range userIDs {
		if _, ok := out[id]; !ok {
			out[id] = progress.NewRecord(id, svc.skills, now)
		}
	}
	return out, nil
}

// mutate runs fn against a fresh copy of the record and writes it back
// conditionally on the version that was read. A lost race rereads and
// reapplies fn, up to writeAttempts times.
func (svc *ProgressService) mutate(userID string, fn func(r *progress.Record) (*progress.Record, error)) (*progress.Record, error) {
	for attempt := 1; attempt <= svc.writeAttempts; attempt++ {
		current, err := svc.EnsureProgress(userID)
		if err != nil {
			return nil, err
		}

		next, err := fn(current)
		if err != nil {
			return nil, err
		}

		ok, err := svc.records.UpdateVersioned(next)
		if err != nil {
			return nil, svc.db.HandleError(err)
		}
		if ok {
			next.Version = current.Version + 1
			svc.invalidate(userID)
			return next, nil
		}

		svc.monitor.RecordVersionConflict()
		log.WithFields(log.Fields{
			"user_id": userID,
			"version": current.Version,
			"attempt": attempt,
		}).Warn("Progress version conflict, retrying")
	}

	return nil, shared.NewConflictError(errVersionConflict, "Progress was updated by another request, please retry")
}

func (svc *ProgressService) invalidate(userID string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(context.Background(), statsCacheKey(userID)); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate progress stats cache")
	}
}

// RecordCompletion applies one lesson completion for a student. Only
// published lessons can be completed.
func (svc *ProgressService) RecordCompletion(userID string, req dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error) {
	lesson, err := svc.lessons.GetLesson(req.LessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !lesson.IsPublished) {
		return nil, shared.NewNotFoundError(err, "Lesson not found")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	completion := req.ToCompletion()
	if completion.Skill == "" {
		completion.Skill = lesson.Skill
	}

	var outcome *progress.Outcome
	updated, err := svc.mutate(userID, func(r *progress.Record) (*progress.Record, error) {
		out, err := svc.recorder.Apply(r, completion, svc.now())
		if err != nil {
			return nil, toValidationAppError(err)
		}
		outcome = out
		return out.Record, nil
	})
	if err != nil {
		return nil, err
	}

	svc.monitor.RecordLessonCompleted(completion.Skill, outcome.NewAchievements)
	log.WithFields(log.Fields{
		"user_id":          userID,
		"lesson_id":        lesson.ID,
		"score":            outcome.Entry.Score,
		"new_achievements": outcome.NewAchievements,
	}).Info("Lesson completion recorded")

	newAchievements := outcome.NewAchievements
	if newAchievements == nil {
		newAchievements = []string{}
	}

	return &dto.CompleteLessonResponse{
		TotalLessonsCompleted: len(updated.LessonsCompleted),
		Streak:                updated.Streak,
		TotalTimeSpent:        updated.TotalTimeSpent,
		WeeklyProgress:        updated.WeeklyProgress,
		Scores:                updated.Scores,
		NewAchievements:       newAchievements,
		Entry:                 outcome.Entry,
	}, nil
}

func (svc *ProgressService) UpdateWeeklyGoal(userID string, goal int) (*dto.WeeklyGoalResponse, error) {
	updated, err := svc.mutate(userID, func(r *progress.Record) (*progress.Record, error) {
		next := r.Clone()
		if err := next.SetWeeklyGoal(goal); err != nil {
			return nil, toValidationAppError(err)
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.WeeklyGoalResponse{
		WeeklyGoal:           updated.WeeklyGoal,
		WeeklyProgress:       updated.WeeklyProgress,
		WeeklyCompletionRate: svc.aggregator.WeeklyCompletionRate(updated),
	}, nil
}

// TouchLogin stamps the login time and opens a new weekly window when due.
func (svc *ProgressService) TouchLogin(userID string) error {
	_, err := svc.mutate(userID, func(r *progress.Record) (*progress.Record, error) {
		next := r.Clone()
		next.TouchLogin(svc.now())
		return next, nil
	})
	return err
}

func (svc *ProgressService) GetStats(userID string) (*dto.StatsResponse, error) {
	ctx := context.Background()
	key := statsCacheKey(userID)

	if svc.cache != nil {
		var cached dto.StatsResponse
		hit, err := svc.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Progress stats cache read failed")
		}
		svc.monitor.RecordCacheLookup(hit)
		if hit {
			return &cached, nil
		}
	}

	r, err := svc.EnsureProgress(userID)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	stats := &dto.StatsResponse{Dashboard: svc.aggregator.Dashboard(r, now)}

	if svc.cache != nil {
		if err := svc.cache.SetJSON(ctx, key, stats, svc.statsTTLAt(now)); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Progress stats cache write failed")
		}
	}
	return stats, nil
}

func (svc *ProgressService) GetAchievements(userID string) (*dto.AchievementsResponse, error) {
	r, err := svc.EnsureProgress(userID)
	if err != nil {
		return nil, err
	}
	return svc.achievementsFor(r), nil
}

func (svc *ProgressService) achievementsFor(r *progress.Record) *dto.AchievementsResponse {
	earned := svc.catalog.Earned(r)
	all := svc.catalog.All()

	catalog := make([]dto.AchievementInfo, 0, len(all))
	for _, a := range all {
		catalog = append(catalog, dto.AchievementInfo{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Category:    string(a.Category),
			Bonus:       a.Bonus,
			Earned:      earned[a.ID],
		})
	}

	return &dto.AchievementsResponse{
		Achievements: append([]string{}, r.Achievements...),
		Summary:      svc.catalog.Summarize(r),
		Catalog:      catalog,
	}
}

func (svc *ProgressService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	r, err := svc.EnsureProgress(userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProgressResponse{
		UserID:           r.UserID,
		LessonsCompleted: r.LessonsCompleted,
		Scores:           r.Scores,
		LessonProgress:   r.LessonProgress,
		Achievements:     r.Achievements,
		Streak:           r.Streak,
		TotalTimeSpent:   r.TotalTimeSpent,
		WeeklyGoal:       r.WeeklyGoal,
		WeeklyProgress:   r.WeeklyProgress,
		LastLogin:        r.LastLogin,
		LastActivityAt:   r.LastActivityAt,
		Version:          r.Version,
	}, nil
}

// Summary is the compact view shown on profiles and teacher rosters.
func (svc *ProgressService) Summary(r *progress.Record) dto.ProgressSummary {
	return dto.ProgressSummary{
		TotalLessonsCompleted: len(r.LessonsCompleted),
		AverageScore:          svc.aggregator.AverageScore(r),
		Streak:                r.Streak,
		TotalTimeSpent:        r.TotalTimeSpent,
		WeeklyProgress:        r.WeeklyProgress,
		WeeklyGoal:            r.WeeklyGoal,
		AchievementsCount:     len(svc.catalog.Earned(r)),
		LastActivityAt:        r.LastActivityAt,
	}
}

// StudentReport bundles the dashboard and achievements of one record.
func (svc *ProgressService) StudentReport(r *progress.Record) (dto.StatsResponse, dto.AchievementsResponse) {
	stats := dto.StatsResponse{Dashboard: svc.aggregator.Dashboard(r, svc.now())}
	return stats, *svc.achievementsFor(r)
}

func toValidationAppError(err error) error {
	var vErr *progress.ValidationError
	if errors.As(err, &vErr) {
		return shared.NewValidationError(vErr.Message, []dto.ValidationError{{Field: vErr.Field, Message: vErr.Message}})
	}
	return err
}
