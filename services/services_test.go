package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func newTestDatabase(t *testing.T) *PostgresService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ds := &PostgresService{driver: DriverSqlite}
	require.NoError(t, ds.Attach(db))
	return ds
}

func seedUser(t *testing.T, ds *PostgresService, username, role, teacherStatus string) *model.User {
	t.Helper()
	u, err := ds.Users().CreateUser(&model.User{
		Email:         username + "@example.com",
		Username:      username,
		Password:      "hash",
		Role:          role,
		TeacherStatus: teacherStatus,
		IsActive:      true,
	})
	require.NoError(t, err)
	return u
}

func seedCourse(t *testing.T, ds *PostgresService, teacherID string, published bool) *model.Course {
	t.Helper()
	c, err := ds.Content().CreateCourse(&model.Course{
		TeacherID:   teacherID,
		Title:       "Everyday English",
		Level:       shared.LevelBeginner,
		IsPublished: published,
	})
	require.NoError(t, err)
	return c
}

func seedLesson(t *testing.T, ds *PostgresService, course *model.Course, skill string, published bool) *model.Lesson {
	t.Helper()
	l, err := ds.Content().CreateLesson(&model.Lesson{
		CourseID:    course.ID,
		TeacherID:   course.TeacherID,
		Title:       "Past simple",
		Skill:       skill,
		Level:       shared.LevelBeginner,
		IsPublished: published,
		Source:      shared.LessonSourceManual,
		Content:     []model.LessonSection{{Heading: "Form", Body: "Add -ed to regular verbs."}},
		Questions:   []model.Question{{ID: "q1", Type: shared.QuestionTypeFillBlank, Prompt: "I ___ home.", Answer: "walked"}},
	})
	require.NoError(t, err)
	return l
}

func newTestProgressService(ds *PostgresService, cache Cache) *ProgressService {
	svc := &ProgressService{
		db:      ds,
		records: ds.Progress(),
		lessons: ds.Content(),
		cache:   cache,
		now:     func() time.Time { return testNow },
	}
	svc.init()
	return svc
}

func newTestBillingService(ds *PostgresService) *BillingService {
	return &BillingService{db: ds, repo: ds.Billing(), freeCredits: defaultFreeCredits}
}

func newTestContentService(ds *PostgresService, storage ObjectStore) *ContentService {
	return &ContentService{db: ds, content: ds.Content(), storage: storage}
}

// fakeCache is an in-memory Cache.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, sonic.Unmarshal(raw, dest)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// fakeNotifier records sent mail.
type fakeNotifier struct {
	mu       sync.Mutex
	welcome  []string
	approved []string
	rejected []string
}

func (n *fakeNotifier) SendWelcomeEmail(to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcome = append(n.welcome, to)
	return nil
}

func (n *fakeNotifier) SendTeacherApprovedEmail(to, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, to)
	return nil
}

func (n *fakeNotifier) SendTeacherRejectedEmail(to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, to)
	return nil
}

func (n *fakeNotifier) count(list *[]string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(*list)
}

// fakeObjectStore keeps uploaded objects in memory.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
	urlErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string]string{}}
}

func (s *fakeObjectStore) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, contentType string) error {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = contentType
	return nil
}

func (s *fakeObjectStore) GetFileURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	if s.urlErr != nil {
		return "", s.urlErr
	}
	return "https://media.test/" + objectName + "?signed=1", nil
}

func (s *fakeObjectStore) DeleteFile(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	s.deleted = append(s.deleted, objectName)
	return nil
}
