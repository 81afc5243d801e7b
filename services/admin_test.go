package services

import (
	"testing"
	"time"

	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(ds *PostgresService, notifier Notifier) *AdminService {
	return &AdminService{db: ds, users: ds.Users(), billingSvc: newTestBillingService(ds), notifier: notifier}
}

func TestAdmin_ApproveAndRejectTeachers(t *testing.T) {
	ds := newTestDatabase(t)
	notifier := &fakeNotifier{}
	svc := newTestAdminService(ds, notifier)
	first := seedUser(t, ds, "first", shared.RoleTeacher, shared.TeacherStatusPending)
	second := seedUser(t, ds, "second", shared.RoleTeacher, shared.TeacherStatusPending)

	pending, err := svc.ListTeachers(dto.TeacherListRequest{Status: shared.TeacherStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending.Teachers, 2)

	approved, err := svc.ApproveTeacher(first.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.TeacherStatusApproved, approved.TeacherStatus)

	rejected, err := svc.RejectTeacher(second.ID, dto.RejectTeacherRequest{Reason: "Missing certificate"})
	require.NoError(t, err)
	assert.Equal(t, shared.TeacherStatusRejected, rejected.TeacherStatus)
	assert.Equal(t, "Missing certificate", rejected.RejectionReason)

	assert.Eventually(t, func() bool {
		return notifier.count(&notifier.approved) == 1 && notifier.count(&notifier.rejected) == 1
	}, time.Second, 10*time.Millisecond)

	pending, err = svc.ListTeachers(dto.TeacherListRequest{Status: shared.TeacherStatusPending})
	require.NoError(t, err)
	assert.Empty(t, pending.Teachers)
}

func TestAdmin_ApproveUnknownOrStudent(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestAdminService(ds, &fakeNotifier{})
	student := seedUser(t, ds, "stud", shared.RoleStudent, shared.TeacherStatusNone)

	_, err := svc.ApproveTeacher("missing")
	requireStatus(t, err, 404)

	_, err = svc.ApproveTeacher(student.ID)
	requireStatus(t, err, 404)
}

func TestAdmin_GrantCredits(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestAdminService(ds, &fakeNotifier{})
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)

	summary, err := svc.GrantCredits(teacher.ID, dto.GrantCreditsRequest{Amount: 25, Note: "pilot school"})
	require.NoError(t, err)
	assert.Equal(t, defaultFreeCredits+25, summary.Balance)

	_, err = svc.GrantCredits("missing", dto.GrantCreditsRequest{Amount: 5})
	requireStatus(t, err, 404)
}

func TestAdmin_ListUsersAndStats(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestAdminService(ds, &fakeNotifier{})
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	seedUser(t, ds, "pend", shared.RoleTeacher, shared.TeacherStatusPending)
	seedUser(t, ds, "janet", shared.RoleStudent, shared.TeacherStatusNone)
	course := seedCourse(t, ds, teacher.ID, true)
	seedLesson(t, ds, course, "grammar", true)
	seedLesson(t, ds, course, "reading", false)

	users, err := svc.ListUsers(dto.UserListRequest{Search: "jan"})
	require.NoError(t, err)
	require.Len(t, users.Users, 1)
	assert.Equal(t, "janet", users.Users[0].Username)

	stats, err := svc.GetPlatformStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users[shared.RoleTeacher])
	assert.Equal(t, int64(1), stats.Users[shared.RoleStudent])
	assert.Equal(t, int64(1), stats.PendingTeachers)
	assert.Equal(t, int64(1), stats.Courses)
	assert.Equal(t, int64(2), stats.Lessons)
	assert.Equal(t, int64(1), stats.PublishedLessons)
}
