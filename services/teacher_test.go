package services

import (
	"bytes"
	"testing"

	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestTeacherService(ds *PostgresService) *TeacherService {
	return &TeacherService{db: ds, users: ds.Users(), progressSvc: newTestProgressService(ds, nil)}
}

func TestTeacher_LinkAndUnlink(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestTeacherService(ds)
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	student := seedUser(t, ds, "stud", shared.RoleStudent, shared.TeacherStatusNone)

	summary, err := svc.LinkStudent(teacher.ID, dto.LinkStudentRequest{Email: " STUD@example.com "})
	require.NoError(t, err)
	assert.Equal(t, student.ID, summary.ID)
	assert.Equal(t, 0, summary.Progress.TotalLessonsCompleted)

	list, err := svc.ListStudents(teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	require.NoError(t, svc.UnlinkStudent(teacher.ID, student.ID))
	requireStatus(t, svc.UnlinkStudent(teacher.ID, student.ID), 404)

	list, err = svc.ListStudents(teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Students)
}

func TestTeacher_LinkRejectsNonStudents(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestTeacherService(ds)
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	seedUser(t, ds, "colleague", shared.RoleTeacher, shared.TeacherStatusApproved)

	_, err := svc.LinkStudent(teacher.ID, dto.LinkStudentRequest{Email: "colleague@example.com"})
	requireStatus(t, err, 400)

	_, err = svc.LinkStudent(teacher.ID, dto.LinkStudentRequest{Email: "ghost@example.com"})
	requireStatus(t, err, 404)
}

func TestTeacher_StudentProgressRequiresLink(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestTeacherService(ds)
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	student := seedUser(t, ds, "stud", shared.RoleStudent, shared.TeacherStatusNone)
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "reading", true)

	_, err := svc.GetStudentProgress(teacher.ID, student.ID)
	requireStatus(t, err, 404)

	_, err = svc.LinkStudent(teacher.ID, dto.LinkStudentRequest{Email: student.Email})
	require.NoError(t, err)
	_, err = svc.progressSvc.RecordCompletion(student.ID, dto.CompleteLessonRequest{LessonID: lesson.ID, Score: intPtr(90), TimeSpent: 15})
	require.NoError(t, err)

	report, err := svc.GetStudentProgress(teacher.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, report.Student.ID)
	assert.Equal(t, 1, report.Stats.TotalLessonsCompleted)
	assert.Equal(t, 90, report.Stats.SkillScores["reading"])
}

func TestTeacher_ExportStudents(t *testing.T) {
	ds := newTestDatabase(t)
	svc := newTestTeacherService(ds)
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	for _, name := range []string{"anna", "ben"} {
		seedUser(t, ds, name, shared.RoleStudent, shared.TeacherStatusNone)
		_, err := svc.LinkStudent(teacher.ID, dto.LinkStudentRequest{Email: name + "@example.com"})
		require.NoError(t, err)
	}

	data, err := svc.ExportStudents(teacher.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(studentReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Username", rows[0][0])
	assert.Equal(t, "Vocab", rows[0][len(rows[0])-6])

	usernames := []string{rows[1][0], rows[2][0]}
	assert.ElementsMatch(t, []string{"anna", "ben"}, usernames)
}
