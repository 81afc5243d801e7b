package services

import (
	"errors"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/progress"
	"github.com/lac-hong-legacy/english_api/services/repositories"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const studentReportSheet = "Students"

// TeacherService manages a teacher's class roster and reports.
type TeacherService struct {
	context.DefaultService

	db          *PostgresService
	users       *repositories.UserRepository
	progressSvc *ProgressService
}

const TEACHER_SVC = "teacher_svc"

func (svc TeacherService) Id() string {
	return TEACHER_SVC
}

func (svc *TeacherService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *TeacherService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.users = svc.db.Users()
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	return nil
}

// LinkStudent adds a student account, found by email, to the teacher's roster.
func (svc *TeacherService) LinkStudent(teacherID string, req dto.LinkStudentRequest) (*dto.StudentSummary, error) {
	student, err := svc.users.GetUserByEmail(strings.TrimSpace(strings.ToLower(req.Email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError(err, "No student with this email")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if student.Role != shared.RoleStudent {
		return nil, shared.NewBadRequestError(nil, "Only student accounts can be linked")
	}

	link, err := svc.users.LinkStudent(teacherID, student.ID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	record, err := svc.progressSvc.EnsureProgress(student.ID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"teacher_id": teacherID, "student_id": student.ID}).Info("Student linked")
	summary := svc.studentSummary(student, link.CreatedAt, record)
	return &summary, nil
}

func (svc *TeacherService) UnlinkStudent(teacherID, studentID string) error {
	err := svc.users.UnlinkStudent(teacherID, studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(err, "Student is not linked to you")
	}
	if err != nil {
		return svc.db.HandleError(err)
	}
	log.WithFields(log.Fields{"teacher_id": teacherID, "student_id": studentID}).Info("Student unlinked")
	return nil
}

func (svc *TeacherService) ListStudents(teacherID string) (*dto.StudentListResponse, error) {
	links, records, err := svc.roster(teacherID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentListResponse{
		Students: make([]dto.StudentSummary, len(links)),
		Total:    len(links),
	}
	for i := range links {
		student := &links[i].Student
		resp.Students[i] = svc.studentSummary(student, links[i].CreatedAt, records[student.ID])
	}
	return resp, nil
}

// GetStudentProgress returns the full dashboard of a linked student.
func (svc *TeacherService) GetStudentProgress(teacherID, studentID string) (*dto.StudentProgressResponse, error) {
	linked, err := svc.users.IsLinked(teacherID, studentID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if !linked {
		return nil, shared.NewNotFoundError(nil, "Student is not linked to you")
	}

	student, err := svc.users.GetUserByID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError(err, "Student not found")
	}
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	record, err := svc.progressSvc.EnsureProgress(studentID)
	if err != nil {
		return nil, err
	}

	stats, achievements := svc.progressSvc.StudentReport(record)
	return &dto.StudentProgressResponse{
		Student:      mapUserToInfo(student),
		Stats:        stats,
		Achievements: achievements,
	}, nil
}

// ExportStudents renders the roster with per-skill scores as an xlsx workbook.
func (svc *TeacherService) ExportStudents(teacherID string) ([]byte, error) {
	links, records, err := svc.roster(teacherID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", studentReportSheet); err != nil {
		return nil, shared.NewInternalError(err, "Failed to build report")
	}

	skills := progress.Skills()
	header := []interface{}{
		"Username", "Full name", "Email", "Linked at",
		"Lessons completed", "Average score", "Streak", "Time spent (min)",
		"Weekly progress", "Weekly goal", "Achievements", "Last activity",
	}
	for _, s := range skills {
		name := string(s)
		header = append(header, strings.ToUpper(name[:1])+name[1:])
	}
	if err := f.SetSheetRow(studentReportSheet, "A1", &header); err != nil {
		return nil, shared.NewInternalError(err, "Failed to build report")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(header))
		_ = f.SetCellStyle(studentReportSheet, "A1", lastCol+"1", bold)
	}

	for i := range links {
		student := &links[i].Student
		record := records[student.ID]
		summary := svc.progressSvc.Summary(record)

		lastActivity := ""
		if summary.LastActivityAt != nil {
			lastActivity = summary.LastActivityAt.UTC().Format(time.RFC3339)
		}

		row := []interface{}{
			student.Username, student.FullName, student.Email, links[i].CreatedAt.UTC().Format(time.RFC3339),
			summary.TotalLessonsCompleted, summary.AverageScore, summary.Streak, summary.TotalTimeSpent,
			summary.WeeklyProgress, summary.WeeklyGoal, summary.AchievementsCount, lastActivity,
		}
		scores := svc.progressSvc.aggregator.SkillScores(record)
		for _, s := range skills {
			row = append(row, scores[s])
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(studentReportSheet, cell, &row); err != nil {
			return nil, shared.NewInternalError(err, "Failed to build report")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build report")
	}

	log.WithFields(log.Fields{"teacher_id": teacherID, "students": len(links)}).Info("Student report exported")
	return buf.Bytes(), nil
}

func (svc *TeacherService) roster(teacherID string) ([]model.TeacherStudent, map[string]*progress.Record, error) {
	links, err := svc.users.ListStudents(teacherID)
	if err != nil {
		return nil, nil, svc.db.HandleError(err)
	}

	ids := make([]string, len(links))
	for i := range links {
		ids[i] = links[i].StudentID
	}
	records, err := svc.progressSvc.RecordsFor(ids)
	if err != nil {
		return nil, nil, err
	}
	return links, records, nil
}

func (svc *TeacherService) studentSummary(student *model.User, linkedAt time.Time, record *progress.Record) dto.StudentSummary {
	return dto.StudentSummary{
		ID:       student.ID,
		Username: student.Username,
		Email:    student.Email,
		FullName: student.FullName,
		LinkedAt: linkedAt,
		Progress: svc.progressSvc.Summary(record),
	}
}
