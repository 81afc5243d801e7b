package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type UserServiceInterface interface {
	GetUserProfile(userID string) (*dto.UserProfileResponse, error)
}

type ProgressServiceInterface interface {
	RecordCompletion(userID string, req dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error)
	GetStats(userID string) (*dto.StatsResponse, error)
	GetAchievements(userID string) (*dto.AchievementsResponse, error)
	UpdateWeeklyGoal(userID string, goal int) (*dto.WeeklyGoalResponse, error)
	GetProgress(userID string) (*dto.ProgressResponse, error)
}

type ContentServiceInterface interface {
	ListCourses(viewer shared.Viewer, req dto.CourseListRequest) (*dto.CourseListResponse, error)
	ListTeacherCourses(teacherID string, req dto.CourseListRequest) (*dto.CourseListResponse, error)
	GetCourse(viewer shared.Viewer, courseID string) (*dto.CourseResponse, error)
	CreateCourse(teacherID string, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(viewer shared.Viewer, courseID string, req dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(viewer shared.Viewer, courseID string) error
	ListCourseLessons(viewer shared.Viewer, courseID string, req dto.LessonListRequest) (*dto.LessonListResponse, error)
	ListAllLessons(viewer shared.Viewer, req dto.LessonListRequest) (*dto.LessonListResponse, error)
	GetLesson(ctx context.Context, viewer shared.Viewer, lessonID string) (*dto.LessonResponse, error)
	CreateLesson(viewer shared.Viewer, courseID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	UpdateLesson(viewer shared.Viewer, lessonID string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, viewer shared.Viewer, lessonID string) error
}

type MediaServiceInterface interface {
	UploadLessonMedia(ctx context.Context, viewer shared.Viewer, lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
}

type TeacherServiceInterface interface {
	LinkStudent(teacherID string, req dto.LinkStudentRequest) (*dto.StudentSummary, error)
	UnlinkStudent(teacherID, studentID string) error
	ListStudents(teacherID string) (*dto.StudentListResponse, error)
	GetStudentProgress(teacherID, studentID string) (*dto.StudentProgressResponse, error)
	ExportStudents(teacherID string) ([]byte, error)
}

type AdminServiceInterface interface {
	ListUsers(req dto.UserListRequest) (*dto.UserListResponse, error)
	ListTeachers(req dto.TeacherListRequest) (*dto.TeacherListResponse, error)
	ApproveTeacher(userID string) (*dto.UserInfo, error)
	RejectTeacher(userID string, req dto.RejectTeacherRequest) (*dto.UserInfo, error)
	GrantCredits(userID string, req dto.GrantCreditsRequest) (*dto.CreditsSummary, error)
	GetPlatformStats() (*dto.PlatformStatsResponse, error)
}

type BillingServiceInterface interface {
	GetCredits(userID string) (*dto.CreditsResponse, error)
}

type AIServiceInterface interface {
	GenerateLesson(ctx context.Context, viewer shared.Viewer, req dto.GenerateLessonRequest) (*dto.GenerateLessonResponse, error)
	GenerateQuestions(ctx context.Context, viewer shared.Viewer, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	History(userID string, limit int) (*dto.AIHistoryResponse, error)
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(shared.UserID).(string)
	return userID
}

func currentViewer(c *fiber.Ctx) shared.Viewer {
	role, _ := c.Locals(shared.UserRole).(string)
	return shared.Viewer{UserID: currentUserID(c), Role: role}
}
