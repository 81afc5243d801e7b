package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"

	TeacherStatusNone     = "none"
	TeacherStatusPending  = "pending"
	TeacherStatusApproved = "approved"
	TeacherStatusRejected = "rejected"

	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"

	LessonSourceManual = "manual"
	LessonSourceAI     = "ai"

	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeFillBlank      = "fill_blank"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)
