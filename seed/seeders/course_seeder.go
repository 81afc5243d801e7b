package seeders

import (
	"fmt"
	"time"

	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CourseSeeder struct {
	db *gorm.DB
}

func NewCourseSeeder(db *gorm.DB) *CourseSeeder {
	return &CourseSeeder{db: db}
}

type courseData struct {
	id          string
	title       string
	description string
	level       string
	lessons     []lessonData
}

type lessonData struct {
	title       string
	description string
	skill       string
	minutes     int
	sections    []model.LessonSection
	questions   []model.Question
}

// SeedCourses creates the starter courses owned by the demo teacher.
func (s *CourseSeeder) SeedCourses() error {
	var teacher model.User
	if err := s.db.Where("id = ?", TeacherID).First(&teacher).Error; err != nil {
		return fmt.Errorf("demo teacher %s not found, run `seed users` first: %w", TeacherID, err)
	}

	now := time.Now().UTC()
	for _, c := range starterCourses() {
		course := model.Course{
			ID:          c.id,
			TeacherID:   TeacherID,
			Title:       c.title,
			Description: c.description,
			Level:       c.level,
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		created, err := createIfMissing(s.db, &model.Course{}, course.ID, &course)
		if err != nil {
			log.WithError(err).WithField("course", c.title).Error("Error creating course")
			return err
		}
		if !created {
			log.WithField("course", c.title).Info("Course already exists, skipping")
			continue
		}

		for i, l := range c.lessons {
			lesson := model.Lesson{
				ID:              fmt.Sprintf("%s-lesson-%d", c.id, i+1),
				CourseID:        c.id,
				TeacherID:       TeacherID,
				Title:           l.title,
				Description:     l.description,
				Skill:           l.skill,
				Level:           c.level,
				Content:         l.sections,
				Questions:       l.questions,
				Order:           i + 1,
				DurationMinutes: l.minutes,
				IsPublished:     true,
				Source:          shared.LessonSourceManual,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := s.db.Create(&lesson).Error; err != nil {
				log.WithError(err).WithField("lesson", l.title).Error("Error creating lesson")
				return err
			}
		}
		log.WithFields(log.Fields{"course": c.title, "lessons": len(c.lessons)}).Info("Created course")
	}
	return nil
}

func starterCourses() []courseData {
	return []courseData{
		{
			id:          "seed-course-beginner",
			title:       "Everyday English Basics",
			description: "Greetings, simple present tense and the words you need every day.",
			level:       shared.LevelBeginner,
			lessons: []lessonData{
				{
					title:       "Saying Hello",
					description: "Greetings and introductions.",
					skill:       "vocab",
					minutes:     10,
					sections: []model.LessonSection{
						{Heading: "Greetings", Body: "Use \"Hello\" at any time. \"Good morning\" is used before noon.", Examples: []string{"Hello, I'm Minh.", "Good morning, Ms. Nguyen."}},
						{Heading: "Introducing yourself", Body: "Say your name with \"I'm\" or \"My name is\".", Examples: []string{"My name is An.", "Nice to meet you."}},
					},
					questions: []model.Question{
						{ID: "seed-q-b1-1", Type: shared.QuestionTypeMultipleChoice, Prompt: "Which greeting fits 8 a.m.?", Options: []string{"Good morning", "Good evening", "Good night"}, Answer: "Good morning"},
						{ID: "seed-q-b1-2", Type: shared.QuestionTypeFillBlank, Prompt: "Nice to ____ you.", Answer: "meet"},
					},
				},
				{
					title:       "Simple Present Tense",
					description: "Talking about habits and facts.",
					skill:       "grammar",
					minutes:     15,
					sections: []model.LessonSection{
						{Heading: "Form", Body: "Add -s or -es to the verb after he, she and it.", Examples: []string{"She works in Hanoi.", "He watches TV every night."}},
					},
					questions: []model.Question{
						{ID: "seed-q-b2-1", Type: shared.QuestionTypeFillBlank, Prompt: "My brother ____ (play) football on Sundays.", Answer: "plays"},
						{ID: "seed-q-b2-2", Type: shared.QuestionTypeTrueFalse, Prompt: "\"They goes to school\" is correct.", Options: []string{"true", "false"}, Answer: "false", Explanation: "Use \"go\" with they."},
					},
				},
				{
					title:       "At the Cafe",
					description: "Listen to a short order at a cafe.",
					skill:       "listening",
					minutes:     10,
					sections: []model.LessonSection{
						{Heading: "Ordering", Body: "Polite requests start with \"Can I have\" or \"I'd like\".", Examples: []string{"Can I have a coffee, please?", "I'd like a sandwich."}},
					},
					questions: []model.Question{
						{ID: "seed-q-b3-1", Type: shared.QuestionTypeMultipleChoice, Prompt: "Which request is the most polite?", Options: []string{"Give me tea.", "I'd like a tea, please.", "Tea."}, Answer: "I'd like a tea, please."},
					},
				},
			},
		},
		{
			id:          "seed-course-intermediate",
			title:       "Communicating at Work",
			description: "Emails, meetings and describing past events.",
			level:       shared.LevelIntermediate,
			lessons: []lessonData{
				{
					title:       "Writing a Short Email",
					description: "Structure of a clear work email.",
					skill:       "writing",
					minutes:     20,
					sections: []model.LessonSection{
						{Heading: "Opening and closing", Body: "Start with \"Dear\" or \"Hi\" and close with \"Best regards\".", Examples: []string{"Dear Mr. Lee,", "Best regards, An"}},
						{Heading: "Purpose first", Body: "State why you are writing in the first sentence.", Examples: []string{"I am writing to confirm our meeting on Friday."}},
					},
					questions: []model.Question{
						{ID: "seed-q-i1-1", Type: shared.QuestionTypeShortAnswer, Prompt: "Write a one-line closing for a formal email.", Answer: "Best regards"},
					},
				},
				{
					title:       "Past Simple vs Present Perfect",
					description: "Finished time or connection to now.",
					skill:       "grammar",
					minutes:     20,
					sections: []model.LessonSection{
						{Heading: "Past simple", Body: "Use it with a finished time such as yesterday or last week.", Examples: []string{"I sent the report yesterday."}},
						{Heading: "Present perfect", Body: "Use it when the time is not stated or still continues.", Examples: []string{"I have sent the report."}},
					},
					questions: []model.Question{
						{ID: "seed-q-i2-1", Type: shared.QuestionTypeMultipleChoice, Prompt: "I ____ the client last Monday.", Options: []string{"have called", "called", "call"}, Answer: "called"},
					},
				},
			},
		},
		{
			id:          "seed-course-advanced",
			title:       "Reading the News",
			description: "Understand opinion pieces and present your view aloud.",
			level:       shared.LevelAdvanced,
			lessons: []lessonData{
				{
					title:       "Fact or Opinion",
					description: "Spot the writer's stance.",
					skill:       "reading",
					minutes:     25,
					sections: []model.LessonSection{
						{Heading: "Signal words", Body: "Words like arguably, clearly and undoubtedly mark opinion.", Examples: []string{"Arguably, the policy failed."}},
					},
					questions: []model.Question{
						{ID: "seed-q-a1-1", Type: shared.QuestionTypeTrueFalse, Prompt: "\"The bridge opened in 2020\" is an opinion.", Options: []string{"true", "false"}, Answer: "false"},
					},
				},
				{
					title:       "Presenting an Argument",
					description: "Give a one-minute spoken opinion.",
					skill:       "speaking",
					minutes:     15,
					sections: []model.LessonSection{
						{Heading: "Structure", Body: "State your view, give two reasons and finish with a conclusion.", Examples: []string{"In my view...", "Firstly...", "To sum up..."}},
					},
					questions: []model.Question{
						{ID: "seed-q-a2-1", Type: shared.QuestionTypeShortAnswer, Prompt: "Give a phrase to introduce your conclusion.", Answer: "To sum up"},
					},
				},
			},
		},
	}
}
