package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/llm"
	"github.com/lac-hong-legacy/english_api/model"
	"github.com/lac-hong-legacy/english_api/shared"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

//go:embed prompts/lesson_generator.yaml
var lessonGeneratorYAML []byte

//go:embed prompts/question_generator.yaml
var questionGeneratorYAML []byte

const (
	PurposeLesson    = "lesson"
	PurposeQuestions = "questions"

	defaultLessonCost    = 2
	defaultQuestionsCost = 1
	defaultQuestionCount = 5

	lessonMaxTokens    = 4096
	questionsMaxTokens = 2048
)

type promptTemplate struct {
	SystemPrompt string `yaml:"system_prompt"`
	UserTemplate string `yaml:"user_template"`

	user *template.Template
}

type promptInput struct {
	Topic   string
	Skill   string
	Level   string
	Count   int
	Context string
}

func loadPrompt(name string, raw []byte) (*promptTemplate, error) {
	var p promptTemplate
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("error parsing prompt yaml %s: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(p.UserTemplate)
	if err != nil {
		return nil, fmt.Errorf("error parsing prompt template %s: %w", name, err)
	}
	p.user = tmpl
	return &p, nil
}

func (p *promptTemplate) render(in promptInput) (string, error) {
	var buf bytes.Buffer
	if err := p.user.Execute(&buf, in); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

var questionSchema = map[string]any{
	"type":     "object",
	"required": []any{"type", "prompt", "answer"},
	"properties": map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": []any{shared.QuestionTypeMultipleChoice, shared.QuestionTypeFillBlank, shared.QuestionTypeTrueFalse, shared.QuestionTypeShortAnswer},
		},
		"prompt":      map[string]any{"type": "string", "minLength": 1},
		"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"answer":      map[string]any{"type": "string", "minLength": 1},
		"explanation": map[string]any{"type": "string"},
	},
}

var lessonSchema = &llm.Schema{
	Name:        "generated_lesson",
	Description: "An English lesson with content sections and practice questions",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"title", "description", "content", "questions"},
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 3},
			"description": map[string]any{"type": "string"},
			"content": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"heading", "body"},
					"properties": map[string]any{
						"heading":  map[string]any{"type": "string", "minLength": 1},
						"body":     map[string]any{"type": "string", "minLength": 1},
						"examples": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
				},
			},
			"questions": map[string]any{"type": "array", "items": questionSchema},
		},
	},
}

var questionsSchema = &llm.Schema{
	Name:        "generated_questions",
	Description: "Practice questions for an English lesson",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{"type": "array", "minItems": 1, "items": questionSchema},
		},
	},
}

// AIService generates lessons and questions with the configured model,
// charging credits up front and refunding them when generation fails.
type AIService struct {
	appContext.DefaultService

	db         *PostgresService
	contentSvc *ContentService
	billingSvc *BillingService
	monitor    *MonitoringService
	provider   llm.Provider

	cfg           llm.Config
	lessonCost    int
	questionsCost int

	lessonPrompt    *promptTemplate
	questionsPrompt *promptTemplate
}

const AI_SVC = "ai_svc"

func (svc AIService) Id() string {
	return AI_SVC
}

func (svc *AIService) Configure(ctx *appContext.Context) error {
	svc.cfg = llm.ConfigFromEnv()
	svc.lessonCost = envInt("AI_LESSON_COST", defaultLessonCost)
	svc.questionsCost = envInt("AI_QUESTIONS_COST", defaultQuestionsCost)

	if err := svc.loadPrompts(); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *AIService) Start() error {
	svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.billingSvc = svc.Service(BILLING_SVC).(*BillingService)
	svc.monitor = svc.Service(MONITORING_SVC).(*MonitoringService)

	sink := &generationSink{db: svc.db, monitor: svc.monitor}
	provider, err := llm.NewProvider(context.Background(), svc.cfg, sink)
	if err != nil {
		return err
	}
	svc.provider = provider

	log.WithFields(log.Fields{
		"provider": svc.cfg.Provider,
		"model":    provider.ModelID(),
	}).Info("AI generation ready")
	return nil
}

func (svc *AIService) loadPrompts() error {
	var err error
	if svc.lessonPrompt, err = loadPrompt("lesson_generator", lessonGeneratorYAML); err != nil {
		return err
	}
	svc.questionsPrompt, err = loadPrompt("question_generator", questionGeneratorYAML)
	return err
}

// GenerateLesson writes a lesson. With a course id the result is also
// saved to that course as an unpublished draft.
func (svc *AIService) GenerateLesson(ctx context.Context, viewer shared.Viewer, req dto.GenerateLessonRequest) (*dto.GenerateLessonResponse, error) {
	if req.CourseID != "" {
		// ownership is checked before any credit is taken
		if _, err := svc.contentSvc.ownedCourse(viewer, req.CourseID); err != nil {
			return nil, err
		}
	}

	count := req.QuestionCount
	if count == 0 {
		count = defaultQuestionCount
	}
	userPrompt, err := svc.lessonPrompt.render(promptInput{Topic: req.Topic, Skill: req.Skill, Level: req.Level, Count: count})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build prompt")
	}

	var lesson dto.GeneratedLesson
	credits, modelID, reference, err := svc.generate(ctx, viewer.UserID, PurposeLesson, svc.lessonCost,
		llm.UserPrompt(svc.lessonPrompt.SystemPrompt, userPrompt, lessonSchema, lessonMaxTokens), &lesson)
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerateLessonResponse{
		Lesson:      lesson,
		CreditsUsed: svc.lessonCost,
		CreditsLeft: credits.Balance,
		Model:       modelID,
	}

	if req.CourseID != "" {
		saved, err := svc.contentSvc.SaveGeneratedLesson(viewer, req.CourseID, req.Skill, req.Level, lesson)
		if err != nil {
			if refundErr := svc.billingSvc.Refund(viewer.UserID, svc.lessonCost, reference); refundErr != nil {
				return nil, refundErr
			}
			log.WithError(err).WithFields(log.Fields{
				"user_id":   viewer.UserID,
				"course_id": req.CourseID,
			}).Warn("Saving generated lesson failed, credits refunded")
			return nil, err
		}
		resp.SavedLesson = saved
	}
	return resp, nil
}

// GenerateQuestions writes practice questions. When a lesson id is given the
// lesson body is used as context; the questions are returned, not stored.
func (svc *AIService) GenerateQuestions(ctx context.Context, viewer shared.Viewer, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	input := promptInput{Topic: req.Topic, Skill: req.Skill, Level: req.Level, Count: req.Count}
	if input.Count == 0 {
		input.Count = defaultQuestionCount
	}

	if req.LessonID != "" {
		lesson, err := svc.contentSvc.ownedLesson(viewer, req.LessonID)
		if err != nil {
			return nil, err
		}
		input.Context = lessonContext(lesson)
	}

	userPrompt, err := svc.questionsPrompt.render(input)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build prompt")
	}

	var out struct {
		Questions []dto.QuestionPayload `json:"questions"`
	}
	credits, modelID, _, err := svc.generate(ctx, viewer.UserID, PurposeQuestions, svc.questionsCost,
		llm.UserPrompt(svc.questionsPrompt.SystemPrompt, userPrompt, questionsSchema, questionsMaxTokens), &out)
	if err != nil {
		return nil, err
	}

	for i := range out.Questions {
		if out.Questions[i].ID == "" {
			out.Questions[i].ID = uuid.NewString()
		}
	}

	return &dto.GenerateQuestionsResponse{
		Questions:   out.Questions,
		LessonID:    req.LessonID,
		CreditsUsed: svc.questionsCost,
		CreditsLeft: credits.Balance,
		Model:       modelID,
	}, nil
}

// generate charges cost, calls the model and decodes the JSON reply into
// dest. A failed call refunds the charge; the returned reference lets the
// caller refund later steps.
func (svc *AIService) generate(ctx context.Context, userID, purpose string, cost int, req llm.Request, dest any) (*dto.CreditsSummary, string, string, error) {
	reference := purpose + ":" + uuid.NewString()
	reason := CreditReasonAILesson
	if purpose == PurposeQuestions {
		reason = CreditReasonAIQuestions
	}

	credits, err := svc.billingSvc.Consume(userID, cost, reason, reference)
	if err != nil {
		return nil, "", "", err
	}

	ctx = llm.WithPurpose(llm.WithUser(ctx, userID), purpose)
	resp, err := svc.provider.Generate(ctx, req)
	if err == nil {
		if decodeErr := sonic.Unmarshal(resp.Content, dest); decodeErr != nil {
			err = &llm.InvalidResponseError{Content: resp.Content, Err: decodeErr}
		}
	}
	if err != nil {
		if refundErr := svc.billingSvc.Refund(userID, cost, reference); refundErr != nil {
			return nil, "", "", refundErr
		}
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"purpose": purpose,
		}).Warn("AI generation failed, credits refunded")
		return nil, "", "", shared.NewServiceUnavailableError(err, "AI generation is unavailable, your credits were refunded")
	}

	return credits, resp.Model, reference, nil
}

// History lists the caller's recent generation requests.
func (svc *AIService) History(userID string, limit int) (*dto.AIHistoryResponse, error) {
	logs, err := svc.db.AILogs().ListByUser(userID, limit)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.AIHistoryResponse{Generations: make([]dto.AIGenerationInfo, len(logs))}
	for i, l := range logs {
		resp.Generations[i] = dto.AIGenerationInfo{
			ID:           l.ID,
			Purpose:      l.Purpose,
			Model:        l.Model,
			LatencyMs:    l.LatencyMs,
			InputTokens:  l.InputTokens,
			OutputTokens: l.OutputTokens,
			Success:      l.Success,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		}
	}
	return resp, nil
}

func lessonContext(lesson *model.Lesson) string {
	var b strings.Builder
	b.WriteString(lesson.Title)
	b.WriteString("\n")
	for _, s := range lesson.Content {
		b.WriteString(s.Heading)
		b.WriteString(": ")
		b.WriteString(s.Body)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// generationSink stores every model call and feeds the AI metrics.
type generationSink struct {
	db      *PostgresService
	monitor *MonitoringService
}

func (s *generationSink) RecordGeneration(_ context.Context, ev llm.Event) error {
	s.monitor.RecordGeneration(ev.Purpose, ev.Success, time.Duration(ev.LatencyMs)*time.Millisecond)

	return s.db.AILogs().Create(&model.AIGenerationLog{
		UserID:       ev.UserID,
		Purpose:      ev.Purpose,
		Model:        ev.Model,
		LatencyMs:    ev.LatencyMs,
		InputTokens:  ev.InputTokens,
		OutputTokens: ev.OutputTokens,
		Success:      ev.Success,
		ErrorMessage: ev.ErrorMessage,
	})
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v >= 0 {
		return v
	}
	return fallback
}
