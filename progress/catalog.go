package progress

import "math"

type Category string

const (
	CategoryStreak  Category = "streak"
	CategoryLessons Category = "lessons"
	CategoryScore   Category = "score"
	CategoryTime    Category = "time"
	CategorySpecial Category = "special"
	CategorySkills  Category = "skills"
)

const (
	AchievementFirstLesson    = "first_lesson"
	AchievementStreak3        = "streak_3"
	AchievementStreak7        = "streak_7"
	AchievementStreak30       = "streak_30"
	AchievementLessons10      = "lessons_10"
	AchievementLessons50      = "lessons_50"
	AchievementPerfectScore   = "perfect_score"
	AchievementSkillMaster    = "skill_master"
	AchievementTimeMaster     = "time_master"
	AchievementWeeklyChampion = "weekly_champion"
)

// SkillMasterID is the per-skill mastery badge identifier.
func SkillMasterID(s Skill) string {
	return string(s) + "_master"
}

type Achievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	// Bonus entries are awarded but left out of totals and category counts.
	Bonus bool `json:"bonus"`
}

// Catalog is the immutable set of achievements plus legacy aliases.
type Catalog struct {
	entries []Achievement
	index   map[string]int
	aliases map[string]string
}

var coreAchievements = []Achievement{
	{ID: AchievementFirstLesson, Name: "First Steps", Description: "Complete your first lesson", Category: CategoryLessons},
	{ID: AchievementStreak3, Name: "On a Roll", Description: "Study 3 days in a row", Category: CategoryStreak},
	{ID: AchievementStreak7, Name: "Week Warrior", Description: "Study 7 days in a row", Category: CategoryStreak},
	{ID: AchievementStreak30, Name: "Monthly Master", Description: "Study 30 days in a row", Category: CategoryStreak},
	{ID: AchievementLessons10, Name: "Dedicated Learner", Description: "Complete 10 lessons", Category: CategoryLessons},
	{ID: AchievementLessons50, Name: "Knowledge Seeker", Description: "Complete 50 lessons", Category: CategoryLessons},
	{ID: AchievementPerfectScore, Name: "Perfectionist", Description: "Score 100 in a recent lesson", Category: CategoryScore},
	{ID: AchievementSkillMaster, Name: "Well Rounded", Description: "Reach 80 in every skill", Category: CategoryScore},
	{ID: AchievementTimeMaster, Name: "Time Master", Description: "Study for 100 hours", Category: CategoryTime},
	{ID: AchievementWeeklyChampion, Name: "Weekly Champion", Description: "Reach your weekly goal", Category: CategorySpecial},
}

var legacyAliases = map[string]string{
	"week_streak":  AchievementStreak7,
	"month_streak": AchievementStreak30,
}

// DefaultCatalog builds the ten core achievements followed by one bonus
// mastery badge per skill.
func DefaultCatalog(skills []Skill) *Catalog {
	entries := make([]Achievement, 0, len(coreAchievements)+len(skills))
	entries = append(entries, coreAchievements...)
	for _, s := range skills {
		entries = append(entries, Achievement{
			ID:          SkillMasterID(s),
			Name:        "Master of " + string(s),
			Description: "Reach 90 in " + string(s),
			Category:    CategorySkills,
			Bonus:       true,
		})
	}
	return NewCatalog(entries, legacyAliases)
}

func NewCatalog(entries []Achievement, aliases map[string]string) *Catalog {
	c := &Catalog{
		entries: append([]Achievement(nil), entries...),
		index:   make(map[string]int, len(entries)),
		aliases: make(map[string]string, len(aliases)),
	}
	for i, a := range c.entries {
		c.index[a.ID] = i
	}
	for k, v := range aliases {
		c.aliases[k] = v
	}
	return c
}

func (c *Catalog) All() []Achievement {
	return append([]Achievement(nil), c.entries...)
}

func (c *Catalog) Lookup(id string) (Achievement, bool) {
	i, ok := c.index[c.Canonical(id)]
	if !ok {
		return Achievement{}, false
	}
	return c.entries[i], true
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Canonical resolves a legacy alias to its catalog identifier.
func (c *Catalog) Canonical(id string) string {
	if canonical, ok := c.aliases[id]; ok {
		return canonical
	}
	return id
}

// Earned returns the canonical identifiers held by the record.
func (c *Catalog) Earned(r *Record) map[string]bool {
	earned := make(map[string]bool, len(r.Achievements))
	for _, id := range r.Achievements {
		earned[c.Canonical(id)] = true
	}
	return earned
}

// TotalAvailable counts the non-bonus entries.
func (c *Catalog) TotalAvailable() int {
	n := 0
	for _, a := range c.entries {
		if !a.Bonus {
			n++
		}
	}
	return n
}

type CategorySummary struct {
	Earned     int `json:"earned"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type Summary struct {
	TotalEarned    int                          `json:"totalEarned"`
	TotalAvailable int                          `json:"totalAvailable"`
	Categories     map[Category]CategorySummary `json:"categories"`
	SkillBadges    []string                     `json:"skillBadges"`
}

// Summarize groups the record's achievements by category.
func (c *Catalog) Summarize(r *Record) Summary {
	earned := c.Earned(r)
	s := Summary{
		TotalAvailable: c.TotalAvailable(),
		Categories: map[Category]CategorySummary{
			CategoryStreak:  {},
			CategoryLessons: {},
			CategoryScore:   {},
			CategoryTime:    {},
			CategorySpecial: {},
		},
		SkillBadges: []string{},
	}

	for _, a := range c.entries {
		if a.Bonus {
			if earned[a.ID] {
				s.SkillBadges = append(s.SkillBadges, a.ID)
			}
			continue
		}
		cat := s.Categories[a.Category]
		cat.Total++
		if earned[a.ID] {
			cat.Earned++
			s.TotalEarned++
		}
		s.Categories[a.Category] = cat
	}

	for k, cat := range s.Categories {
		if cat.Total > 0 {
			cat.Percentage = int(math.Round(float64(cat.Earned) / float64(cat.Total) * 100))
		}
		s.Categories[k] = cat
	}
	return s
}
