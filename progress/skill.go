// Package progress holds the learner progress document and the pure rules
// that act on it: achievement evaluation, dashboard aggregation and the
// lesson completion write path. Nothing in this package performs I/O or
// reads the wall clock; callers pass "now" explicitly.
package progress

import "strings"

// Skill is one of the six tracked English skills.
type Skill string

const (
	SkillVocab     Skill = "vocab"
	SkillGrammar   Skill = "grammar"
	SkillListening Skill = "listening"
	SkillSpeaking  Skill = "speaking"
	SkillReading   Skill = "reading"
	SkillWriting   Skill = "writing"
)

var defaultSkills = [...]Skill{
	SkillVocab,
	SkillGrammar,
	SkillListening,
	SkillSpeaking,
	SkillReading,
	SkillWriting,
}

// Skills returns the fixed skill list in display order. The slice is a copy.
func Skills() []Skill {
	out := make([]Skill, len(defaultSkills))
	copy(out, defaultSkills[:])
	return out
}

// ParseSkill accepts a skill name case-insensitively.
func ParseSkill(name string) (Skill, bool) {
	s := Skill(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range defaultSkills {
		if s == known {
			return s, true
		}
	}
	return "", false
}

func (s Skill) String() string { return string(s) }
