package model

// All lists every table the service migrates.
func All() []interface{} {
	return []interface{}{
		&User{},
		&TeacherStudent{},
		&Course{},
		&Lesson{},
		&UserProgress{},
		&CreditAccount{},
		&CreditTransaction{},
		&AIGenerationLog{},
	}
}
