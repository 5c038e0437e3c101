package model

// All returns every model managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&EmailVerificationToken{},
		&UserRefreshToken{},
		&ChatMessage{},
		&GeneratedContext{},
		&OnboardingProfile{},
		&JournalEntry{},
		&PlanOrder{},
		&Notification{},
	}
}
