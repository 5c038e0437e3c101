// Package journal holds the daily journaling prompt table and the rules
// that pick a prompt for a program day.
package journal

import (
	"errors"
	"strings"
)

type Category string

const (
	CategoryWakeUp        Category = "wake_up"
	CategoryUnderstanding Category = "understanding"
	CategoryAppreciation  Category = "appreciation"
	CategoryCommitment    Category = "commitment"
)

// RecipientToken is replaced with the recipient's name.
const RecipientToken = "[RECIPIENT]"

// DefaultRecipient is used when no recipient name is known.
const DefaultRecipient = "them"

var ErrUnknownCategory = errors.New("unknown prompt category")

var prompts = map[Category][]string{
	CategoryWakeUp: {
		"What's on your mind this morning? How are you feeling about today?",
		"What did you dream about last night? Any feelings lingering?",
		"What's one thing you're grateful for right now?",
	},
	CategoryUnderstanding: {
		"What did you understand about yourself today that you didn't before?",
		"What patterns do you notice in your behavior that need to change?",
		"What would you tell yourself from a year ago?",
	},
	CategoryAppreciation: {
		"What do you appreciate most about [RECIPIENT]?",
		"What memories with [RECIPIENT] make you smile?",
		"What qualities in [RECIPIENT] do you admire?",
	},
	CategoryCommitment: {
		"What concrete step did you take today to become better?",
		"How did you show up differently today?",
		"What promise to yourself did you keep today?",
	},
}

// Categories lists the categories in rotation order.
func Categories() []Category {
	return []Category{CategoryWakeUp, CategoryUnderstanding, CategoryAppreciation, CategoryCommitment}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := prompts[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// Prompts returns a copy of the category's prompts, unpersonalized.
func Prompts(c Category) ([]string, error) {
	list, ok := prompts[c]
	if !ok {
		return nil, ErrUnknownCategory
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// CategoryForDay maps a program day onto the weekly band:
// 0-2 wake_up, 3-4 understanding, 5 appreciation, 6 commitment.
func CategoryForDay(day int) Category {
	r := ((day % 7) + 7) % 7
	switch {
	case r <= 2:
		return CategoryWakeUp
	case r <= 4:
		return CategoryUnderstanding
	case r == 5:
		return CategoryAppreciation
	default:
		return CategoryCommitment
	}
}

// Personalize replaces the first recipient token. An empty name becomes "them".
func Personalize(prompt, recipient string) string {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		recipient = DefaultRecipient
	}
	return strings.Replace(prompt, RecipientToken, recipient, 1)
}

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
