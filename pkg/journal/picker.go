package journal

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields an index in [0, n).
type Source interface {
	Intn(n int) int
}

// Prompt is a drawn, personalized prompt.
type Prompt struct {
	Category Category `json:"category"`
	Text     string   `json:"prompt"`
}

// Picker draws prompts uniformly with replacement. Safe for concurrent use.
type Picker struct {
	mu  sync.Mutex
	src Source
}

func NewPicker(src Source) *Picker {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Picker{src: src}
}

// Draw picks one prompt from the category and substitutes the recipient.
func (p *Picker) Draw(c Category, recipient string) (Prompt, error) {
	list, ok := prompts[c]
	if !ok {
		return Prompt{}, ErrUnknownCategory
	}

	p.mu.Lock()
	i := p.src.Intn(len(list))
	p.mu.Unlock()

	return Prompt{Category: c, Text: Personalize(list[i], recipient)}, nil
}

// ForDay selects the day's category and draws from it.
func (p *Picker) ForDay(day int, recipient string) Prompt {
	// CategoryForDay always returns a known category
	prompt, _ := p.Draw(CategoryForDay(day), recipient)
	return prompt
}
