package prompt

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/museforge-api/pkg/embedded"
)

// seedPlaceholder is substituted with the creativity seed in the composer instruction
const seedPlaceholder = "{{CREATIVITY_SEED}}"

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSuggestionSystemPrompt loads the musicologist instruction shared by all suggestions
func (l *Loader) GetSuggestionSystemPrompt() string {
	return strings.TrimSpace(string(embedded.SuggestionSystemTxt))
}

// GetComposerSystemPrompt loads the plan mandate with the creativity seed filled in
func (l *Loader) GetComposerSystemPrompt(creativitySeed float64) string {
	seed := strconv.FormatFloat(creativitySeed, 'g', -1, 64)
	return strings.ReplaceAll(strings.TrimSpace(string(embedded.ComposerSystemTxt)), seedPlaceholder, seed)
}

// GetAuditorSystemPrompt loads the QA auditor instruction
func (l *Loader) GetAuditorSystemPrompt() string {
	return strings.TrimSpace(string(embedded.AuditorSystemTxt))
}

func (l *Loader) GetCreativeDirectorSystemPrompt() string {
	return strings.TrimSpace(string(embedded.CreativeDirectorSystemTxt))
}
