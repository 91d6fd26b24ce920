// Package config provides configuration structures for the resume matcher.
// It defines matcher settings (skill vocabulary, match mode, limits) and the
// server configuration loaded from flags, files and the environment.
package config

import (
	"strconv"
	"strings"

	"github.com/gcbaptista/go-resume-matcher/internal/skills"
	"github.com/gcbaptista/go-resume-matcher/internal/vocabulary"
)

const (
	// DefaultMaxTextLength caps each input document, in runes.
	DefaultMaxTextLength = 100000
)

// MatcherSettings contains the options that shape a single analysis.
//
// Skills is fixed once the server starts: the vocabulary built from it is
// shared read-only by every request.
type MatcherSettings struct {
	Skills           []string `json:"skills" mapstructure:"skills"`                         // Skill vocabulary in reporting order; defaults to the built-in list
	SkillMatchMode   string   `json:"skill_match_mode" mapstructure:"skill-match-mode"`     // "substring" (default) or "whole_word"
	MaxTextLength    int      `json:"max_text_length" mapstructure:"max-text-length"`       // Maximum runes per document
	DisableStopWords bool     `json:"disable_stop_words" mapstructure:"disable-stop-words"` // Keep English stop words during vectorization
}

// ApplyDefaults applies default values to the matcher settings
func (settings *MatcherSettings) ApplyDefaults() {
	if len(settings.Skills) == 0 {
		settings.Skills = append([]string{}, vocabulary.DefaultSkills...)
	}
	if settings.SkillMatchMode == "" {
		settings.SkillMatchMode = string(skills.MatchModeSubstring)
	}
	if settings.MaxTextLength == 0 {
		settings.MaxTextLength = DefaultMaxTextLength
	}
}

// Validate checks the settings and returns one message per problem found.
func (settings *MatcherSettings) Validate() []string {
	var problems []string

	problems = append(problems, checkDuplicates("skills", settings.Skills)...)

	for i, skill := range settings.Skills {
		if strings.TrimSpace(skill) == "" {
			problems = append(problems, "Skill at position "+strconv.Itoa(i)+" cannot be empty or whitespace-only")
		}
	}

	if _, err := skills.ParseMatchMode(settings.SkillMatchMode); err != nil {
		problems = append(problems, "Invalid skill_match_mode '"+settings.SkillMatchMode+"' (must be 'substring' or 'whole_word')")
	}

	if settings.MaxTextLength < 0 {
		problems = append(problems, "max_text_length cannot be negative")
	}

	return problems
}

// checkDuplicates checks for duplicate values (case-insensitive) in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		if seen[key] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[key] = true
	}

	return errors
}

// BuildVocabulary builds the read-only skill vocabulary for these settings.
func (settings *MatcherSettings) BuildVocabulary() (*vocabulary.Vocabulary, error) {
	return vocabulary.New(settings.Skills...)
}

// BuildExtractor builds the skill extractor for these settings.
func (settings *MatcherSettings) BuildExtractor() (*skills.Extractor, error) {
	vocab, err := settings.BuildVocabulary()
	if err != nil {
		return nil, err
	}
	mode, err := skills.ParseMatchMode(settings.SkillMatchMode)
	if err != nil {
		return nil, err
	}
	return skills.NewExtractor(vocab, mode), nil
}
