package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/serenpaths/seren/internal/types"
)

// Field limits for inbound requests.
const (
	MaxExperienceIDLength = 128
	MaxFeedbackLength     = 64
	MaxCategoryLength     = 100
	MaxListItems          = 50
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateEnum returns an error if the value is not in the allowed list.
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateIntRange returns an error if the value is outside [min, max].
func ValidateIntRange(field string, value, min, max int) *ValidationError {
	if value < min || value > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", min, max),
		}
	}
	return nil
}

// ValidateMaxItems returns an error if the list has more than max entries.
func ValidateMaxItems(field string, count, max int) *ValidationError {
	if count > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum of %d items", max),
		}
	}
	return nil
}

// ValidateFeedbackRequest checks a feedback submission. The feedback tag
// itself is free-form; only presence and size are enforced here.
func ValidateFeedbackRequest(req types.FeedbackRequest) []ValidationError {
	c := &Collector{}
	c.Add(ValidateRequired("experience_id", req.ExperienceID))
	c.Add(ValidateUTF8("experience_id", req.ExperienceID))
	c.Add(ValidateMaxLength("experience_id", req.ExperienceID, MaxExperienceIDLength))
	c.Add(ValidateRequired("feedback", req.Feedback))
	c.Add(ValidateUTF8("feedback", req.Feedback))
	c.Add(ValidateMaxLength("feedback", req.Feedback, MaxFeedbackLength))
	return c.Errors()
}

// ValidatePreferences checks declared interests and avoid lists.
func ValidatePreferences(prefs types.UserPreferences) []ValidationError {
	c := &Collector{}
	c.Add(ValidateMaxItems("preferences.interests", len(prefs.Interests), MaxListItems))
	c.Add(ValidateMaxItems("preferences.avoidCategories", len(prefs.AvoidCategories), MaxListItems))
	for i, interest := range prefs.Interests {
		field := fmt.Sprintf("preferences.interests[%d]", i)
		c.Add(ValidateUTF8(field, interest))
		c.Add(ValidateMaxLength(field, interest, MaxCategoryLength))
	}
	for i, cat := range prefs.AvoidCategories {
		field := fmt.Sprintf("preferences.avoidCategories[%d]", i)
		c.Add(ValidateUTF8(field, cat))
		c.Add(ValidateMaxLength(field, cat, MaxCategoryLength))
	}
	return c.Errors()
}
