package recipe

import (
	"regexp"
)

var stepOrdinalPrefix = regexp.MustCompile(`^\d+-\s*`)

// CleanStepDescription strips a leading ordinal prefix like "3- " from a step
// description. Text without the prefix is returned unchanged, so the cleanup
// is idempotent.
func CleanStepDescription(description string) string {
	return stepOrdinalPrefix.ReplaceAllString(description, "")
}
