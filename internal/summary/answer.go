package summary

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/logger"
)

// Answer is the outcome of pulling a tagged answer out of analysis model
// output. Extracted reports whether the expected tags were present; when
// false, Text carries the raw model output unchanged.
type Answer struct {
	Text      string
	Extracted bool
}

// ExtractAnswer returns the trimmed content of the first <tag>...</tag> span
// in raw. Matching ignores case and spans newlines. Output without tags is
// passed through untouched so a partially compliant model response still
// reaches the caller.
func ExtractAnswer(raw, tag string) Answer {
	quoted := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`(?is)<` + quoted + `>(.*?)</` + quoted + `>`)
	m := re.FindStringSubmatch(raw)
	if m == nil {
		logger.Warn("answer tags missing from analysis output, returning raw text",
			zap.String("tag", tag))
		return Answer{Text: raw}
	}
	return Answer{Text: strings.TrimSpace(m[1]), Extracted: true}
}
