package orchestration

import (
	"strings"

	apperrors "github.com/agbru/frankestudy/internal/errors"
	"github.com/agbru/frankestudy/internal/study"
)

// SelectScenarios determines which scenarios of st should be executed.
// An empty selection keeps every scenario. Otherwise each name matches a
// scenario name or a category, case-insensitively, and the study order is
// preserved.
//
// Parameters:
//   - st: The loaded study.
//   - names: Scenario names or categories, typically from --only.
//
// Returns:
//   - *study.Study: A study sharing st's sample with the selected scenarios.
//   - error: A ConfigError naming the first selection that matched nothing.
func SelectScenarios(st *study.Study, names []string) (*study.Study, error) {
	if len(names) == 0 {
		return st, nil
	}
	matched := make([]bool, len(names))
	selected := make([]study.Scenario, 0, len(st.Scenarios))
	for _, sc := range st.Scenarios {
		keep := false
		for i, name := range names {
			if strings.EqualFold(name, sc.Name) || strings.EqualFold(name, sc.Category) {
				matched[i] = true
				keep = true
			}
		}
		if keep {
			selected = append(selected, sc)
		}
	}
	for i, ok := range matched {
		if !ok {
			return nil, apperrors.NewConfigError("no scenario or category named %q", names[i])
		}
	}
	return &study.Study{Sample: st.Sample, Scenarios: selected}, nil
}
