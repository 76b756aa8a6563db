package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Zachkp/portfolio/internal/model"
)

// statusLabels maps the labels operators write in front matter to board
// columns. Matching is exact after trimming surrounding space.
var statusLabels = map[string]model.Status{
	"ideas": model.StatusIdeas,
	"Ideas": model.StatusIdeas,
	"idea":  model.StatusIdeas,
	"Idea":  model.StatusIdeas,

	"in-progress": model.StatusInProgress,
	"In Progress": model.StatusInProgress,
	"In progress": model.StatusInProgress,
	"in progress": model.StatusInProgress,
	"In-Progress": model.StatusInProgress,

	"launched": model.StatusLaunched,
	"Launched": model.StatusLaunched,
	"Live":     model.StatusLaunched,
	"live":     model.StatusLaunched,
}

// ParseStatus maps a raw status value to a canonical Status. Unrecognized or
// missing values map to StatusIdeas with ok=false so callers can report them.
func ParseStatus(raw any) (status model.Status, ok bool) {
	if raw == nil {
		return model.StatusIdeas, false
	}
	label := strings.TrimSpace(fmt.Sprint(raw))
	if s, found := statusLabels[label]; found {
		return s, true
	}
	return model.StatusIdeas, false
}

// StatusLabels lists the accepted labels, used in lint output.
func StatusLabels() []string {
	out := make([]string, 0, len(statusLabels))
	for k := range statusLabels {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
