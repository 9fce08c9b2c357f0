package crew

import (
	"fmt"
	"strings"
	"time"
)

// reportTitle heads every rendered study report.
const reportTitle = "Study Helper Crew Analysis"

// StageResult is the output of one crew task.
type StageResult struct {
	Task    string `json:"task"`
	Role    string `json:"role"`
	Section string `json:"section"`
	Output  string `json:"output"`
}

// Report is the combined result of a crew run: the study text plus one
// stage result per task, in execution order.
type Report struct {
	StudyText string        `json:"study_text"`
	Created   time.Time     `json:"created"`
	Stages    []StageResult `json:"stages"`
}

// Render the report as markdown: a title followed by one section per
// stage. Stages without an explicit section heading fall back to their
// task name.
func (r Report) Render() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %v\n", reportTitle))
	for _, stage := range r.Stages {
		section := stage.Section
		if section == "" {
			section = stage.Task
		}
		sb.WriteString(fmt.Sprintf("\n## %v\n", section))
		sb.WriteString(strings.TrimSpace(stage.Output))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Final returns the last stage's output, which is the crew's answer
// when only the end result matters.
func (r Report) Final() string {
	if len(r.Stages) == 0 {
		return ""
	}
	return r.Stages[len(r.Stages)-1].Output
}
