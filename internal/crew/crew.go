// Package crew runs a small multi-agent pipeline over a chat model.
// Each agent is a named prompt template with a role, goal and backstory.
// Tasks assign work to agents, and the crew executes the tasks
// sequentially, feeding each task's output into the next.
package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rabiawaqar06/studycrew/internal/models"
)

// inputSlot is the placeholder substituted with the prior stage's
// output (or the study text, for the first task) in task descriptions.
const inputSlot = "{input}"

type Agent struct {
	Name      string `yaml:"name" json:"name"`
	Role      string `yaml:"role" json:"role"`
	Goal      string `yaml:"goal" json:"goal"`
	Backstory string `yaml:"backstory" json:"backstory"`
}

// SystemPrompt serializes the agent's role, goal and backstory into the
// system message which frames every completion this agent performs.
func (a Agent) SystemPrompt() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are %v.", a.Role))
	if a.Backstory != "" {
		sb.WriteString(" ")
		sb.WriteString(strings.TrimSpace(a.Backstory))
	}
	if a.Goal != "" {
		sb.WriteString(fmt.Sprintf("\nYour personal goal is: %v", a.Goal))
	}
	return sb.String()
}

type Task struct {
	Name string `yaml:"name" json:"name"`
	// Agent is the name of the agent performing this task
	Agent string `yaml:"agent" json:"agent"`
	// Section is the heading under which this task's output appears
	// in the final report
	Section string `yaml:"section" json:"section"`
	// Description is the user message template. The {input} slot is
	// filled with the prior stage's output
	Description    string `yaml:"description" json:"description"`
	ExpectedOutput string `yaml:"expected_output" json:"expected_output"`
}

// Render the task description by filling the input slot, and append the
// expected output as acceptance criteria for the model.
func (t Task) Render(input string) string {
	body := strings.ReplaceAll(t.Description, inputSlot, input)
	if t.ExpectedOutput != "" {
		body += fmt.Sprintf("\n\nThis is the expected output: %v", t.ExpectedOutput)
	}
	return body
}

// Crew is an ordered collection of agents and tasks, run sequentially
// against a single chat querier.
type Crew struct {
	Agents []Agent
	Tasks  []Task

	// OnStageStart is called before each task runs, for progress output.
	// May be nil.
	OnStageStart func(Task, Agent)

	querier models.ChatQuerier
}

// New creates a crew from a definition and the querier which will
// perform the completions.
func New(def Definition, querier models.ChatQuerier) (*Crew, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid crew definition: %w", err)
	}
	if querier == nil {
		return nil, errors.New("crew needs a querier")
	}
	return &Crew{
		Agents:  def.Agents,
		Tasks:   def.Tasks,
		querier: querier,
	}, nil
}

func (c *Crew) agentByName(name string) (Agent, error) {
	for _, a := range c.Agents {
		if a.Name == name {
			return a, nil
		}
	}
	return Agent{}, fmt.Errorf("no agent named '%v'", name)
}

// Kickoff runs all tasks in order over the study text. Each task gets a
// fresh chat: the agent's system prompt plus the rendered task. The
// output of each stage becomes the input of the next. A failing stage
// aborts the whole run.
func (c *Crew) Kickoff(ctx context.Context, studyText string) (Report, error) {
	studyText = strings.TrimSpace(studyText)
	if studyText == "" {
		return Report{}, errors.New("no study text provided")
	}
	report := Report{
		StudyText: studyText,
		Created:   time.Now(),
	}
	input := studyText
	for _, task := range c.Tasks {
		agent, err := c.agentByName(task.Agent)
		if err != nil {
			return Report{}, err
		}
		if c.OnStageStart != nil {
			c.OnStageStart(task, agent)
		}
		output, err := c.runTask(ctx, task, agent, input)
		if err != nil {
			return Report{}, fmt.Errorf("stage '%v' failed: %w", task.Name, err)
		}
		report.Stages = append(report.Stages, StageResult{
			Task:    task.Name,
			Role:    agent.Role,
			Section: task.Section,
			Output:  output,
		})
		input = output
	}
	return report, nil
}

func (c *Crew) runTask(ctx context.Context, task Task, agent Agent, input string) (string, error) {
	chat := models.Chat{
		Created: time.Now(),
		ID:      task.Name,
		Messages: []models.Message{
			{Role: "system", Content: agent.SystemPrompt()},
			{Role: "user", Content: task.Render(input)},
		},
	}
	chat, err := c.querier.TextQuery(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("failed to query: %w", err)
	}
	msg, _, err := chat.LastOfRole("assistant")
	if err != nil {
		return "", fmt.Errorf("model returned no reply: %w", err)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return "", errors.New("model returned an empty reply")
	}
	return msg.Content, nil
}
