package crew

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"gopkg.in/yaml.v3"
)

// DefinitionFileName is the crew definition living in the config dir.
// Users may edit it to reshape agents, prompts and report sections.
const DefinitionFileName = "crew.yaml"

// Definition describes a crew as it appears on disk. The struct mirrors
// the crew.yaml schema and is validated before it is wired into a run.
type Definition struct {
	Agents []Agent `yaml:"agents" json:"agents"`
	Tasks  []Task  `yaml:"tasks" json:"tasks"`
}

// Validate the definition: at least one task, every task references a
// defined agent, and agents carry non-empty names and roles.
func (d Definition) Validate() error {
	if len(d.Tasks) == 0 {
		return errors.New("crew definition has no tasks")
	}
	if len(d.Agents) == 0 {
		return errors.New("crew definition has no agents")
	}
	agentNames := make(map[string]bool, len(d.Agents))
	for i, a := range d.Agents {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("agent %v has no name", i)
		}
		if strings.TrimSpace(a.Role) == "" {
			return fmt.Errorf("agent '%v' has no role", a.Name)
		}
		if agentNames[a.Name] {
			return fmt.Errorf("duplicate agent name '%v'", a.Name)
		}
		agentNames[a.Name] = true
	}
	for i, t := range d.Tasks {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("task %v has no name", i)
		}
		if !agentNames[t.Agent] {
			return fmt.Errorf("task '%v' references unknown agent '%v'", t.Name, t.Agent)
		}
		if !strings.Contains(t.Description, inputSlot) {
			return fmt.Errorf("task '%v' description misses the %v slot", t.Name, inputSlot)
		}
	}
	return nil
}

// ParseDefinition decodes and validates a single crew definition payload.
func ParseDefinition(data []byte) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, errors.New("crew definition payload is empty")
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("failed to decode crew definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// LoadDefinition reads a YAML file from disk and returns the parsed crew.
func LoadDefinition(filePath string) (Definition, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read crew definition '%v': %w", filePath, err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return Definition{}, fmt.Errorf("crew definition '%v': %w", filePath, err)
	}
	return def, nil
}

// EnsureDefinition returns the crew definition from the config dir,
// writing the default definition on first use.
func EnsureDefinition(configDir string) (Definition, error) {
	defPath := path.Join(configDir, DefinitionFileName)
	if _, err := os.Stat(defPath); os.IsNotExist(err) {
		data, err := yaml.Marshal(DefaultDefinition())
		if err != nil {
			return Definition{}, fmt.Errorf("failed to marshal default crew: %w", err)
		}
		if err := os.WriteFile(defPath, data, 0o644); err != nil {
			return Definition{}, fmt.Errorf("failed to write default crew definition: %w", err)
		}
		ancli.PrintOK(fmt.Sprintf("created default crew definition at: '%v'\n", defPath))
	}
	return LoadDefinition(defPath)
}

// DefaultDefinition is the study helper crew: a reader extracting key
// points, an explainer simplifying them and a quiz generator producing
// practice questions.
func DefaultDefinition() Definition {
	return Definition{
		Agents: []Agent{
			{
				Name: "reader",
				Role: "Text Reader and Summarizer",
				Goal: "Read and extract the most important key points from the given text",
				Backstory: `You are an expert at reading and analyzing text. Your job is to:
1. Read the input text carefully
2. Identify the main topics and concepts
3. Extract the most important key points
4. Organize them in a clear, structured way
5. Focus on the most relevant information for learning`,
			},
			{
				Name: "explainer",
				Role: "Concept Explainer",
				Goal: "Simplify complex concepts into easy-to-understand explanations",
				Backstory: `You are a master teacher who excels at explaining complex topics in simple terms. Your job is to:
1. Take the key points from the reader
2. Break down complex concepts into simpler parts
3. Use analogies, examples, and everyday language
4. Make sure explanations are clear and easy to follow
5. Focus on helping students truly understand the material`,
			},
			{
				Name: "quizmaster",
				Role: "Quiz Generator",
				Goal: "Create effective practice questions to test understanding",
				Backstory: `You are an expert educator who creates excellent practice questions. Your job is to:
1. Review the key points and explanations
2. Create 3-5 high-quality practice questions
3. Include both multiple choice and short answer questions
4. Make questions that test different levels of understanding
5. Provide clear, correct answers for all questions`,
			},
		},
		Tasks: []Task{
			{
				Name:    "summarize",
				Agent:   "reader",
				Section: "📖 Key Points Summary",
				Description: `Read and analyze the following text carefully:

{input}

Extract and summarize the key points. Focus on:
- Main topics and concepts
- Important details and facts
- Key relationships between ideas
- Most relevant information for learning

Provide a clear, organized summary of the key points.`,
				ExpectedOutput: "A well-organized summary of key points from the text, structured for easy understanding.",
			},
			{
				Name:    "explain",
				Agent:   "explainer",
				Section: "💡 Simple Explanations",
				Description: `Take the following key points and explain them in simple, easy-to-understand terms:

{input}

Your explanation should:
- Use simple, clear language
- Include analogies or examples where helpful
- Break down complex concepts into smaller parts
- Make connections between different ideas
- Help students truly understand the material

Focus on making the content accessible and memorable.`,
				ExpectedOutput: "Clear, simple explanations of the key concepts that help students understand the material.",
			},
			{
				Name:    "quiz",
				Agent:   "quizmaster",
				Section: "❓ Practice Questions",
				Description: `Based on the following explanations, create 3-5 practice questions:

{input}

Create questions that:
- Test understanding of the main concepts
- Include both multiple choice and short answer questions
- Cover different levels of difficulty
- Are clear and unambiguous
- Help students practice and learn

For each question, provide:
- The question text
- Multiple choice options (if applicable)
- The correct answer
- A brief explanation of why the answer is correct`,
				ExpectedOutput: "3-5 well-crafted practice questions with answers and explanations.",
			},
		},
	}
}
