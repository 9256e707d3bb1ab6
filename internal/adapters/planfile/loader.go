// Package planfile loads the orchestrator's task plan from YAML.
// The Sentinel consumes plans; producing them is external.
package planfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/sentinel/internal/models"
)

type planDoc struct {
	Waves []waveDoc `yaml:"waves"`
	Tasks []taskDoc `yaml:"tasks"`
}

type waveDoc struct {
	ID        string   `yaml:"id"`
	FileLocks []string `yaml:"file_locks"`
}

type taskDoc struct {
	ID        string   `yaml:"id"`
	AgentRole string   `yaml:"agent_role"`
	Title     string   `yaml:"title"`
	Wave      string   `yaml:"wave"`
	DependsOn []string `yaml:"depends_on"`
	Check     string   `yaml:"check"`
	Status    string   `yaml:"status"`
}

// Load reads and validates a plan file.
func Load(path string) (models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a plan document.
func Parse(data []byte) (models.Plan, error) {
	var doc planDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return models.Plan{}, fmt.Errorf("failed to parse plan: %w", err)
	}

	plan := models.Plan{}
	waveIDs := make(map[string]bool)
	for _, w := range doc.Waves {
		if w.ID == "" {
			return models.Plan{}, fmt.Errorf("plan contains a wave without an id")
		}
		if waveIDs[w.ID] {
			return models.Plan{}, fmt.Errorf("duplicate wave id %s", w.ID)
		}
		waveIDs[w.ID] = true
		plan.Waves = append(plan.Waves, models.Wave{ID: w.ID, FileLocks: w.FileLocks})
	}

	taskIDs := make(map[string]bool)
	for _, t := range doc.Tasks {
		if t.ID == "" {
			return models.Plan{}, fmt.Errorf("plan contains a task without an id")
		}
		if taskIDs[t.ID] {
			return models.Plan{}, fmt.Errorf("duplicate task id %s", t.ID)
		}
		taskIDs[t.ID] = true
		if t.Wave != "" && !waveIDs[t.Wave] {
			return models.Plan{}, fmt.Errorf("task %s references unknown wave %s", t.ID, t.Wave)
		}

		status := t.Status
		if status == "" {
			status = models.TaskStatusPending
		}
		if status != models.TaskStatusPending && status != models.TaskStatusDone {
			return models.Plan{}, fmt.Errorf("task %s has invalid status %q", t.ID, status)
		}

		plan.Tasks = append(plan.Tasks, models.Task{
			ID:           t.ID,
			AgentRole:    t.AgentRole,
			Title:        t.Title,
			WaveID:       t.Wave,
			Dependencies: t.DependsOn,
			CheckCommand: t.Check,
			Status:       status,
		})
	}

	return plan, nil
}
