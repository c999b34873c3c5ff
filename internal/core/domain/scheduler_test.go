package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, time.Minute, config.TickInterval)
	assert.Len(t, config.TaskConfigs, 2)

	ingestCfg := config.TaskConfigs[TaskIDIngest]
	assert.True(t, ingestCfg.Enabled)
	assert.Equal(t, 30*time.Minute, ingestCfg.Interval)

	matchCfg := config.TaskConfigs[TaskIDMatching]
	assert.True(t, matchCfg.Enabled)
	assert.Equal(t, 10*time.Minute, matchCfg.Interval)
}

func TestSchedulerConfig_GetTaskConfig_NilMap(t *testing.T) {
	config := SchedulerConfig{Enabled: true}

	cfg := config.GetTaskConfig("any-task")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Interval)
}

func TestTaskConstants(t *testing.T) {
	assert.Equal(t, "reddit-ingest", TaskIDIngest)
	assert.Equal(t, "term-matching", TaskIDMatching)
}

func TestScheduledTask_IsDue(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		task     ScheduledTask
		expected bool
	}{
		{"disabled", ScheduledTask{Enabled: false}, false},
		{"never scheduled", ScheduledTask{Enabled: true}, true},
		{"due exactly now", ScheduledTask{Enabled: true, NextRun: now}, true},
		{"overdue", ScheduledTask{Enabled: true, NextRun: now.Add(-time.Minute)}, true},
		{"in the future", ScheduledTask{Enabled: true, NextRun: now.Add(time.Minute)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsDue(now))
		})
	}
}
