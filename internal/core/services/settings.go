package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMinTermLength     = "matching.min_term_length"
	keyStopTerms         = "matching.stop_terms"
	keyBatchLimit        = "matching.batch_limit"
	keyHalfLife          = "scoring.half_life_days"
	keyScoreWeight       = "scoring.score_weight"
	keyCommentWeight     = "scoring.comment_weight"
	keySearchHalfLife    = "search.half_life_days"
	keySearchDays        = "search.days"
	keySearchLimit       = "search.limit"
	keyTrendDays         = "trends.days"
	keyTrendLimit        = "trends.limit"
	keySubreddits        = "ingest.subreddits"
	keyIngestLimit       = "ingest.limit"
	keyRequestsPerSecond = "ingest.requests_per_second"
	keyUserAgent         = "ingest.user_agent"
	keyCSVSource         = "ingest.csv_source"
	keySchedulerEnabled  = "scheduler.enabled"
	keySchedulerTick     = "scheduler.tick_interval"
	keyIngestInterval    = "scheduler.ingest_interval"
	keyMatchingInterval  = "scheduler.matching_interval"
)

// valueKind is how a key's string value is parsed and stored.
type valueKind int

const (
	kindInt valueKind = iota
	kindFloat
	kindString
	kindList
	kindBool
	kindDuration
)

// settingKeys maps every supported key to its kind.
var settingKeys = map[string]valueKind{
	keyMinTermLength:     kindInt,
	keyStopTerms:         kindList,
	keyBatchLimit:        kindInt,
	keyHalfLife:          kindFloat,
	keyScoreWeight:       kindFloat,
	keyCommentWeight:     kindFloat,
	keySearchHalfLife:    kindFloat,
	keySearchDays:        kindInt,
	keySearchLimit:       kindInt,
	keyTrendDays:         kindInt,
	keyTrendLimit:        kindInt,
	keySubreddits:        kindList,
	keyIngestLimit:       kindInt,
	keyRequestsPerSecond: kindFloat,
	keyUserAgent:         kindString,
	keyCSVSource:         kindString,
	keySchedulerEnabled:  kindBool,
	keySchedulerTick:     kindDuration,
	keyIngestInterval:    kindDuration,
	keyMatchingInterval:  kindDuration,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings with defaults applied.
func (s *SettingsService) Get() domain.AppSettings {
	d := domain.DefaultAppSettings()

	return domain.AppSettings{
		Matching: domain.MatchingSettings{
			MinTermLength: s.getInt(keyMinTermLength, d.Matching.MinTermLength),
			StopTerms:     s.getList(keyStopTerms, d.Matching.StopTerms),
			BatchLimit:    s.getInt(keyBatchLimit, d.Matching.BatchLimit),
		},
		Scoring: domain.ScoringWeights{
			HalfLifeDays:  s.getFloat(keyHalfLife, d.Scoring.HalfLifeDays),
			ScoreWeight:   s.getFloat(keyScoreWeight, d.Scoring.ScoreWeight),
			CommentWeight: s.getFloat(keyCommentWeight, d.Scoring.CommentWeight),
		},
		Trends: domain.TrendSettings{
			Days:  s.getInt(keyTrendDays, d.Trends.Days),
			Limit: s.getInt(keyTrendLimit, d.Trends.Limit),
		},
		Search: domain.SearchSettings{
			Days:         s.getInt(keySearchDays, d.Search.Days),
			Limit:        s.getInt(keySearchLimit, d.Search.Limit),
			HalfLifeDays: s.getFloat(keySearchHalfLife, d.Search.HalfLifeDays),
			Weights:      d.Search.Weights,
		},
		Ingest: domain.IngestSettings{
			Subreddits:        s.getList(keySubreddits, d.Ingest.Subreddits),
			Limit:             s.getInt(keyIngestLimit, d.Ingest.Limit),
			RequestsPerSecond: s.getFloat(keyRequestsPerSecond, d.Ingest.RequestsPerSecond),
			UserAgent:         s.getString(keyUserAgent, d.Ingest.UserAgent),
			CSVSource:         s.getString(keyCSVSource, d.Ingest.CSVSource),
		},
	}
}

// Scheduler returns the scheduler configuration with defaults applied.
func (s *SettingsService) Scheduler() domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()
	cfg.Enabled = s.getBool(keySchedulerEnabled, cfg.Enabled)
	cfg.TickInterval = s.getDuration(keySchedulerTick, cfg.TickInterval)

	for id, key := range map[string]string{
		domain.TaskIDIngest:   keyIngestInterval,
		domain.TaskIDMatching: keyMatchingInterval,
	} {
		tc := cfg.TaskConfigs[id]
		tc.Interval = s.getDuration(key, tc.Interval)
		tc.Enabled = cfg.Enabled && tc.Enabled
		cfg.TaskConfigs[id] = tc
	}
	return cfg
}

// Set parses value according to the key's type, validates it and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if err := validateSetting(key, parsed); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the supported configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the effective value of key, formatted the way Set accepts it.
func (s *SettingsService) Value(key string) (string, error) {
	if _, ok := settingKeys[key]; !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.values()[key], nil
}

func (s *SettingsService) values() map[string]string {
	a := s.Get()
	sc := s.Scheduler()
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

	return map[string]string{
		keyMinTermLength:     strconv.Itoa(a.Matching.MinTermLength),
		keyStopTerms:         strings.Join(a.Matching.StopTerms, ","),
		keyBatchLimit:        strconv.Itoa(a.Matching.BatchLimit),
		keyHalfLife:          ff(a.Scoring.HalfLifeDays),
		keyScoreWeight:       ff(a.Scoring.ScoreWeight),
		keyCommentWeight:     ff(a.Scoring.CommentWeight),
		keySearchHalfLife:    ff(a.Search.HalfLifeDays),
		keySearchDays:        strconv.Itoa(a.Search.Days),
		keySearchLimit:       strconv.Itoa(a.Search.Limit),
		keyTrendDays:         strconv.Itoa(a.Trends.Days),
		keyTrendLimit:        strconv.Itoa(a.Trends.Limit),
		keySubreddits:        strings.Join(a.Ingest.Subreddits, ","),
		keyIngestLimit:       strconv.Itoa(a.Ingest.Limit),
		keyRequestsPerSecond: ff(a.Ingest.RequestsPerSecond),
		keyUserAgent:         a.Ingest.UserAgent,
		keyCSVSource:         a.Ingest.CSVSource,
		keySchedulerEnabled:  strconv.FormatBool(sc.Enabled),
		keySchedulerTick:     sc.TickInterval.String(),
		keyIngestInterval:    sc.TaskConfigs[domain.TaskIDIngest].Interval.String(),
		keyMatchingInterval:  sc.TaskConfigs[domain.TaskIDMatching].Interval.String(),
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind valueKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	case kindList:
		items := make([]string, 0)
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return value, nil
	}
}

func validateSetting(key string, value any) error {
	switch v := value.(type) {
	case int:
		if v < 1 {
			return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, key)
		}
	case float64:
		if key == keyHalfLife || key == keySearchHalfLife || key == keyRequestsPerSecond {
			if v <= 0 {
				return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, key)
			}
		} else if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, key)
		}
	case string:
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getList treats an explicitly stored empty list as empty, not as unset.
func (s *SettingsService) getList(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
