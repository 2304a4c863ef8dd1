package settings

import (
	"context"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
)

// KV is the persisted key/value store settings live in.
type KV interface {
	All(ctx context.Context) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context) error
}

// Service loads, caches and saves the site settings.
type Service struct {
	kv KV

	mu     sync.RWMutex
	cur    Settings
	loaded bool
}

// NewService returns a Service over kv. Nothing is read until first use.
func NewService(kv KV) *Service {
	return &Service{kv: kv, cur: Defaults()}
}

// Load reads the stored settings, merges them over the defaults and caches
// the result.
func (s *Service) Load(ctx context.Context) (Settings, error) {
	values, err := s.kv.All(ctx)
	if err != nil {
		return Defaults(), err
	}
	if v, ok := values[versionKey]; ok {
		if n, err := strconv.Atoi(v); err != nil || n > SchemaVersion {
			log.Warn().Str("stored", v).Int("supported", SchemaVersion).Msg("settings schema version not recognized")
		}
	}
	cur, problems := Decode(values)
	for _, p := range problems {
		log.Warn().Str("key", p.Key).Str("value", p.Value).Err(p.Err).Msg("invalid stored setting, using default")
	}

	s.mu.Lock()
	s.cur, s.loaded = cur, true
	s.mu.Unlock()
	return cur, nil
}

// Current returns the cached settings, loading them on first use. A load
// failure is logged and the defaults are returned.
func (s *Service) Current(ctx context.Context) Settings {
	s.mu.RLock()
	cur, loaded := s.cur, s.loaded
	s.mu.RUnlock()
	if loaded {
		return cur
	}
	cur, err := s.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("loading settings")
	}
	return cur
}

// Save validates and persists next.
func (s *Service) Save(ctx context.Context, next Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if err := s.kv.SetMany(ctx, next.Encode()); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur, s.loaded = next, true
	s.mu.Unlock()
	log.Info().Msg("settings saved")
	return nil
}

// Reset removes every stored setting so the defaults apply again.
func (s *Service) Reset(ctx context.Context) (Settings, error) {
	if err := s.kv.Clear(ctx); err != nil {
		return Settings{}, err
	}
	def := Defaults()
	s.mu.Lock()
	s.cur, s.loaded = def, true
	s.mu.Unlock()
	log.Info().Msg("settings reset to defaults")
	return def, nil
}
