package conduit

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

// State is one loaded conduit of a session.
type State struct {
	Name    string
	Info    Info
	Config  models.ConduitConfig
	Conduit Conduit

	// SyncType is the configured type, or the pending first sync override.
	SyncType models.SyncType
	// FirstSync is set when SyncType came from the one-time override.
	FirstSync bool
	// Slow forces a slow sync on the override run.
	Slow bool
}

// Record returns the record capability.
func (s *State) Record() RecordConduit {
	c, _ := s.Conduit.(RecordConduit)
	return c
}

// Backup returns the backup capability.
func (s *State) Backup() BackupConduit {
	c, _ := s.Conduit.(BackupConduit)
	return c
}

// File returns the file capability.
func (s *State) File() FileConduit {
	c, _ := s.Conduit.(FileConduit)
	return c
}

// Loaded is the result of LoadConduits bucketed by capability.
type Loaded struct {
	Standard []*State
	Backup   []*State
	File     []*State
}

// Match returns the standard conduit serving db, or nil.
func (l *Loaded) Match(db models.DBInfo) *State {
	for _, s := range l.Standard {
		if s.Info.Matches(db) {
			return s
		}
	}
	return nil
}

// ByName returns a loaded conduit of any bucket.
func (l *Loaded) ByName(name string) *State {
	for _, list := range [][]*State{l.Standard, l.Backup, l.File} {
		for _, s := range list {
			if s.Name == name {
				return s
			}
		}
	}
	return nil
}

// Len returns the number of loaded conduits.
func (l *Loaded) Len() int {
	return len(l.Standard) + len(l.Backup) + len(l.File)
}

// Loader instantiates the conduits configured for a handheld.
type Loader struct {
	registry *Registry
	configs  store.ConduitConfigRepository
	deps     Deps
	logger   *logger.Logger
}

// NewLoader returns a loader reading per-pilot config from configs.
func NewLoader(registry *Registry, configs store.ConduitConfigRepository, deps Deps, log *logger.Logger) *Loader {
	return &Loader{registry: registry, configs: configs, deps: deps, logger: log}
}

// Registry returns the registry the loader instantiates from.
func (l *Loader) Registry() *Registry { return l.registry }

// LoadConduits instantiates every enabled conduit for pilot. A conduit whose
// metadata is missing, whose factory fails or whose sync type is NotSet is
// skipped with a warning; the others still load.
func (l *Loader) LoadConduits(ctx context.Context, pilot models.Pilot) (*Loaded, error) {
	log := l.logger.With().Str("func", "Loader.LoadConduits").Uint32("pilot_id", pilot.ID).Logger()

	stored, err := l.configs.ListByPilot(ctx, pilot.ID)
	if err != nil {
		return nil, fmt.Errorf("load conduit configs: %w", err)
	}
	byName := make(map[string]models.ConduitConfig, len(stored))
	for _, c := range stored {
		byName[c.Conduit] = c
	}

	loaded := &Loaded{}
	for _, name := range l.registry.Names() {
		st, err := l.load(ctx, name, pilot, byName)
		if errors.Is(err, ErrDisabled) {
			log.Debug().Str("conduit", name).Msg("conduit disabled")
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("conduit", name).Msg("skipping conduit")
			continue
		}

		switch st.Info.Capability {
		case CapabilityRecord:
			loaded.Standard = append(loaded.Standard, st)
		case CapabilityBackup:
			loaded.Backup = append(loaded.Backup, st)
		case CapabilityFile:
			loaded.File = append(loaded.File, st)
		}
	}

	log.Info().
		Int("standard", len(loaded.Standard)).
		Int("backup", len(loaded.Backup)).
		Int("file", len(loaded.File)).
		Msg("conduits loaded")
	return loaded, nil
}

// Load instantiates a single conduit by name regardless of its enabled
// flag, applying syncType when it is set. Conduit-run requests use it.
func (l *Loader) Load(ctx context.Context, name string, pilot models.Pilot, syncType models.SyncType) (*State, error) {
	cfg, err := l.configs.Get(ctx, pilot.ID, name)
	if err != nil && !errors.Is(err, store.ErrConduitConfigNotFound) {
		return nil, fmt.Errorf("load conduit config: %w", err)
	}
	if err != nil {
		cfg = models.ConduitConfig{PilotID: pilot.ID, Conduit: name}
	}
	cfg.Enabled = true

	st, err := l.instantiate(ctx, name, pilot, cfg, true)
	if err != nil {
		return nil, err
	}
	if syncType.Enabled() {
		st.SyncType = syncType
		st.FirstSync = false
		st.Slow = false
	}
	if st.Info.Capability == CapabilityRecord && !st.SyncType.Enabled() {
		l.destroy(ctx, st)
		return nil, fmt.Errorf("%w: %s", ErrDisabled, name)
	}
	return st, nil
}

func (l *Loader) load(ctx context.Context, name string, pilot models.Pilot, stored map[string]models.ConduitConfig) (*State, error) {
	factory, ok := l.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	cfg, configured := stored[name]
	if !configured {
		if !factory.Info().EnabledByDefault {
			return nil, ErrDisabled
		}
		cfg = models.ConduitConfig{PilotID: pilot.ID, Conduit: name, Enabled: true}
	}
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	st, err := l.instantiate(ctx, name, pilot, cfg, false)
	if err != nil {
		return nil, err
	}
	if st.Info.Capability == CapabilityRecord && !st.SyncType.Enabled() {
		l.destroy(ctx, st)
		return nil, ErrDisabled
	}
	return st, nil
}

func (l *Loader) instantiate(ctx context.Context, name string, pilot models.Pilot, cfg models.ConduitConfig, explicit bool) (*State, error) {
	factory, ok := l.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	info := factory.Info()
	if !info.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrMissingInfo, name)
	}

	st := &State{Name: name, Info: info, Config: cfg}
	st.SyncType = cfg.SyncType
	if st.SyncType == "" {
		st.SyncType = info.DefaultSyncType
	}
	if cfg.HasFirstSync() && !explicit {
		st.SyncType = cfg.FirstSyncType
		st.FirstSync = true
		st.Slow = cfg.FirstSlow
	}
	if st.SyncType.Enabled() && !info.AllowsSyncType(st.SyncType) {
		l.logger.Warn().
			Str("func", "Loader.instantiate").
			Str("conduit", name).
			Str("sync_type", st.SyncType.String()).
			Msg("sync type not valid for conduit, using default")
		st.SyncType = info.DefaultSyncType
	}

	c, err := factory.New(ctx, l.deps, pilot, cfg)
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", name, err)
	}
	st.Conduit = c

	var capable bool
	switch info.Capability {
	case CapabilityRecord:
		_, capable = c.(RecordConduit)
	case CapabilityBackup:
		_, capable = c.(BackupConduit)
	case CapabilityFile:
		_, capable = c.(FileConduit)
	}
	if !capable {
		l.destroy(ctx, st)
		return nil, fmt.Errorf("%w: %s is not a %s conduit", ErrCapability, name, info.Capability)
	}
	return st, nil
}

// ConsumeFirstSync clears and persists the one-time override of st once it
// ran.
func (l *Loader) ConsumeFirstSync(ctx context.Context, pilotID uint32, st *State) error {
	if !st.FirstSync {
		return nil
	}
	if err := l.configs.ClearFirstSync(ctx, pilotID, st.Name); err != nil && !errors.Is(err, store.ErrConduitConfigNotFound) {
		return err
	}
	st.FirstSync = false
	st.Config.FirstSyncType = models.SyncTypeNotSet
	st.Config.FirstSlow = false
	return nil
}

// UnloadConduits destroys conduits in reverse order.
func (l *Loader) UnloadConduits(ctx context.Context, list []*State) {
	for i := len(list) - 1; i >= 0; i-- {
		l.destroy(ctx, list[i])
	}
}

// Unload destroys every conduit of loaded, file conduits first.
func (l *Loader) Unload(ctx context.Context, loaded *Loaded) {
	if loaded == nil {
		return
	}
	l.UnloadConduits(ctx, loaded.File)
	l.UnloadConduits(ctx, loaded.Backup)
	l.UnloadConduits(ctx, loaded.Standard)
}

func (l *Loader) destroy(ctx context.Context, st *State) {
	if st == nil || st.Conduit == nil {
		return
	}
	if err := st.Conduit.Destroy(ctx); err != nil {
		l.logger.Warn().Err(err).Str("func", "Loader.destroy").Str("conduit", st.Name).Msg("conduit destroy failed")
	}
}
