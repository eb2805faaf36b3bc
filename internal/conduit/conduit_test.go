package conduit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/mock"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

type fakeRecord struct {
	RecordConduit
	info      Info
	destroyed *[]string
}

func (f *fakeRecord) Info() Info { return f.info }

func (f *fakeRecord) Destroy(context.Context) error {
	*f.destroyed = append(*f.destroyed, f.info.Name)
	return nil
}

type fakeBackup struct {
	BackupConduit
	info      Info
	destroyed *[]string
}

func (f *fakeBackup) Info() Info { return f.info }

func (f *fakeBackup) Destroy(context.Context) error {
	*f.destroyed = append(*f.destroyed, f.info.Name)
	return nil
}

type plainConduit struct{ info Info }

func (p plainConduit) Info() Info { return p.info }

func (p plainConduit) Destroy(context.Context) error { return nil }

var memoInfo = Info{
	Name:            "memo",
	Creator:         "memo",
	Databases:       []string{"MemoDB"},
	ValidSyncTypes:  []models.SyncType{models.SyncTypeSynchronize, models.SyncTypeCopyFromPilot, models.SyncTypeCopyToPilot},
	DefaultSyncType: models.SyncTypeSynchronize,
	Capability:      CapabilityRecord,
}

func newTestRegistry(destroyed *[]string) *Registry {
	reg := NewRegistry()
	reg.MustRegister("memo", NewFactory(memoInfo, func(context.Context, Deps, models.Pilot, models.ConduitConfig) (Conduit, error) {
		return &fakeRecord{info: memoInfo, destroyed: destroyed}, nil
	}))

	backupInfo := Info{Name: "backup", Capability: CapabilityBackup, EnabledByDefault: true}
	reg.MustRegister("backup", NewFactory(backupInfo, func(context.Context, Deps, models.Pilot, models.ConduitConfig) (Conduit, error) {
		return &fakeBackup{info: backupInfo, destroyed: destroyed}, nil
	}))

	broken := Info{Name: "broken", Capability: CapabilityRecord, EnabledByDefault: true, DefaultSyncType: models.SyncTypeSynchronize}
	reg.MustRegister("broken", NewFactory(broken, func(context.Context, Deps, models.Pilot, models.ConduitConfig) (Conduit, error) {
		return nil, assert.AnError
	}))

	reg.MustRegister("nameless", NewFactory(Info{EnabledByDefault: true}, func(context.Context, Deps, models.Pilot, models.ConduitConfig) (Conduit, error) {
		return plainConduit{}, nil
	}))

	liar := Info{Name: "liar", Capability: CapabilityFile, EnabledByDefault: true}
	reg.MustRegister("liar", NewFactory(liar, func(context.Context, Deps, models.Pilot, models.ConduitConfig) (Conduit, error) {
		return plainConduit{info: liar}, nil
	}))
	return reg
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	f := NewFactory(memoInfo, nil)

	require.NoError(t, reg.Register("memo", f))
	assert.ErrorIs(t, reg.Register("memo", f), ErrDuplicate)
	assert.ErrorIs(t, reg.Register("", f), ErrMissingInfo)
	assert.ErrorIs(t, reg.Register("nil", nil), ErrMissingInfo)

	got, ok := reg.Lookup("memo")
	require.True(t, ok)
	assert.Equal(t, "memo", got.Info().Name)
	_, ok = reg.Lookup("calendar")
	assert.False(t, ok)

	require.NoError(t, reg.Register("address", NewFactory(Info{}, nil)))
	assert.Equal(t, []string{"memo", "address"}, reg.Names())
	assert.Equal(t, "address", reg.Infos()[1].Name)
}

func TestInfo_Matches(t *testing.T) {
	assert.True(t, memoInfo.Matches(models.DBInfo{Name: "MemoDB", Creator: "memo"}))
	assert.False(t, memoInfo.Matches(models.DBInfo{Name: "MemoDB", Creator: "addr"}))
	assert.False(t, memoInfo.Matches(models.DBInfo{Name: "MemosDB-PMem", Creator: "memo"}))

	anyDB := Info{Creator: "date"}
	assert.True(t, anyDB.Matches(models.DBInfo{Name: "DatebookDB", Creator: "date"}))
	assert.False(t, Info{}.Matches(models.DBInfo{Name: "x"}))
}

func TestLoader_LoadConduits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	configs := mock.NewMockConduitConfigRepository(ctrl)
	var destroyed []string
	loader := NewLoader(newTestRegistry(&destroyed), configs, Deps{}, logger.Nop())

	configs.EXPECT().ListByPilot(ctx, uint32(9)).Return([]models.ConduitConfig{
		{PilotID: 9, Conduit: "memo", Enabled: true, SyncType: models.SyncTypeSynchronize},
	}, nil)

	loaded, err := loader.LoadConduits(ctx, models.Pilot{ID: 9})
	require.NoError(t, err)

	require.Len(t, loaded.Standard, 1)
	assert.Equal(t, "memo", loaded.Standard[0].Name)
	assert.NotNil(t, loaded.Standard[0].Record())
	require.Len(t, loaded.Backup, 1)
	assert.NotNil(t, loaded.Backup[0].Backup())
	assert.Empty(t, loaded.File, "a conduit lacking its capability is skipped")
	assert.Equal(t, 2, loaded.Len())

	assert.Same(t, loaded.Standard[0], loaded.Match(models.DBInfo{Name: "MemoDB", Creator: "memo"}))
	assert.Nil(t, loaded.Match(models.DBInfo{Name: "AddressDB", Creator: "addr"}))
	assert.Same(t, loaded.Backup[0], loaded.ByName("backup"))

	loader.Unload(ctx, loaded)
	assert.Equal(t, []string{"backup", "memo"}, destroyed)
}

func TestLoader_DisabledAndNotSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	configs := mock.NewMockConduitConfigRepository(ctrl)
	var destroyed []string
	loader := NewLoader(newTestRegistry(&destroyed), configs, Deps{}, logger.Nop())

	configs.EXPECT().ListByPilot(ctx, uint32(1)).Return([]models.ConduitConfig{
		{PilotID: 1, Conduit: "memo", Enabled: true, SyncType: models.SyncTypeNotSet},
		{PilotID: 1, Conduit: "backup", Enabled: false},
	}, nil)

	loaded, err := loader.LoadConduits(ctx, models.Pilot{ID: 1})
	require.NoError(t, err)
	assert.Zero(t, loaded.Len())
	assert.Equal(t, []string{"memo"}, destroyed, "a NotSet conduit is torn down again")
}

func TestLoader_FirstSyncOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	configs := mock.NewMockConduitConfigRepository(ctrl)
	var destroyed []string
	loader := NewLoader(newTestRegistry(&destroyed), configs, Deps{}, logger.Nop())

	configs.EXPECT().ListByPilot(ctx, uint32(2)).Return([]models.ConduitConfig{{
		PilotID:       2,
		Conduit:       "memo",
		Enabled:       true,
		SyncType:      models.SyncTypeSynchronize,
		FirstSyncType: models.SyncTypeCopyFromPilot,
		FirstSlow:     true,
	}}, nil)

	loaded, err := loader.LoadConduits(ctx, models.Pilot{ID: 2})
	require.NoError(t, err)
	memo := loaded.ByName("memo")
	require.NotNil(t, memo)
	assert.Equal(t, models.SyncTypeCopyFromPilot, memo.SyncType)
	assert.True(t, memo.FirstSync)
	assert.True(t, memo.Slow)

	configs.EXPECT().ClearFirstSync(ctx, uint32(2), "memo").Return(nil)
	require.NoError(t, loader.ConsumeFirstSync(ctx, 2, memo))
	assert.False(t, memo.FirstSync)

	require.NoError(t, loader.ConsumeFirstSync(ctx, 2, memo), "a consumed override is not cleared twice")
}

func TestLoader_InvalidSyncTypeFallsBackToDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	configs := mock.NewMockConduitConfigRepository(ctrl)
	var destroyed []string
	loader := NewLoader(newTestRegistry(&destroyed), configs, Deps{}, logger.Nop())

	configs.EXPECT().ListByPilot(ctx, uint32(3)).Return([]models.ConduitConfig{
		{PilotID: 3, Conduit: "memo", Enabled: true, SyncType: models.SyncTypeMergeToPilot},
	}, nil)

	loaded, err := loader.LoadConduits(ctx, models.Pilot{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, models.SyncTypeSynchronize, loaded.ByName("memo").SyncType)
}

func TestLoader_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	configs := mock.NewMockConduitConfigRepository(ctrl)
	loader := NewLoader(NewRegistry(), configs, Deps{}, logger.Nop())

	configs.EXPECT().ListByPilot(ctx, uint32(3)).Return(nil, assert.AnError)
	_, err := loader.LoadConduits(ctx, models.Pilot{ID: 3})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoader_LoadExplicit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	configs := mock.NewMockConduitConfigRepository(ctrl)
	var destroyed []string
	loader := NewLoader(newTestRegistry(&destroyed), configs, Deps{}, logger.Nop())

	configs.EXPECT().Get(ctx, uint32(4), "memo").Return(models.ConduitConfig{}, store.ErrConduitConfigNotFound)
	st, err := loader.Load(ctx, "memo", models.Pilot{ID: 4}, models.SyncTypeCopyToPilot)
	require.NoError(t, err)
	assert.Equal(t, models.SyncTypeCopyToPilot, st.SyncType)
	assert.False(t, st.FirstSync)

	configs.EXPECT().Get(ctx, uint32(4), "calendar").Return(models.ConduitConfig{}, store.ErrConduitConfigNotFound)
	_, err = loader.Load(ctx, "calendar", models.Pilot{ID: 4}, "")
	assert.ErrorIs(t, err, ErrNotFound)

	loader.UnloadConduits(ctx, []*State{st})
	assert.Equal(t, []string{"memo"}, destroyed)
}
