package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeguard/internal/api"
	"timeguard/internal/config"
	"timeguard/internal/domain"
)

func newTestRoot(t *testing.T, svc *mockService) (*RootCommand, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(
		WithServiceFactory(func(cfg *config.Config, logger *slog.Logger) (api.Service, error) {
			return svc, nil
		}),
		WithOutput(&out, &errOut),
	)
	return root, &out, &errOut
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	svc := newMockService()
	root, _, _ := newTestRoot(t, svc)

	root.Command().SetArgs([]string{
		"calendar", "--start", "2024-01-02",
		"--days", "3",
		"--seed", "42",
		"--format", "json",
		"--flag-uncovered-dates",
		"--app-timeout", "5s",
		"--verbose",
	})
	require.NoError(t, root.Execute())

	cfg := root.config
	require.NotNil(t, cfg)
	assert.Equal(t, 3, cfg.Calendar.Days)
	assert.Equal(t, uint64(42), cfg.Calendar.MockSeed)
	assert.Equal(t, "json", cfg.Display.Format)
	assert.True(t, cfg.Reconcile.FlagUncoveredDates)
	assert.Equal(t, 5*time.Second, cfg.GetAppTimeout())
	assert.Equal(t, "debug", cfg.Application.LogLevel)
	assert.Equal(t, 3, svc.lastDays)
}

func TestRootCommand_UnsetFlagsKeepDefaults(t *testing.T) {
	svc := newMockService()
	root, _, _ := newTestRoot(t, svc)

	root.Command().SetArgs([]string{"calendar", "--start", "2024-01-02"})
	require.NoError(t, root.Execute())

	assert.Equal(t, 7, root.config.Calendar.Days)
	assert.Equal(t, "table", root.config.Display.Format)
	assert.Equal(t, config.SourceMock, root.config.Calendar.Source)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calendar:\n  days: 14\ndisplay:\n  format: csv\n"), 0o644))

	svc := newMockService()
	root, out, _ := newTestRoot(t, svc)

	root.Command().SetArgs([]string{"--config", path, "calendar", "--start", "2024-01-02", "--format", "json"})
	require.NoError(t, root.Execute())

	assert.Equal(t, 14, root.config.Calendar.Days)
	assert.Equal(t, "json", root.config.Display.Format)
	assert.Contains(t, out.String(), `"date": "2024-01-02"`)
}

func TestRootCommand_InvalidConfiguration(t *testing.T) {
	root, _, _ := newTestRoot(t, newMockService())

	root.Command().SetArgs([]string{"calendar", "--days", "0"})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, "invalid configuration: calendar.days: days must be between 1 and 366", err.Error())
}

func TestRootCommand_Validate(t *testing.T) {
	svc := newMockService()
	svc.timesheets["sheet.csv"] = domain.NewTimesheet(nil)
	root, out, _ := newTestRoot(t, svc)

	root.Command().SetArgs([]string{"validate", "sheet.csv", "--fail-on-discrepancy"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "No missing entries")
}

func TestRootCommand_ValidateRequiresArgument(t *testing.T) {
	root, _, _ := newTestRoot(t, newMockService())

	root.Command().SetArgs([]string{"validate"})
	assert.Error(t, root.Execute())
}
