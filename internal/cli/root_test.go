package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sreader/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "sreader", cmd.Name())
	assert.Contains(t, cmd.Long, "one word at a time")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, path := range [][]string{{"config"}, {"config", "init"}, {"config", "path"}, {"decode"}} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "command %v should exist", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	rateFlag := cmd.Flags().Lookup("rate")
	require.NotNil(t, rateFlag)
	assert.Equal(t, "r", rateFlag.Shorthand)
	assert.Equal(t, "0s", rateFlag.DefValue)

	require.NotNil(t, cmd.Flags().Lookup("watch"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestDecodeCommand(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewDecodeCommand()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"ScheduleAdvance(Forward, 3)", "Resize(80,24)"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ScheduleAdvance(Forward, 3)\t")
	assert.Contains(t, out.String(), "Resize(80,24)\t")
}

func TestDecodeCommandReportsFailures(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewDecodeCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"Quit", "Resize(bad)"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out.String(), "Quit\tQuit")
	assert.Contains(t, errOut.String(), "Resize(bad)")
}

func TestConfigInitWritesDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	opts := &RootOptions{ConfigPath: "/etc/sreader.toml", FS: fsys}
	out := &bytes.Buffer{}

	cmd := NewConfigCommand(opts)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wrote /etc/sreader.toml")

	cfg, err := config.NewConfigService(fsys, "/etc/sreader.toml").Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/sreader.toml", []byte("rate = \"1s\"\n"), 0o644))
	opts := &RootOptions{ConfigPath: "/etc/sreader.toml", FS: fsys}

	cmd := NewConfigCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	require.ErrorContains(t, cmd.Execute(), "already exists")

	cmd = NewConfigCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())
}

func TestConfigPath(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := NewConfigCommand(&RootOptions{ConfigPath: "/tmp/x.toml", FS: afero.NewMemMapFs()})
	cmd.SetOut(out)
	cmd.SetArgs([]string{"path"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/tmp/x.toml\n", out.String())
}

// parsedRoot returns a root command with args parsed but not run.
func parsedRoot(t *testing.T, args ...string) (*cobra.Command, *ReadOptions, []string) {
	t.Helper()
	readOpts := &ReadOptions{}
	cmd := &cobra.Command{Use: "sreader"}
	cmd.Flags().DurationVarP(&readOpts.Rate, "rate", "r", 0, "")
	cmd.Flags().BoolVarP(&readOpts.Watch, "watch", "w", false, "")
	cmd.Flags().StringVar(&readOpts.LogFile, "log-file", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, readOpts, cmd.Flags().Args()
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/c.toml", []byte("corpus = \"/a.txt\"\nrate = \"1s\"\nwatch = true\n"), 0o644))
	opts := &RootOptions{ConfigPath: "/c.toml", FS: fsys}

	cmd, readOpts, args := parsedRoot(t, "--rate", "100ms", "/b.txt")
	cfg, err := resolveConfig(cmd, opts, readOpts, args)
	require.NoError(t, err)
	assert.Equal(t, "/b.txt", cfg.Corpus)
	assert.Equal(t, config.Duration(100*time.Millisecond), cfg.Rate)
	assert.True(t, cfg.Watch, "unset flags keep file values")
}

func TestResolveConfigMissingFileUsesDefaults(t *testing.T) {
	opts := &RootOptions{ConfigPath: "/none.toml", FS: afero.NewMemMapFs()}
	cmd, readOpts, args := parsedRoot(t)
	cfg, err := resolveConfig(cmd, opts, readOpts, args)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestResolveConfigRejectsBadRate(t *testing.T) {
	opts := &RootOptions{ConfigPath: "/none.toml", FS: afero.NewMemMapFs()}
	cmd, readOpts, args := parsedRoot(t, "--rate", "-1s")
	_, err := resolveConfig(cmd, opts, readOpts, args)
	assert.ErrorContains(t, err, "rate must be positive")
}
