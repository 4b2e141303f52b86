package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"connectsphere/config"
	"connectsphere/crypto"
	"connectsphere/native/common"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveGenesisPathPrecedence(t *testing.T) {
	env := func(values map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		}
	}
	require.Equal(t, "flag.json", resolveGenesisPath(" flag.json ", "cfg.json", env(map[string]string{genesisPathEnv: "env.json"})))
	require.Equal(t, "env.json", resolveGenesisPath("", "cfg.json", env(map[string]string{genesisPathEnv: "env.json"})))
	require.Equal(t, "cfg.json", resolveGenesisPath("", "cfg.json", env(map[string]string{genesisPathEnv: "  "})))
}

func TestBootAppliesGenesisOnceAndSeedsRegistryFromConfig(t *testing.T) {
	dir := t.TempDir()
	var adminRaw, treasuryRaw [20]byte
	adminRaw[19] = 0xA0
	treasuryRaw[19] = 0xE1

	genesisPath := filepath.Join(dir, "genesis.json")
	body := fmt.Sprintf(`{"roles": {"administrator": [%q]}, "holdingReserve": "100"}`, crypto.Render(adminRaw))
	require.NoError(t, os.WriteFile(genesisPath, []byte(body), 0o644))

	cfg := config.Default()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.Registry.FeeBps = 500
	cfg.Registry.FeeRecipient = crypto.Render(treasuryRaw)
	require.NoError(t, cfg.Validate())

	node, err := boot(cfg, genesisPath, false, discardLogger())
	require.NoError(t, err)
	require.True(t, node.HasRole(common.RoleAdministrator, adminRaw))
	fee, err := node.PlatformFee()
	require.NoError(t, err)
	require.Equal(t, uint32(500), fee)
	params, err := node.RegistryParams()
	require.NoError(t, err)
	require.Equal(t, treasuryRaw, params.FeeRecipient)
	node.Close()

	// The second start resumes from disk and ignores the genesis file.
	require.NoError(t, os.Remove(genesisPath))
	node, err = boot(cfg, genesisPath, false, discardLogger())
	require.NoError(t, err)
	defer node.Close()
	held, err := node.BalanceOf(node.HoldingAccount())
	require.NoError(t, err)
	require.Equal(t, int64(100), held.Int64())
}

func TestBootRequiresGenesisForEmptyState(t *testing.T) {
	cfg := config.Default()
	cfg.Database = config.DatabaseMemory
	_, err := boot(cfg, "", false, discardLogger())
	require.Error(t, err)
}
