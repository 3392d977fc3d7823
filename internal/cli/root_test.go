package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "boost", cmd.Use)
	assert.Contains(t, cmd.Long, "assistance grants")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"request", "accept", "cancel", "consume", "active", "pending", "catalog", "actor", "purge"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "boost.db", dbFlag.DefValue)
}

func TestRequestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	reqCmd, _, err := cmd.Find([]string{"request"})
	require.NoError(t, err)

	for _, name := range []string{"requester", "target", "remote", "ref"} {
		assert.NotNil(t, reqCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestAcceptCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	acceptCmd, _, err := cmd.Find([]string{"accept"})
	require.NoError(t, err)

	asFlag := acceptCmd.Flags().Lookup("as")
	require.NotNil(t, asFlag)
	assert.Equal(t, "", asFlag.DefValue)
}

func TestCatalogSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, path := range [][]string{{"catalog", "validate"}, {"catalog", "show"}} {
		subCmd, _, err := cmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[1], subCmd.Name())
	}
}

func TestActorSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, path := range [][]string{{"actor", "set"}, {"actor", "show"}} {
		subCmd, _, err := cmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[1], subCmd.Name())
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "catalog", "show"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
