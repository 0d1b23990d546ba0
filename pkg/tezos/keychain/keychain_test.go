package keychain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaze-network/tzbot/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forgedHex = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a86c00"

func TestGenerateSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "tzbot.json")

	kc, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, kc.Names())

	bot, err := kc.Generate("bot")
	require.NoError(t, err)
	_, err = kc.Generate("alice")
	require.NoError(t, err)
	assert.Regexp(t, `^tz1`, bot.Address())
	assert.Regexp(t, `^edpk`, bot.PublicKey())

	_, err = kc.Generate("bot")
	assert.ErrorIs(t, err, errs.InvalidArgument)

	require.NoError(t, kc.Save())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bot"}, reloaded.Names())

	again, err := reloaded.Get("bot")
	require.NoError(t, err)
	assert.Equal(t, bot.Address(), again.Address())

	_, err = reloaded.Get("carol")
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tzbot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bot": {"secret_key": "edskNOPE"}}`), 0o600))
	_, err := Load(path)
	assert.ErrorIs(t, err, errs.InvalidArgument)

	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))
	_, err = Load(path)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestSignOperation(t *testing.T) {
	kc, err := Load(filepath.Join(t.TempDir(), "tzbot.json"))
	require.NoError(t, err)
	key, err := kc.Generate("bot")
	require.NoError(t, err)

	signature, err := key.SignOperation(forgedHex)
	require.NoError(t, err)
	assert.Regexp(t, `^edsig`, signature)
	assert.NoError(t, key.VerifyOperation(forgedHex, signature))

	other, err := kc.Generate("other")
	require.NoError(t, err)
	assert.ErrorIs(t, other.VerifyOperation(forgedHex, signature), errs.InvalidArgument)

	sigHex, err := SignatureHex(signature)
	require.NoError(t, err)
	assert.Regexp(t, `^[a-f0-9]{128}$`, sigHex)

	again, err := key.SignOperation(forgedHex)
	require.NoError(t, err)
	assert.Equal(t, signature, again, "ed25519 signatures are deterministic")
}

func TestSignOperationInvalidHex(t *testing.T) {
	kc, err := Load(filepath.Join(t.TempDir(), "tzbot.json"))
	require.NoError(t, err)
	key, err := kc.Generate("bot")
	require.NoError(t, err)

	_, err = key.SignOperation("zz")
	assert.ErrorIs(t, err, errs.InvalidArgument)
	_, err = key.SignOperation("")
	assert.ErrorIs(t, err, errs.InvalidArgument)

	_, err = SignatureHex("edsigNOPE")
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
