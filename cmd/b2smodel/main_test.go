package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/b2model/blake2/blake2s"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = ioutil.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"b2smodel"}, args...))
	return out.String(), err
}

func TestSumCommand(t *testing.T) {
	out, err := runApp(t, "sum", "--text", "abc")
	require.NoError(t, err)
	assert.Equal(t, "508c5e8c327c14e2e1a72ba34eeb452f37458b209ed63a294d999b4c86675982  -\n", out)

	path := filepath.Join(t.TempDir(), "msg")
	require.NoError(t, ioutil.WriteFile(path, []byte("abc"), 0o644))
	out, err = runApp(t, "sum", "-n", "16", path)
	require.NoError(t, err)
	want, _ := blake2s.Hash([]byte("abc"), 16, nil, nil, nil)
	assert.Equal(t, hex.EncodeToString(want)+"  "+path+"\n", out)
}

func TestSumWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "params.toml")
	require.NoError(t, ioutil.WriteFile(cfgPath, []byte(`
size = 20
key = "000102030405"
salt = "0a0b"
person = "6d6f64656c"
`), 0o644))

	out, err := runApp(t, "sum", "--config", cfgPath, "--text", "hello")
	require.NoError(t, err)
	want, err := blake2s.Hash([]byte("hello"), 20, []byte{0, 1, 2, 3, 4, 5}, []byte{0x0a, 0x0b}, []byte("model"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, hex.EncodeToString(want)), out)

	// Flags override the file.
	out, err = runApp(t, "sum", "--config", cfgPath, "--size", "32", "--key", "", "--text", "hello")
	require.NoError(t, err)
	want, _ = blake2s.Hash([]byte("hello"), 32, nil, []byte{0x0a, 0x0b}, []byte("model"))
	assert.True(t, strings.HasPrefix(out, hex.EncodeToString(want)), out)
}

func TestConfigErrors(t *testing.T) {
	_, err := runApp(t, "sum", "--size", "33", "--text", "x")
	assert.True(t, errors.Is(err, blake2s.ErrConfig), "got %v", err)

	_, err = runApp(t, "sum", "--key", "zz", "--text", "x")
	assert.Error(t, err)

	cfgPath := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, ioutil.WriteFile(cfgPath, []byte("sise = 3\n"), 0o644))
	_, err = runApp(t, "sum", "--config", cfgPath, "--text", "x")
	assert.Error(t, err)
}

func TestTraceAndVerify(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "golden.trace")
	msg := strings.Repeat("0123456789", 13)

	_, err := runApp(t, "trace", "--text", msg, "--gsteps", "--out", tracePath)
	require.NoError(t, err)

	out, err := runApp(t, "verify", "--text", msg, "--trace", tracePath)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 3 blocks match the model")

	golden, err := ioutil.ReadFile(tracePath)
	require.NoError(t, err)
	lines := strings.Split(string(golden), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "round 5") {
			// Corrupt the v00 - 07 row that follows the G comments.
			for j := i + 1; j < len(lines); j++ {
				if strings.HasPrefix(lines[j], "v00 - 07: 0x") {
					lines[j] = "v00 - 07: 0xdeadbeef" + lines[j][len("v00 - 07: 0x")+8:]
					break
				}
			}
			break
		}
	}
	badPath := filepath.Join(dir, "bad.trace")
	require.NoError(t, ioutil.WriteFile(badPath, []byte(strings.Join(lines, "\n")), 0o644))

	out, err = runApp(t, "verify", "--text", msg, "--trace", badPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first divergence at block 0 (round)")
	assert.Contains(t, out, "block 0 round 5: v[0] = 0xdeadbeef")
}

func TestTraceToStdout(t *testing.T) {
	out, err := runApp(t, "trace", "--text", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "block 0 final")
	assert.Contains(t, out, "t: 0x00000003 0x00000000")
	assert.Contains(t, out, "h00 - 07: 0x6b08e647")
}

func TestSelftestCommand(t *testing.T) {
	out, err := runApp(t, "selftest")
	require.NoError(t, err)
	assert.Contains(t, out, "selftest passed")
}
