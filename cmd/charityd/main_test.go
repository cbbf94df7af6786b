package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/charity/app"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/weavetest"
	"github.com/stretchr/testify/require"
)

func runCmd(t testing.TB, home string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append(args, "--home", home, "--log-level", "none"))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t testing.TB, home string, args ...string) string {
	t.Helper()
	out, err := runCmd(t, home, args...)
	require.NoError(t, err, "charityd %s: %+v", strings.Join(args, " "), err)
	return out
}

func tempHome(t testing.TB) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "charityd-")
	require.NoError(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

func TestDonationSession(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	admin := weavetest.NewAddress()
	alice := weavetest.NewAddress()
	ngos := app.DummyBeneficiaries()

	out := mustRun(t, home, "init", "--admin", admin.String(), "--chain-id", "cli-test", "--engine-seed", "test", "--dummy-data")
	require.Contains(t, out, app.EngineAddress("test").String())
	require.FileExists(t, filepath.Join(home, "genesis.json"))
	require.FileExists(t, filepath.Join(home, "charityd.toml"))

	out = mustRun(t, home, "token", "list")
	require.Equal(t, "DAI\tDAI\tcDAI\nUSDC\tUSDC\tcUSDC\nUSDT\tUSDT\tcUSDT\n", out)

	out = mustRun(t, home, "beneficiary", "list")
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)

	mustRun(t, home, "token", "fund", "DAI", alice.String(), "100000")
	mustRun(t, home, "token", "approve", "DAI", "100000", "--as", alice.String())
	mustRun(t, home, "invest", "DAI", "100000", "--as", alice.String())

	require.Equal(t, "100000\n", mustRun(t, home, "invested", "DAI"))
	require.Equal(t, "0\n", mustRun(t, home, "token", "balance", "DAI", alice.String()))
	require.Equal(t, "0\n", mustRun(t, home, "interest", "DAI"))

	mustRun(t, home, "rate", "set", "cDAI", "0.021")
	require.Equal(t, "5000\n", mustRun(t, home, "interest", "DAI"))

	splits := []string{ngos[0].Address.String() + ":60", ngos[1].Address.String() + ":40"}
	want := ngos[0].Address.String() + "\t3000 DAI\n" + ngos[1].Address.String() + "\t2000 DAI\n"

	out = mustRun(t, home, append([]string{"distribute", "--dry-run", "--as", alice.String()}, splits...)...)
	require.Equal(t, want, out)
	require.Equal(t, "5000\n", mustRun(t, home, "interest", "DAI"))

	out = mustRun(t, home, append([]string{"distribute", "--as", alice.String()}, splits...)...)
	require.Equal(t, want, out)
	require.Equal(t, "0\n", mustRun(t, home, "interest", "DAI"))
	require.Equal(t, "3000\n", mustRun(t, home, "token", "balance", "DAI", ngos[0].Address.String()))

	out = mustRun(t, home, "events")
	var kinds []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		kinds = append(kinds, strings.Split(line, "\t")[2])
	}
	require.Equal(t, []string{"invested", "investment", "donation", "donation"}, kinds)
}

func TestBeneficiaryCommands(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	admin := weavetest.NewAddress()
	ngo := weavetest.NewAddress()
	mustRun(t, home, "init", "--admin", admin.String(), "--chain-id", "cli-test")

	_, err := runCmd(t, home, "beneficiary", "add", "Red Cross", ngo.String(), "--as", ngo.String())
	require.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)

	mustRun(t, home, "beneficiary", "add", "Red Cross", ngo.String(), "--as", admin.String())
	require.Equal(t, "true\n", mustRun(t, home, "beneficiary", "trusted", ngo.String()))

	_, err = runCmd(t, home, "beneficiary", "add", "Red Cross", ngo.String(), "--as", admin.String())
	require.True(t, errors.ErrDuplicate.Is(err), "unexpected error: %+v", err)

	mustRun(t, home, "beneficiary", "disable", ngo.String(), "--as", admin.String())
	require.Equal(t, "false\n", mustRun(t, home, "beneficiary", "trusted", ngo.String()))
	require.Equal(t, "", mustRun(t, home, "beneficiary", "list"))
	require.Equal(t, ngo.String()+"\tdisabled\tRed Cross\n", mustRun(t, home, "beneficiary", "list", "--all"))

	mustRun(t, home, "beneficiary", "enable", ngo.String(), "--as", admin.String())
	require.Equal(t, "true\n", mustRun(t, home, "beneficiary", "trusted", ngo.String()))
}

func TestInitFailures(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	_, err := runCmd(t, home, "init", "--chain-id", "cli-test")
	require.True(t, errors.ErrInput.Is(err), "unexpected error: %+v", err)

	_, err = runCmd(t, home, "init", "--admin", weavetest.NewAddress().String(), "--chain-id", "no")
	require.True(t, errors.ErrInput.Is(err), "unexpected error: %+v", err)

	mustRun(t, home, "init", "--admin", weavetest.NewAddress().String(), "--chain-id", "cli-test")
	_, err = runCmd(t, home, "init", "--admin", weavetest.NewAddress().String(), "--chain-id", "cli-test")
	require.True(t, errors.ErrDuplicate.Is(err), "unexpected error: %+v", err)
	mustRun(t, home, "init", "--admin", weavetest.NewAddress().String(), "--chain-id", "cli-test", "--force")
}

func TestMissingGenesis(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	_, err := runCmd(t, home, "token", "list")
	require.True(t, errors.ErrInput.Is(err), "unexpected error: %+v", err)
}

func TestParseSplits(t *testing.T) {
	a, b := weavetest.NewAddress(), weavetest.NewAddress()

	splits, err := parseSplits([]string{a.String() + ":30", b.String() + ":70"})
	require.NoError(t, err)
	require.Len(t, splits, 2)
	require.Equal(t, a, splits[0].Beneficiary)
	require.Equal(t, uint32(70), splits[1].Percentage)

	_, err = parseSplits([]string{a.String() + ":30", "nope", b.String() + ":x"})
	require.True(t, errors.ErrInput.Is(err))
	require.Len(t, errors.FieldErrors(err, "Splits.1"), 1)
	require.Len(t, errors.FieldErrors(err, "Splits.2"), 1)
}

func TestVersion(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()
	out := mustRun(t, home, "version")
	require.True(t, strings.HasPrefix(out, "v0.1.0"), out)
}
