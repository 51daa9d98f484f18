package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/huevos-kikes-scm/internal/cli"
	"github.com/jhoicas/huevos-kikes-scm/internal/domain"
	"github.com/jhoicas/huevos-kikes-scm/pkg/config"
	"github.com/jhoicas/huevos-kikes-scm/pkg/jwt"
)

func testConfig(driver string) func() (*config.Config, error) {
	return func() (*config.Config, error) {
		return &config.Config{
			App: config.AppConfig{Env: "test", Name: "huevosctl", LogLevel: "error", StoreDriver: driver},
			JWT: config.JWTConfig{Secret: "cli-secret", Expiration: 30, Issuer: "huevos-kikes"},
		}, nil
	}
}

func run(t *testing.T, driver string, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd(testConfig(driver))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestToken_EmiteJWTValido(t *testing.T) {
	out, err := run(t, config.StoreDriverMemory, "token", "--user", "u-9", "--role", "vendedor")
	require.NoError(t, err)

	id, err := jwt.Parse("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "u-9", id.UserID)
	assert.Equal(t, "vendedor", id.Role)
}

func TestSaldoInit_MontoInvalido(t *testing.T) {
	_, err := run(t, config.StoreDriverPostgres, "saldo", "init", "mil")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = run(t, config.StoreDriverPostgres, "saldo", "init", "--", "-5")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMigrate_RequierePostgres(t *testing.T) {
	_, err := run(t, config.StoreDriverMemory, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestSeed_StockNegativo(t *testing.T) {
	_, err := run(t, config.StoreDriverPostgres, "seed", "--stock-a=-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
