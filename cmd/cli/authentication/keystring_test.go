package authentication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenRoundTrip(t *testing.T) {
	keyring.MockInit()

	_, err := GetToken()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, StoreToken(&StoredCredentials{Token: "abc", Email: "ryu@example.com", ExpiresAt: time.Now().Add(time.Hour)}))
	creds, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", creds.Token)

	require.NoError(t, DeleteToken())
	require.NoError(t, DeleteToken())
	_, err = GetToken()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestExpiredTokenIsIgnored(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, StoreToken(&StoredCredentials{Token: "old", ExpiresAt: time.Now().Add(-time.Minute)}))
	_, err := GetToken()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestEnvOverride(t *testing.T) {
	keyring.MockInit()
	t.Setenv(TokenEnv, "from-env")

	creds, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, "from-env", creds.Token)
}
