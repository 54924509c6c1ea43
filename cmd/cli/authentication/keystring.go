package authentication

// keystring.go stores the session token in the OS keyring on the client side.
import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "comboshare-cli"
	tokenKey    = "session"

	// TokenEnv overrides the keyring, e.g. in CI where no keyring is available.
	TokenEnv = "COMBOSHARE_TOKEN"
)

var ErrNotLoggedIn = errors.New("not logged in; run `comboshare auth login` first")

type StoredCredentials struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func StoreToken(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

// GetToken returns the stored credentials. An expired token counts as not logged in.
func GetToken() (*StoredCredentials, error) {
	if t := os.Getenv(TokenEnv); t != "" {
		return &StoredCredentials{Token: t}, nil
	}

	value, err := keyring.Get(serviceName, tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	if !creds.ExpiresAt.IsZero() && time.Now().After(creds.ExpiresAt) {
		return nil, ErrNotLoggedIn
	}
	return &creds, nil
}

func DeleteToken() error {
	err := keyring.Delete(serviceName, tokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
