package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/vibequest/internal/cli"
	"github.com/julianstephens/vibequest/internal/keyring"
	"github.com/julianstephens/vibequest/internal/storage"
)

// KeyringSetAPIKeyCmd stores the AI API key in the OS keyring
type KeyringSetAPIKeyCmd struct {
	APIKey string `arg:"" name:"api-key" help:"Gemini API key to store in keyring"`
}

func (cmd *KeyringSetAPIKeyCmd) Run(ctx *cli.Context) error {
	if err := keyring.Set(keyring.APIKey, strings.TrimSpace(cmd.APIKey)); err != nil {
		return err
	}
	ctx.Println("✓ API key stored successfully in OS keyring")
	ctx.Println("  AI tag suggestions, project plans and auto-scheduling are now enabled")
	return nil
}

// KeyringSetConnectionCmd stores database connection credentials in the OS keyring
type KeyringSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetConnectionCmd) Run(ctx *cli.Context) error {
	// Validate the connection string format
	if !storage.IsPostgres(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := storage.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// Warn about embedded credentials but allow storage in keyring (it's encrypted)
		ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.Set(keyring.ConnectionString, cmd.ConnectionString); err != nil {
		return err
	}

	ctx.Println("✓ Connection string stored successfully in OS keyring")
	ctx.Println("  vibequest will use it whenever --config is not given")
	return nil
}

// KeyringGetCmd shows what is stored, with secrets masked
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	found := false
	if connStr, err := keyring.Get(keyring.ConnectionString); err == nil {
		ctx.Printf("Connection string: %s\n", maskPassword(connStr))
		found = true
	} else if !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	if key, err := keyring.Get(keyring.APIKey); err == nil {
		ctx.Printf("API key:           %s\n", maskSecret(key))
		found = true
	} else if !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	if !found {
		return errors.New("nothing stored in keyring. Use 'vibequest keyring set-api-key' or 'vibequest keyring set-connection'")
	}
	return nil
}

// KeyringDeleteCmd removes a stored secret from the OS keyring
type KeyringDeleteCmd struct {
	Which string `arg:"" enum:"connection,api-key" help:"Secret to delete (connection|api-key)."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	secret := keyring.ConnectionString
	label := "Connection string"
	if cmd.Which == "api-key" {
		secret = keyring.APIKey
		label = "API key"
	}
	if err := keyring.Delete(secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", strings.ToLower(label))
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", label)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")
	for _, s := range []struct {
		secret keyring.Secret
		label  string
	}{
		{keyring.ConnectionString, "Connection string"},
		{keyring.APIKey, "API key"},
	} {
		if _, err := keyring.Get(s.secret); err == nil {
			ctx.Printf("✓ %s is stored in keyring\n", s.label)
		} else {
			ctx.Printf("ℹ No %s stored in keyring\n", strings.ToLower(s.label))
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if storage.IsPostgres(connStr) {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		// The last @ separates user info from host
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}

// maskSecret keeps the last four characters.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
