package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/keyring"
	"github.com/julianstephens/tinywins/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Show keyring availability and where the connection string comes from." default:"1"`
}

// KeyringSetCmd stores database connection credentials in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := credentials().Set(cmd.ConnectionString); err != nil {
		return err
	}

	ctx.Println("✓ Connection string stored successfully in OS keyring")
	return nil
}

// KeyringGetCmd retrieves database connection credentials from the OS keyring
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := credentials().Get()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'tinywins keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	ctx.Println("Connection string retrieved from keyring:")
	ctx.Println(postgres.MaskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes database connection credentials from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := credentials().Delete(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			ctx.Println("No connection string stored in keyring.")
			return nil
		}
		return err
	}
	ctx.Println("✓ Connection string removed from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	creds := credentials()
	st := creds.Status()

	ctx.Printf("Keyring available: %t\n", st.Available)
	ctx.Printf("Connection string stored: %t\n", st.Stored)

	connStr, src, err := creds.Resolve(ctx.Config.Storage.DSN)
	switch {
	case err != nil:
		ctx.Printf("Active source: unavailable (%v)\n", err)
	case src == keyring.SourceNone:
		ctx.Printf("Active source: none (set %s, storage.dsn or use 'tinywins keyring set')\n", constants.ConnectionEnvVar)
	default:
		ctx.Printf("Active source: %s (%s)\n", src, postgres.MaskPassword(connStr))
	}
	return nil
}
