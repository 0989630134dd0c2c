package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/constants"
	"github.com/julianstephens/tinywins/internal/keyring"
	"github.com/julianstephens/tinywins/internal/persist"
	"github.com/julianstephens/tinywins/internal/utils"
)

var (
	processesFunc = ps.Processes
	credentials   = keyring.Default
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	pass := func(name, detail string) {
		if detail != "" {
			ctx.Printf("✓ %s: OK (%s)\n", name, detail)
			return
		}
		ctx.Printf("✓ %s: OK\n", name)
	}
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		ctx.Printf("⚠ %s: WARNING\n", name)
		ctx.Printf("   %v\n", err)
	}
	skip := func(name, reason string) {
		ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
	}

	// Check 1: Storage reachable
	reachable := false
	if err := ctx.Store.Load(); err != nil {
		fail("Storage reachable", err)
	} else {
		pass("Storage reachable", ctx.Store.Backend())
		reachable = true
	}

	// Check 2: Stored state decodes
	if reachable {
		if detail, err := checkStateReadable(ctx); err != nil {
			fail("Stored state", err)
		} else {
			pass("Stored state", detail)
		}
	} else {
		skip("Stored state", "storage not reachable")
	}

	// Check 3: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		pass("Backups present", "")
	}

	// Check 4: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		pass("Clock/timezone", ctx.Config.Timezone)
	}

	// Check 5: Other tinywins processes (warning only)
	if err := checkOtherProcesses(); err != nil {
		warn("Concurrent processes", err)
	} else {
		pass("Concurrent processes", "none")
	}

	// Check 6: Keyring, only relevant for postgres
	if ctx.Config.Storage.Backend == constants.BackendPostgres {
		st := credentials().Status()
		switch {
		case !st.Available:
			warn("OS keyring", keyring.ErrKeyringUnavailable)
		case !st.Stored:
			pass("OS keyring", "no connection string stored")
		default:
			pass("OS keyring", "connection string stored")
		}
	} else {
		skip("OS keyring", "not using postgres")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStateReadable(ctx *cli.Context) (string, error) {
	data, err := ctx.Store.Get(ctx.Gateway.Key())
	if err != nil {
		return "", fmt.Errorf("failed to read key %q: %w", ctx.Gateway.Key(), err)
	}
	if len(data) == 0 {
		return "empty", nil
	}
	patch, err := persist.DecodeBlob(data)
	if err != nil {
		return "", err
	}
	detail := fmt.Sprintf("%d entries", len(patch.History))
	if patch.Skipped > 0 {
		detail += fmt.Sprintf(", %d unusable skipped", patch.Skipped)
	}
	if patch.LastSaved != nil {
		if t, err := time.Parse(constants.TimestampFormat, *patch.LastSaved); err == nil {
			detail += ", saved " + humanize.RelTime(t, ctx.Clock.Now(), "ago", "from now")
		}
	}
	return detail, nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'tinywins backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Config.Timezone)
	}
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// checkOtherProcesses warns when another tinywins process may be writing to
// the same store.
func checkOtherProcesses() error {
	procs, err := processesFunc()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	self := os.Getpid()
	var others []string
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(p.Executable()), ".exe")
		if name == constants.AppName {
			others = append(others, fmt.Sprintf("%d", p.Pid()))
		}
	}
	if len(others) > 0 {
		return fmt.Errorf("other %s processes running (pid %s); concurrent writers overwrite each other", constants.AppName, strings.Join(others, ", "))
	}
	return nil
}
