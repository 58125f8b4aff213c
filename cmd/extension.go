package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Environment passed to extensions. The ZEN_ prefixed configuration keys are
// the ones the config package reads, so an extension built on it opens the
// same book as zen.
const (
	EnvConfig  = "ZEN_CONFIG"
	EnvDataDir = "ZEN_STORAGE_DIR"
	EnvBackend = "ZEN_STORAGE_BACKEND"
	EnvVerbose = "ZEN_VERBOSE"
)

// RunExtension attempts to find and execute an external zen-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "zen-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables, unset flags leave the
	// inherited environment alone.
	cmd.Env = os.Environ()
	for name, value := range map[string]string{
		EnvConfig:  *configFile,
		EnvDataDir: *dataDir,
		EnvBackend: *backend,
	} {
		if value != "" {
			cmd.Env = append(cmd.Env, name+"="+value)
		}
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
