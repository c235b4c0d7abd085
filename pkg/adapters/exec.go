package adapters

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/arthur-debert/ksync/pkg/logging"
)

// runner executes a host-side process and reports its outcome. Adapters hold
// one so tests can substitute a scripted implementation for the ssh/docker
// binaries.
type runner func(name string, args ...string) RunResult

// systemRunner runs the command through os/exec. A command that cannot be
// started at all is reported as exit code 127 with the failure on stderr,
// matching what a shell would do.
func systemRunner(name string, args ...string) RunResult {
	logging.LogCommand(name, args)

	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 127
			if result.Stderr == "" {
				result.Stderr = err.Error()
			}
		}
	}
	return result
}

// shellQuote wraps arg in single quotes for a remote POSIX shell, so exotic
// filenames survive the ssh hop. A leading ~/ stays outside the quotes: the
// remote shell must still expand it to the remote home, and quoting it would
// name a literal ~ directory instead.
func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if arg == "~" || arg == "~/" {
		return arg
	}
	if strings.HasPrefix(arg, "~/") {
		return "~/" + shellQuote(strings.TrimPrefix(arg, "~/"))
	}
	if !strings.ContainsAny(arg, " \t\n\"'\\$&|;<>()*?[]#~%!{}") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
