// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
)

// ErrNoCommand is returned for entries with nothing to execute, such as
// group entries that only exist to hold children.
var ErrNoCommand = errors.New("entry has no launch command")

type (
	// Runner turns a picked catalog entry into a running process. It owns
	// every launch decision: terminal wrapping, detaching, and the final
	// process replacement.
	Runner struct {
		cfg    *config.Config
		logger *log.Logger
	}

	// plan is a resolved launch: the name to resolve against $PATH, the argv
	// the process will see, and whether to detach first.
	plan struct {
		target string
		argv   []string
		detach bool
	}
)

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "launch",
			Level:  log.GetLevel(),
		}),
	}
}

// Run launches the entry and, for non-detached entries, replaces the
// current process on success. It returns only on failure, or immediately
// with nil after handing off a detached entry.
func (r *Runner) Run(ent catalog.Entry) error {
	p, err := r.plan(ent)
	if err != nil {
		return err
	}

	path, err := exec.LookPath(p.target)
	if err != nil {
		return fmt.Errorf("cannot resolve %q: %w", p.target, err)
	}

	r.logger.Debug("launching", "name", ent.Name(), "argv", p.argv, "detach", p.detach)
	if p.detach {
		return r.detach(path, p.argv)
	}
	return execReplace(path, p.argv)
}

// plan resolves what to execute. Terminal entries have their argv rebuilt
// from the terminal-runner template; everything else launches its command
// as-is. The target goes to exec.LookPath verbatim, which resolves it the
// way execvp would: a name with a path separator is checked directly, a
// bare name is searched on $PATH.
func (r *Runner) plan(ent catalog.Entry) (plan, error) {
	if ent.ExecName() == "" {
		return plan{}, fmt.Errorf("%q: %w", ent.Name(), ErrNoCommand)
	}
	if !ent.Flags.Terminal() {
		return plan{
			target: ent.Command[0],
			argv:   ent.Command,
			detach: ent.Flags.Detach(),
		}, nil
	}

	raw := r.cfg.TerminalCommand(ent.Name(), ent.ExecName(), ent.Command)
	argv, err := shlex.Split(raw)
	if err != nil {
		return plan{}, fmt.Errorf("terminal runner expanded to an unparseable command %q: %w", raw, err)
	}
	if len(argv) == 0 {
		return plan{}, fmt.Errorf("terminal runner expanded to an empty command for %q", ent.Name())
	}
	return plan{
		target: argv[0],
		argv:   argv,
		detach: ent.Flags.Detach(),
	}, nil
}

// detach starts the process in its own session and immediately lets go of
// it. The child outlives the launcher; its fate is its own.
func (r *Runner) detach(path string, argv []string) error {
	cmd := &exec.Cmd{
		Path:        path,
		Args:        argv,
		SysProcAttr: detachAttr(),
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cannot start %q: %w", path, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("cannot release %q: %w", path, err)
	}
	return nil
}
