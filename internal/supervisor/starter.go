package supervisor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/uuid"
)

// Starter spawns the planned process. Injected so supervision logic runs
// against fakes in tests.
type Starter interface {
	Start(plan Plan) (*Handle, error)
}

// ExecStarter launches through os/exec with stdio inherited from the host.
type ExecStarter struct{}

func (ExecStarter) Start(plan Plan) (*Handle, error) {
	cmd := exec.Command(plan.Path, plan.Args...)
	cmd.Dir = plan.Dir
	if len(plan.Env) > 0 {
		cmd.Env = plan.Env
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	hideConsoleWindow(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", plan.Path, err)
	}
	return NewHandle(uuid.New().String(), cmd.Process.Pid, plan.Mode, cmdProcess{cmd: cmd}), nil
}

// cmdProcess adapts exec.Cmd to the reap surface. Wait goes through
// cmd.Wait so the exec layer releases its process state.
type cmdProcess struct {
	cmd *exec.Cmd
}

func (p cmdProcess) Kill() error { return p.cmd.Process.Kill() }
func (p cmdProcess) Wait() error { return p.cmd.Wait() }
