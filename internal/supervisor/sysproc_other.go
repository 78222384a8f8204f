//go:build !windows

package supervisor

import "os/exec"

func hideConsoleWindow(*exec.Cmd) {}
