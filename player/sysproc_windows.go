//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// CREATE_NO_WINDOW: the spawned mpv draws its own video window and is
// driven entirely over the IPC socket, so it never needs a console.
const createNoWindow = 0x08000000

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: createNoWindow,
	}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
