/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package platform

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// POSIX é a implementação real de Platform. O par fork+exec da
// especificação vira Start/Wait de os/exec: o runtime do Go não permite
// um fork puro, então usamos o backend de "callback do host".
type POSIX struct {
	logger *zap.Logger
}

func NewPOSIX(logger *zap.Logger) *POSIX {
	return &POSIX{logger: logger}
}

type posixProcess struct {
	cmd *exec.Cmd
}

func (p *posixProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *POSIX) Pipe() (*os.File, *os.File, error) {
	return os.Pipe()
}

func (p *POSIX) StartProcess(path string, argv []string, stdin, stdout *os.File, interactive bool) (Process, error) {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if stdin != nil {
		cmd.Stdin = stdin
	}
	if stdout != nil {
		cmd.Stdout = stdout
	}

	// No modo interativo o filho vai para seu próprio process group e
	// recebe o foreground do terminal, para que Ctrl+C chegue nele e
	// não no shell.
	if interactive {
		cmd.SysProcAttr = &syscall.SysProcAttr{
			Setpgid:    true,
			Foreground: true,
			Ctty:       int(os.Stdin.Fd()),
		}
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p.logger.Debug("processo filho iniciado",
		zap.String("path", path),
		zap.Int("pid", cmd.Process.Pid),
		zap.Bool("interactive", interactive))

	return &posixProcess{cmd: cmd}, nil
}

func (p *POSIX) Wait(proc Process) int {
	pp, ok := proc.(*posixProcess)
	if !ok {
		return 1
	}

	err := pp.cmd.Wait()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}

	p.logger.Warn("erro inesperado em wait", zap.Error(err))
	return 1
}

func (p *POSIX) ForegroundSelf() {
	fd := int(os.Stdin.Fd())
	pgrp := unix.Getpgrp()
	if err := unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, pgrp); err != nil {
		p.logger.Debug("não foi possível retomar o foreground do terminal", zap.Error(err))
	}
}

func (p *POSIX) Chdir(dir string) error {
	return os.Chdir(dir)
}

func (p *POSIX) Getwd() (string, error) {
	return os.Getwd()
}

func (p *POSIX) Realpath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (p *POSIX) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (p *POSIX) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func (p *POSIX) Getenv(key string) string {
	return os.Getenv(key)
}

func (p *POSIX) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (p *POSIX) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

func (p *POSIX) Unsetenv(key string) error {
	return os.Unsetenv(key)
}

func (p *POSIX) Environ() []string {
	return os.Environ()
}

func (p *POSIX) Umask(mask int) int {
	return unix.Umask(mask)
}

func (p *POSIX) ErrnoName(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if name := unix.ErrnoName(errno); name != "" {
			return name
		}
	}
	return err.Error()
}
