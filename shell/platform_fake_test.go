package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"syscall"
	"testing"

	"github.com/diillson/vbls/platform"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// fakePlatform simula processos e filesystem para os testes do núcleo.
// Pipes são reais (os.Pipe), para que a captura e o wiring de fds sejam
// exercitados de verdade; os "processos" são funções síncronas.
type fakePlatform struct {
	env      map[string]string
	files    map[string]bool
	globs    map[string][]string
	commands map[string]fakeCommand
	started  []string
	cwd      string
	chdirErr error
	mask     int
}

// fakeCommand descreve o comportamento de um executável simulado.
type fakeCommand struct {
	status int
	run    func(stdin, stdout *os.File) int
	output string
}

type fakeProcess struct {
	status int
}

func (p *fakeProcess) Pid() int { return 4242 }

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		env:      make(map[string]string),
		files:    make(map[string]bool),
		globs:    make(map[string][]string),
		commands: make(map[string]fakeCommand),
		cwd:      "/",
	}
}

func (f *fakePlatform) Pipe() (*os.File, *os.File, error) {
	return os.Pipe()
}

func (f *fakePlatform) StartProcess(path string, argv []string, stdin, stdout *os.File, interactive bool) (platform.Process, error) {
	f.started = append(f.started, path)

	cmd, ok := f.commands[path]
	if !ok {
		return nil, syscall.ENOENT
	}

	status := cmd.status
	if cmd.run != nil {
		status = cmd.run(stdin, stdout)
	} else if cmd.output != "" && stdout != nil {
		_, _ = stdout.WriteString(cmd.output)
	}

	return &fakeProcess{status: status}, nil
}

func (f *fakePlatform) Wait(p platform.Process) int {
	return p.(*fakeProcess).status
}

func (f *fakePlatform) ForegroundSelf() {}

func (f *fakePlatform) Chdir(dir string) error {
	if f.chdirErr != nil {
		return f.chdirErr
	}
	f.cwd = dir
	return nil
}

func (f *fakePlatform) Getwd() (string, error) {
	return f.cwd, nil
}

func (f *fakePlatform) Realpath(path string) (string, error) {
	if f.files[path] {
		return path, nil
	}
	return "", syscall.ENOENT
}

func (f *fakePlatform) FileExists(path string) bool {
	return f.files[path]
}

func (f *fakePlatform) Glob(pattern string) ([]string, error) {
	matches := f.globs[pattern]
	sort.Strings(matches)
	return matches, nil
}

func (f *fakePlatform) Getenv(key string) string {
	return f.env[key]
}

func (f *fakePlatform) LookupEnv(key string) (string, bool) {
	v, ok := f.env[key]
	return v, ok
}

func (f *fakePlatform) Setenv(key, value string) error {
	f.env[key] = value
	return nil
}

func (f *fakePlatform) Unsetenv(key string) error {
	delete(f.env, key)
	return nil
}

func (f *fakePlatform) Environ() []string {
	out := make([]string, 0, len(f.env))
	for k, v := range f.env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func (f *fakePlatform) Umask(mask int) int {
	old := f.mask
	f.mask = mask
	return old
}

func (f *fakePlatform) ErrnoName(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if name := unix.ErrnoName(errno); name != "" {
			return name
		}
	}
	return err.Error()
}

// newTestShell monta um shell sobre a plataforma fake, com stdout/stderr
// em buffers e exitFunc registrando o código em vez de terminar.
func newTestShell(t *testing.T) (*Shell, *fakePlatform, *bytes.Buffer, *bytes.Buffer, *[]int) {
	t.Helper()

	fp := newFakePlatform()
	s := New(fp, zap.NewNop(), Options{})

	var stdout, stderr bytes.Buffer
	s.stdout = &stdout
	s.stderr = &stderr

	var exits []int
	s.exitFunc = func(code int) { exits = append(exits, code) }

	return s, fp, &stdout, &stderr, &exits
}

// countOpenFDs conta os descritores abertos do processo, para o
// invariante de que cadeias não vazam pipes.
func countOpenFDs(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(fmt.Sprintf("/proc/%d/fd", os.Getpid()))
	if err != nil {
		t.Skipf("não foi possível ler /proc/self/fd: %v", err)
	}
	return len(entries)
}

// copyCommand devolve um fakeCommand que copia stdin para stdout,
// aplicando uma transformação.
func copyCommand(transform func(string) string) fakeCommand {
	return fakeCommand{
		run: func(stdin, stdout *os.File) int {
			if stdin == nil || stdout == nil {
				return 1
			}
			data, err := io.ReadAll(stdin)
			if err != nil {
				return 1
			}
			_, _ = stdout.WriteString(transform(string(data)))
			return 0
		},
	}
}
