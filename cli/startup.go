package cli

import (
	"os"
	"path/filepath"

	"github.com/diillson/vbls/config"
	"github.com/diillson/vbls/shell"
)

// RunStartupFiles avalia os arquivos de inicialização de uma sessão
// interativa: /etc/profile se existir, depois ~/.profile (shell de
// login) ou ~/.vblsrc. O modo -c não passa por aqui.
func RunStartupFiles(sh *shell.Shell, login bool) {
	if _, err := os.Stat(config.SystemProfilePath); err == nil {
		sh.SourceFile(config.SystemProfilePath)
	}

	home := sh.Getenv("HOME")
	if home == "" {
		return
	}

	name := config.RCFileName
	if login {
		name = config.ProfileFileName
	}

	rc := filepath.Join(home, name)
	if _, err := os.Stat(rc); err == nil {
		sh.SourceFile(rc)
	}
}
