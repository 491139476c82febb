/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package cli

import (
	"os/signal"

	"golang.org/x/sys/unix"
)

// IgnoreJobControlSignals instala "ignore" para os sinais de controle de
// job no pai interativo, para que operações de terminal em segundo plano
// não suspendam o shell. Os filhos recebem a disposição default de novo
// no exec.
func IgnoreJobControlSignals() {
	signal.Ignore(unix.SIGTTIN, unix.SIGTTOU, unix.SIGTSTP)
}
