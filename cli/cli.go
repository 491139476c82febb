/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/diillson/vbls/shell"
	"github.com/google/uuid"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

// Liner é a fatia do editor de linha que usamos, para facilitar a
// testabilidade
type Liner interface {
	Prompt(string) (string, error)
	Close() error
	SetCtrlCAborts(bool)
	AppendHistory(string)
	SetCompleter(liner.Completer)
}

// ShellCLI é a sessão interativa: o editor de linha, o histórico e o
// interpretador por trás deles
type ShellCLI struct {
	shell          *shell.Shell
	logger         *zap.Logger
	line           Liner
	historyManager *HistoryManager
	commandHistory []string
	cleanupOnce    sync.Once
}

// NewShellCLI cria uma nova sessão interativa sobre um interpretador já
// configurado
func NewShellCLI(sh *shell.Shell, logger *zap.Logger) (*ShellCLI, error) {
	// Cada sessão interativa ganha um id próprio no log
	logger = logger.With(zap.String("session", uuid.New().String()))

	cli := &ShellCLI{
		shell:          sh,
		logger:         logger,
		historyManager: NewHistoryManager(logger),
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true) // Permite que Ctrl+C aborte o input
	cli.line = line

	// Definir a função de autocompletar
	cli.line.SetCompleter(cli.completer)

	// Carregar o histórico
	history, err := cli.historyManager.LoadHistory()
	if err != nil {
		cli.logger.Error("Erro ao carregar o histórico", zap.Error(err))
	} else {
		cli.commandHistory = history
		for _, cmd := range history {
			cli.line.AppendHistory(cmd)
		}
	}

	// exit (e errexit) salvam o histórico antes de terminar o processo
	sh.SetExitFunc(func(code int) {
		cli.cleanup()
		os.Exit(code)
	})

	return cli, nil
}

// Start inicia o loop principal da sessão interativa
func (cli *ShellCLI) Start(ctx context.Context) {
	defer cli.cleanup()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		input, err := cli.line.Prompt(cli.renderPrompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			cli.logger.Error("Erro ao ler a linha", zap.Error(err))
			return
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		cli.line.AppendHistory(input)
		cli.commandHistory = append(cli.commandHistory, input)

		cli.shell.EvalChunk(input)
	}
}

// cleanup fecha o editor e grava o histórico; é idempotente porque tanto
// o fim do loop quanto o builtin exit passam por aqui
func (cli *ShellCLI) cleanup() {
	cli.cleanupOnce.Do(func() {
		if err := cli.line.Close(); err != nil {
			cli.logger.Warn("Erro ao fechar o editor de linha", zap.Error(err))
		}
		if err := cli.historyManager.SaveHistory(cli.commandHistory); err != nil {
			cli.logger.Warn("Erro ao salvar o histórico", zap.Error(err))
		}
	})
}
