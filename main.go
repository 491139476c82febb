/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/diillson/vbls/cli"
	"github.com/diillson/vbls/config"
	"github.com/diillson/vbls/platform"
	"github.com/diillson/vbls/shell"
	"github.com/diillson/vbls/utils"
	"github.com/diillson/vbls/version"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {

	// Parse das flags
	args := cli.PreprocessArgs(os.Args[1:])
	opts, rest, err := cli.Parse(args)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	// Saídas antecipadas para --help e --version
	if opts.Help {
		fmt.Print(cli.Usage())
		return
	}
	if opts.Version {
		fmt.Println(version.FormatVersionInfo(true))
		return
	}

	// Carregar variáveis de ambiente do arquivo .env do shell
	envFilePath := os.Getenv("VBLS_DOTENV")
	if envFilePath == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			envFilePath = filepath.Join(home, config.DotenvFileName)
		}
	} else {
		expanded, eerr := utils.ExpandPath(envFilePath)
		if eerr == nil {
			envFilePath = expanded
		} else {
			fmt.Printf("Aviso: não foi possível expandir o caminho '%s': %v\n", envFilePath, eerr)
		}
	}
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Não foi possível carregar o arquivo .env em %s\n", envFilePath)
		}
	}

	// Inicializar o logger
	logger, err := utils.InitializeLogger()
	if err != nil {
		fmt.Printf("Não foi possível inicializar o logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Montar o interpretador sobre a plataforma real
	p := platform.NewPOSIX(logger)
	sh := shell.New(p, logger, shell.Options{
		Errexit:      opts.Errexit,
		ShowCommands: opts.ShowCommands,
	})

	setupEnvironment(sh, opts.Login)

	// Modo -c: avalia a string e sai, sem arquivos de startup
	if opts.CommandFlagUsed {
		sh.SetArgs(append([]string{os.Args[0]}, rest...))
		if sh.EvalChunk(opts.Command) {
			return
		}
		os.Exit(1)
	}

	// Modo script: o primeiro posicional é o arquivo, o resto vira $1...
	if len(rest) > 0 {
		sh.SetArgs(rest)
		if sh.SourceFile(rest[0]) {
			return
		}
		os.Exit(1)
	}

	sh.SetArgs([]string{os.Args[0]})

	// stdin não é um terminal: lê tudo e avalia como um chunk
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			logger.Error("Erro ao ler stdin", zap.Error(rerr))
			os.Exit(1)
		}
		if sh.EvalChunk(string(data)) {
			return
		}
		os.Exit(1)
	}

	// Modo interativo
	fmt.Println(version.FormatVersionInfo(false))
	sh.SetInteractive(true)
	cli.IgnoreJobControlSignals()
	cli.RunStartupFiles(sh, opts.Login)

	shellCLI, err := cli.NewShellCLI(sh, logger)
	if err != nil {
		logger.Fatal("Erro ao inicializar a sessão interativa", zap.Error(err))
	}

	// Configurar o contexto para o shutdown gracioso
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handleGracefulShutdown(cancel, logger)

	shellCLI.Start(ctx)
}

// setupEnvironment aplica o contrato de ambiente do shell: HOME com
// fallback, SHLVL incrementado e VBLS_VERSION.
func setupEnvironment(sh *shell.Shell, login bool) {
	home := sh.Getenv("HOME")
	if login {
		if usr, err := user.Current(); err == nil && usr.HomeDir != "" {
			home = usr.HomeDir
		}
	}
	if home == "" {
		home = "/"
	}
	sh.Setenv("HOME", home)

	shlvl := 1
	if prev, err := strconv.Atoi(sh.Getenv("SHLVL")); err == nil {
		shlvl = prev + 1
	}
	sh.Setenv("SHLVL", strconv.Itoa(shlvl))

	sh.Setenv("VBLS_VERSION", version.GetVersion())

	if sh.Getenv("PWD") == "" {
		if wd, err := os.Getwd(); err == nil {
			sh.Setenv("PWD", wd)
		}
	}
}

// handleGracefulShutdown configura o tratamento de sinais para um shutdown gracioso
func handleGracefulShutdown(cancelFunc context.CancelFunc, logger *zap.Logger) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info("Recebido sinal para finalizar a sessão", zap.String("sinal", sig.String()))
		cancelFunc()
	}()
}
