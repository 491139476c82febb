/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package config

// Valores padrão para configuração do shell
const (
	// Nome do shell, usado no escape \s do prompt
	ShellName = "vbls"

	// PATH usado quando a variável PATH não está definida
	DefaultPath = "/bin:/sbin:/usr/bin"

	// Prompt padrão quando PS1 não está definido
	DefaultPS1 = "% "

	// Sufixo de script tentado na resolução de comandos no PATH,
	// além do nome puro. Pode ser sobrescrito via VBLS_SCRIPT_SUFFIX
	// (string vazia desabilita).
	DefaultScriptSuffix = ".lua"

	// Arquivos da sessão interativa (relativos ao $HOME)
	HistoryFileName = ".vbls_history"
	RCFileName      = ".vblsrc"
	ProfileFileName = ".profile"

	// Arquivo de perfil do sistema
	SystemProfilePath = "/etc/profile"

	// Arquivo .env carregado no startup (relativo ao $HOME),
	// sobrescritível via VBLS_DOTENV
	DotenvFileName = ".vbls.env"

	// Tamanho máximo do arquivo de histórico antes do backup (50MB)
	DefaultMaxHistorySize = 50 * 1024 * 1024

	// Tamanho do chunk usado ao drenar o pipe de captura
	CaptureChunkSize = 2048
)
