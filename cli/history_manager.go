/*
 * vbls - A small POSIX-style command interpreter
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/vbls/config"
	"go.uber.org/zap"
)

type HistoryManager struct {
	historyFile    string
	logger         *zap.Logger
	maxHistorySize int64
}

func NewHistoryManager(logger *zap.Logger) *HistoryManager {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("Não foi possível obter o diretório home para o histórico", zap.Error(err))
		home = "."
	}
	return &HistoryManager{
		historyFile:    filepath.Join(home, config.HistoryFileName),
		logger:         logger,
		maxHistorySize: config.DefaultMaxHistorySize,
	}
}

// LoadHistory carrega o histórico do arquivo, uma entrada por linha
func (hm *HistoryManager) LoadHistory() ([]string, error) {
	f, err := os.Open(hm.historyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Nenhum histórico para carregar
		}
		hm.logger.Warn("Não foi possível carregar o histórico:", zap.Error(err))
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var history []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		history = append(history, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		hm.logger.Warn("Erro ao ler o histórico:", zap.Error(err))
		return nil, err
	}

	return history, nil
}

// SaveHistory grava a lista corrente de volta no arquivo (substituindo o
// conteúdo anterior) e faz backup se o tamanho exceder o limite
func (hm *HistoryManager) SaveHistory(commandHistory []string) error {
	fileInfo, err := os.Stat(hm.historyFile)
	if err == nil && fileInfo.Size() >= hm.maxHistorySize {
		backupFile := fmt.Sprintf("%s.bak-%d", hm.historyFile, time.Now().Unix())
		err := os.Rename(hm.historyFile, backupFile)
		if err != nil {
			hm.logger.Warn("Não foi possível fazer backup do histórico:", zap.Error(err))
			return err
		}
		hm.logger.Info("Backup do histórico criado:", zap.String("backupFile", backupFile))
	}

	f, err := os.OpenFile(hm.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		hm.logger.Warn("Não foi possível salvar o histórico:", zap.Error(err))
		return err
	}
	defer func() { _ = f.Close() }()

	for _, cmd := range commandHistory {
		_, _ = fmt.Fprintln(f, cmd)
	}

	return nil
}
