package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"strings"
)

func InitializeLogger() (*zap.Logger, error) {
	// Definir o nível de log via variável de ambiente, default para Info
	logLevelEnv := strings.ToLower(os.Getenv("LOG_LEVEL"))
	var level zapcore.Level
	switch logLevelEnv {
	case "debug":
		level = zap.DebugLevel
	case "info":
		level = zap.InfoLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
	case "dpanic":
		level = zap.DPanicLevel
	case "panic":
		level = zap.PanicLevel
	case "fatal":
		level = zap.FatalLevel
	default:
		level = zap.InfoLevel
	}

	// Configuração do encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	// Determinar o ambiente (development ou production)
	env := strings.ToLower(os.Getenv("ENV"))
	var encoder zapcore.Encoder
	if env == "prod" {
		encoder = zapcore.NewJSONEncoder(encoderConfig) // JSON para Produção
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// O log do shell NUNCA vai para o terminal: o stdout/stderr pertencem
	// aos comandos executados. Tudo vai para o arquivo rotacionado.
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "vbls.log"
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, //Megabytes
		MaxBackups: 3,
		MaxAge:     28,   //Dias
		Compress:   true, //Compressão
	}

	writeSyncer := zapcore.AddSync(lumberjackLogger)

	// Configuração do core com nível de log definido
	core := zapcore.NewCore(encoder, writeSyncer, level)

	// Construir o logger
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return logger, nil
}
