package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/semearlages/semearapi/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	Release          string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Release:          params.Release,
			Dsn:              params.SentryDSN,
			TracesSampleRate: 0.2,
			ServerName:       params.SentryServerName,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		} else {
			logrus.AddHook(NewSentryHook(sentry.CurrentHub(), []logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			logrus.Infoln("sentry set up successfully")
		}
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	out, err := Output(params.LogFileName, params.LogToStdout)
	if err != nil {
		logrus.SetOutput(os.Stdout)
		logrus.Errorf("set up log file, falling back to STDOUT: %s", err)
		return
	}
	logrus.SetOutput(out)
}

// Output returns where logs should go: STDOUT, a rotating file or both.
func Output(logFileName string, logToStdout bool) (io.Writer, error) {
	if logFileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout, nil
	}

	if !strings.HasSuffix(logFileName, ".log") {
		logFileName += ".log"
	}

	dir := filepath.Dir(logFileName)
	exists, err := pkg.PathExists(dir, true)
	if err != nil {
		return nil, fmt.Errorf("check logs dir %s: %w", dir, err)
	}
	if !exists {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create logs dir %s: %w", dir, err)
		}
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   logFileName,
		MaxSize:    50, // megabytes
		MaxBackups: 30,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	}

	if logToStdout {
		logrus.Println("writing logs to file and STDOUT")
		return pkg.NewCombinedWriter(os.Stdout, lumberJackLogger), nil
	}

	return lumberJackLogger, nil
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
