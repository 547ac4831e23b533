package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Station-Manager/logfacade"
	"github.com/Station-Manager/logfacade/logrusprovider"
	"github.com/Station-Manager/logfacade/zapprovider"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const name = "logfacade"

const (
	backendZerolog = "zerolog"
	backendZap     = "zap"
	backendLogrus  = "logrus"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a JSON or YAML logging configuration file",
		Sources: cli.EnvVars(logfacade.EnvLogConfig),
	}
}

func levelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "Level override applied to every category (trace, debug, info, warn, error, fatal, off)",
		Sources: cli.EnvVars(logfacade.EnvLogLevel),
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Inspect and exercise the logfacade fallback provider",
		Version: logfacade.Version,
		Commands: []*cli.Command{
			checkCmd(),
			emitCmd(),
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Print the effective fallback configuration",
		Description: `Resolve the configuration the fallback provider would use, exactly as
it does at first use: the --config file (or LOG_CONFIG) verbatim, with every
category forced to --level (or LOG_LEVEL) when both are given, or a single
console appender when no file is given. The result is validated and printed
as YAML.

Examples:
  logfacade check
  logfacade check --config logging.yaml --level debug`,
		Flags: []cli.Flag{configFlag(), levelFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			root := cmd.Root()
			settings := logfacade.FallbackSettings{
				Level:      strings.TrimSpace(cmd.String("level")),
				ConfigPath: strings.TrimSpace(cmd.String("config")),
			}
			diag := zerolog.New(zerolog.ConsoleWriter{Out: root.ErrWriter, NoColor: true})

			cfg, err := logfacade.BuildFallbackConfig(settings, diag)
			if err != nil {
				return fmt.Errorf("failed to build configuration: %w", err)
			}
			if err := logfacade.ValidateConfig(&cfg); err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}

			enc := yaml.NewEncoder(root.Writer)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
}

func emitCmd() *cli.Command {
	return &cli.Command{
		Name:      "emit",
		Usage:     "Log a message through a facade",
		ArgsUsage: "MESSAGE...",
		Description: `Initialize the module guard, install the selected backend and write
MESSAGE through a facade for --category at --severity.

The zerolog backend is the fallback provider itself (nothing is installed);
zap and logrus are installed through their provider adapters and write JSON
to stdout.

Examples:
  logfacade emit --category billing.invoices hello
  logfacade emit --backend zap --severity warn disk almost full`,
		Flags: []cli.Flag{
			configFlag(),
			levelFlag(),
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Value:   backendZerolog,
				Usage:   "Backend to route through: zerolog, zap or logrus",
			},
			&cli.StringFlag{
				Name:  "category",
				Value: name,
				Usage: "Dot-separated logger category",
			},
			&cli.StringFlag{
				Name:    "severity",
				Aliases: []string{"s"},
				Value:   "info",
				Usage:   "Severity of the message",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			root := cmd.Root()

			if err := logfacade.Initialize(); err != nil {
				return err
			}

			severity, err := logfacade.ParseSeverity(cmd.String("severity"))
			if err != nil {
				return err
			}

			level := strings.TrimSpace(cmd.String("level"))
			configPath := strings.TrimSpace(cmd.String("config"))
			registry := logfacade.NewRegistry(
				logfacade.WithFallbackOutput(root.Writer),
				logfacade.WithDiagnostics(root.ErrWriter),
				logfacade.WithEnvLookup(func(key string) (string, bool) {
					switch key {
					case logfacade.EnvLogLevel:
						return level, level != ""
					case logfacade.EnvLogConfig:
						return configPath, configPath != ""
					}
					return "", false
				}),
			)

			provider, flush, err := newBackend(cmd.String("backend"), level, root.Writer)
			if err != nil {
				return err
			}
			defer flush()
			if err := registry.SetProvider(provider); err != nil {
				return err
			}

			logger := registry.GetLogger(cmd.String("category"))
			if _, err := logger.Resolve(); err != nil {
				return fmt.Errorf("failed to resolve logger: %w", err)
			}
			logger.Log(severity, strings.Join(cmd.Args().Slice(), " "))
			return nil
		},
	}
}

// newBackend returns the provider for backend (nil for the zerolog fallback)
// and a function flushing its buffers.
func newBackend(backend, level string, w io.Writer) (logfacade.Provider, func(), error) {
	if backend == backendZerolog {
		return nil, func() {}, nil
	}

	severity := logfacade.SeverityInfo
	if level != "" {
		s, err := logfacade.ParseSeverity(level)
		if err != nil {
			return nil, nil, err
		}
		severity = s
	}

	switch backend {
	case backendZap:
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			zapLevel(severity),
		)
		z := zap.New(core)
		return zapprovider.New(z), func() { _ = z.Sync() }, nil
	case backendLogrus:
		l := logrus.New()
		l.SetOutput(w)
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrusLevel(severity))
		return logrusprovider.New(l), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend: %q", backend)
}

func zapLevel(s logfacade.Severity) zapcore.Level {
	switch s {
	case logfacade.SeverityTrace, logfacade.SeverityDebug:
		return zapcore.DebugLevel
	case logfacade.SeverityWarn:
		return zapcore.WarnLevel
	case logfacade.SeverityError:
		return zapcore.ErrorLevel
	case logfacade.SeverityFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func logrusLevel(s logfacade.Severity) logrus.Level {
	switch s {
	case logfacade.SeverityTrace:
		return logrus.TraceLevel
	case logfacade.SeverityDebug:
		return logrus.DebugLevel
	case logfacade.SeverityWarn:
		return logrus.WarnLevel
	case logfacade.SeverityError:
		return logrus.ErrorLevel
	case logfacade.SeverityFatal:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
