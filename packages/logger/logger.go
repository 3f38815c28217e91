// Package logger builds the zap loggers used across the module.
package logger

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Parameters contains the configuration parameters of the logger.
type Parameters struct {
	// Level is the minimum enabled logging level.
	Level string `default:"info" usage:"the minimum enabled logging level"`
	// Encoding sets the logger's encoding.
	Encoding string `default:"console" usage:"the logger's encoding (console or json)"`
	// OutputPaths is a list of URLs or file paths to write logging output to.
	OutputPaths []string `default:"stdout" usage:"a list of URLs or file paths to write logging output to"`
	// DisableCaller stops annotating logs with the calling function's file name and line number.
	DisableCaller bool `default:"true" usage:"stop annotating logs with the calling function's file name and line number"`
}

// NewLogger builds a named sugared logger from the given parameters.
func NewLogger(name string, params *Parameters) (*zap.SugaredLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(params.Level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", params.Level)
	}

	if params.Encoding != "console" && params.Encoding != "json" {
		return nil, errors.Newf("invalid log encoding %q", params.Encoding)
	}

	outputPaths := params.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if params.Encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          params.Encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputPaths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     params.DisableCaller,
		DisableStacktrace: true,
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	return log.Named(name).Sugar(), nil
}
