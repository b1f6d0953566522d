package mscx

import (
	"go.uber.org/zap"
)

type Options struct {
	// Name used in diagnostics.
	DocName string `yaml:"doc_name"`

	// Added to reported line numbers when the document is embedded in a
	// larger file.
	LineOffset int `yaml:"line_offset"`

	// Strict records missing attributes and turns location mismatches
	// into errors. Lenient mode substitutes defaults and carries on.
	Strict bool `yaml:"strict"`

	Logger *zap.Logger `yaml:"-"`
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
