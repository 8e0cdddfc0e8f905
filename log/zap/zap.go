// Package zap adapts a *zap.Logger to datecodec.Logger.
package zap

import (
	"github.com/unkn0wn-root/datecodec"
	"go.uber.org/zap"
)

var _ datecodec.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "datecodec" so its entries are easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("datecodec")} }

func (z ZapLogger) Debug(msg string, f datecodec.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f datecodec.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f datecodec.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f datecodec.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f datecodec.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
