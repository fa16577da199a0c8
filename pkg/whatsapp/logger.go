package whatsapp

import (
	waLog "go.mau.fi/whatsmeow/util/log"
	"go.uber.org/zap"
)

// zapLogger whatsmeow'un log arayüzünü zap'e bağlar.
type zapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger verilen zap logger'ı modül adıyla whatsmeow'a uygun hale getirir.
func NewZapLogger(log *zap.Logger, module string) waLog.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &zapLogger{log: log.Named(module).Sugar()}
}

func (l *zapLogger) Warnf(msg string, args ...interface{})  { l.log.Warnf(msg, args...) }
func (l *zapLogger) Errorf(msg string, args ...interface{}) { l.log.Errorf(msg, args...) }
func (l *zapLogger) Infof(msg string, args ...interface{})  { l.log.Infof(msg, args...) }
func (l *zapLogger) Debugf(msg string, args ...interface{}) { l.log.Debugf(msg, args...) }

func (l *zapLogger) Sub(module string) waLog.Logger {
	return &zapLogger{log: l.log.Named(module)}
}
