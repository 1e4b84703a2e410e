package logger

import (
	"os"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitlab.com/nunet/cudamon/internal/config"
)

var (
	once sync.Once
	base *zap.Logger
	out  = &sink{w: zapcore.Lock(os.Stderr)}
)

type Logger struct {
	*zap.Logger
}

// sink is the destination shared by every package logger. It starts on stderr
// and can be redirected once commands know where logs should go.
type sink struct {
	mu      sync.Mutex
	w       zapcore.WriteSyncer
	cleanup func()
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *sink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Sync()
}

func (s *sink) swap(w zapcore.WriteSyncer, cleanup func()) {
	s.mu.Lock()
	old := s.cleanup
	_ = s.w.Sync()
	s.w, s.cleanup = w, cleanup
	s.mu.Unlock()
	if old != nil {
		old()
	}
}

func isDebug() bool {
	_, debug := os.LookupEnv("CUDAMON_DEBUG")
	return debug || config.GetConfig().General.Debug
}

func (l *Logger) init() {
	var (
		encoder zapcore.Encoder
		level   zap.AtomicLevel
	)
	if isDebug() {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	l.Logger = zap.New(
		zapcore.NewCore(encoder, out, level),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.DPanicLevel),
	)
}

// New takes in a package to initialize the new Logger in.
func New(pkg string) *Logger {
	once.Do(func() {
		l := &Logger{}
		l.init()
		base = l.Logger
	})

	return &Logger{
		Logger: base.With(zap.String("package", pkg)),
	}
}

// OtelZapLogger wraps the package logger so that the Ctx variants also record
// on the span found in the context.
func OtelZapLogger(pkg string) otelzap.Logger {
	return *otelzap.New(New(pkg).Logger)
}

// RedirectTo sends the output of every logger, including those created
// earlier, to path. An empty path restores stderr.
func RedirectTo(path string) error {
	if path == "" {
		out.swap(zapcore.Lock(os.Stderr), nil)
		return nil
	}
	w, cleanup, err := zap.Open(path)
	if err != nil {
		return err
	}
	out.swap(w, cleanup)
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = out.Sync()
}
