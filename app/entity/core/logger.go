package core

// Level はログの重要度
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Logger はログ出力のインターフェース
// kvはキーと値を交互に並べたもの
type Logger interface {
	Log(level Level, message string, kv ...interface{})
	Flush() error
}

// NopLogger は何も出力しないLogger
type NopLogger struct{}

func (NopLogger) Log(Level, string, ...interface{}) {}

func (NopLogger) Flush() error { return nil }
