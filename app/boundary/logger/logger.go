package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/wasya-io/go-guidestore/app/entity/core"
)

// LogEntry はログのエントリを表す構造体
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     core.Level             `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Logger はロギング機能を提供する構造体
// エントリはバッファに溜め、一定量に達するかFlushで書き出す
type Logger struct {
	debugMode bool
	entries   []LogEntry
	out       io.Writer
	filePath  string
	maxBuffer int
	flushErr  error
	mutex     sync.Mutex
	now       func() time.Time
}

// New は新しいLoggerインスタンスを作成する
// filePathが空の場合は標準エラー出力に書き出す
func New(debugMode bool, filePath string) *Logger {
	l := &Logger{
		debugMode: debugMode,
		entries:   make([]LogEntry, 0),
		filePath:  filePath,
		maxBuffer: 100,
		now:       time.Now,
	}
	if filePath == "" {
		l.out = os.Stderr
	}
	return l
}

// NewWithWriter は任意のWriterへ書き出すLoggerを作成する
func NewWithWriter(debugMode bool, w io.Writer) *Logger {
	return &Logger{
		debugMode: debugMode,
		entries:   make([]LogEntry, 0),
		out:       w,
		maxBuffer: 100,
		now:       time.Now,
	}
}

// Log はメッセージをログに記録する
// デバッグモードでない場合、debugレベルは捨てる
func (l *Logger) Log(level core.Level, message string, kv ...interface{}) {
	if level == core.LevelDebug && !l.debugMode {
		return
	}

	entry := LogEntry{
		Timestamp: l.now().Format(time.RFC3339),
		Level:     level,
		Message:   message,
		Fields:    fields(kv),
	}

	l.mutex.Lock()
	l.entries = append(l.entries, entry)
	full := len(l.entries) >= l.maxBuffer
	l.mutex.Unlock()

	// バッファが一定量に達したらフラッシュ
	// 失敗した場合は保持しておき、次のFlushで返す
	if full {
		if err := l.Flush(); err != nil {
			l.mutex.Lock()
			l.flushErr = err
			l.mutex.Unlock()
		}
	}
}

// Flush は現在のログエントリを書き出す
// 1行1エントリのJSONで出力する
func (l *Logger) Flush() error {
	l.mutex.Lock()
	entries := l.entries
	l.entries = []LogEntry{}
	pending := l.flushErr
	l.flushErr = nil
	l.mutex.Unlock()

	if len(entries) == 0 {
		return pending
	}

	w := l.out
	if w == nil {
		f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("logger: open log file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("logger: write entry: %w", err)
		}
	}
	return pending
}

// SetDebugMode はデバッグモードの状態を設定する
func (l *Logger) SetDebugMode(enabled bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.debugMode = enabled
}

func fields(kv []interface{}) map[string]interface{} {
	if len(kv) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			m[key] = nil
			break
		}
		v := kv[i+1]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		m[key] = v
	}
	return m
}
