package storage

//go:generate mockgen -source=storage.go -destination=mock/mock_storage.go -package=mock_storage

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Storage はドキュメントの読み書きに使うファイルシステム操作を定義する
type Storage interface {
	Stat(path string) (os.FileInfo, error)
	ReadText(path string) (string, error)
	MkdirAll(dir string) error
	WriteText(path string, content string) error
	Writable(dir string) bool
}

// FileStorage は実際のファイルシステムを使用したStorageの実装
type FileStorage struct{}

// NewFileStorage は新しいFileStorageインスタンスを作成する
func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

func (fs *FileStorage) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadText はファイル全体をテキストとして読み込む
// UTF-8として不正な内容は読み込み失敗として扱う。内容の変換はしない
func (fs *FileStorage) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return string(data), nil
}

// MkdirAll は親ディレクトリも含めてディレクトリを作成する
func (fs *FileStorage) MkdirAll(dir string) error {
	return os.MkdirAll(dir, dirPerm)
}

// WriteText はファイルを内容で上書きする
func (fs *FileStorage) WriteText(path string, content string) error {
	return os.WriteFile(path, []byte(content), filePerm)
}

// Writable はプロセスがディレクトリに書き込めるかを返す
func (fs *FileStorage) Writable(dir string) bool {
	return unix.Access(filepath.Clean(dir), unix.W_OK) == nil
}
