// Package guide は候補ルート上のガイドデータ（メインのマニフェストと章ファイル）を扱う。
// 章の内容は検証せずJSONのまま保持する。
package guide

//go:generate mockgen -source=guide.go -destination=mock/mock_guide.go -package=mock_guide

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/wasya-io/go-guidestore/app/entity/core"
	"github.com/wasya-io/go-guidestore/app/usecase/resolver"
)

const chapterDir = "chapters"

var (
	ErrNoChapter = errors.New("no chapter loaded to save")
	ErrNoPath    = errors.New("chapter has no file path")
)

// Documents はドキュメントの読み書きを行うインターフェース
type Documents interface {
	Locate(filename string) (string, error)
	Persist(filename string, content string) (*resolver.PersistResult, error)
}

// Manifest はメインのガイドファイルのうち章一覧に関わる部分
type Manifest struct {
	ChapterFiles []string `json:"chapterFiles"`
}

// Chapter は章ファイルの内容
type Chapter struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Content  json.RawMessage `json:"content"`
	FilePath string          `json:"-"`
}

// Service はガイドの章の一覧・読み込み・保存を行う
type Service struct {
	docs     Documents
	manifest string
	logger   core.Logger
}

// NewService は新しいServiceを作成する
func NewService(docs Documents, manifest string, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Service{docs: docs, manifest: manifest, logger: logger}
}

// ListChapters はマニフェストに書かれた章ファイルの一覧を返す
func (s *Service) ListChapters() ([]string, error) {
	content, err := s.docs.Locate(s.manifest)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return nil, fmt.Errorf("guide: parse %s: %w", s.manifest, err)
	}
	if m.ChapterFiles == nil {
		return []string{}, nil
	}
	return m.ChapterFiles, nil
}

// ChapterFilename はマニフェスト上のパスから候補ルート相対の章ファイル名を作る
// 例: "/data/chapters/05_ss_liki.json" -> "chapters/05_ss_liki.json"
func ChapterFilename(p string) string {
	return path.Join(chapterDir, path.Base(strings.ReplaceAll(p, "\\", "/")))
}

// LoadChapter は章ファイルを読み込む
func (s *Service) LoadChapter(p string) (*Chapter, error) {
	filename := ChapterFilename(p)
	s.logger.Log(core.LevelDebug, "loading chapter", "filename", filename)

	content, err := s.docs.Locate(filename)
	if err != nil {
		return nil, err
	}

	var ch Chapter
	if err := json.Unmarshal([]byte(content), &ch); err != nil {
		return nil, fmt.Errorf("guide: parse %s: %w", filename, err)
	}
	ch.FilePath = filename
	return &ch, nil
}

// SaveChapter は章を4スペースでインデントしたJSONとして保存する
func (s *Service) SaveChapter(ch *Chapter) (*resolver.PersistResult, error) {
	if ch == nil || ch.ID == "" {
		return nil, ErrNoChapter
	}
	if ch.FilePath == "" {
		return nil, ErrNoPath
	}

	out := *ch
	if len(out.Content) == 0 {
		out.Content = json.RawMessage("[]")
	}
	data, err := encodeChapter(&out)
	if err != nil {
		return nil, fmt.Errorf("guide: encode %s: %w", ch.FilePath, err)
	}

	res, err := s.docs.Persist(ch.FilePath, data)
	if err != nil {
		return res, err
	}
	s.logger.Log(core.LevelInfo, "chapter saved", "path", res.Written)
	return res, nil
}

// encodeChapter は&や<>をエスケープせずにそのまま書き出す
func encodeChapter(ch *Chapter) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(ch); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
