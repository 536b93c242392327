package resolver

import (
	"errors"

	"github.com/wasya-io/go-guidestore/app/entity/core"
	"github.com/wasya-io/go-guidestore/app/entity/document"
)

var errIsDirectory = errors.New("is a directory")

// Outcome は候補パス1つを試した結果
type Outcome int

const (
	OutcomeMissing Outcome = iota
	OutcomeRead
	OutcomeUnreadable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMissing:
		return "missing"
	case OutcomeRead:
		return "read"
	case OutcomeUnreadable:
		return "unreadable"
	}
	return "unknown"
}

// Attempt は候補ルート1つに対する読み込みの記録
type Attempt struct {
	Root    string
	Path    string
	Outcome Outcome
	Err     error
	content string
}

// Locate は候補ルートを優先順に探し、最初に読み込めたドキュメントの内容を返す
// 存在しないパスや読めないパスは飛ばして次の候補へ進む
func (r *Resolver) Locate(filename string) (string, error) {
	f, err := r.parse(filename)
	if err != nil {
		return "", err
	}

	for _, root := range r.roots.Paths() {
		a := r.try(root, f)
		if a.Outcome == OutcomeRead {
			return a.content, nil
		}
	}

	r.logger.Log(core.LevelDebug, "document not found", "filename", filename)
	return "", &DocumentError{Kind: KindNotFound, Filename: filename}
}

// Trace はLocateと同じ順序ですべての候補ルートを試し、各結果を返す
// 途中で読み込めても打ち切らない
func (r *Resolver) Trace(filename string) ([]Attempt, error) {
	f, err := r.parse(filename)
	if err != nil {
		return nil, err
	}

	paths := r.roots.Paths()
	attempts := make([]Attempt, 0, len(paths))
	for _, root := range paths {
		attempts = append(attempts, r.try(root, f))
	}
	return attempts, nil
}

func (r *Resolver) try(root string, f document.Filename) Attempt {
	path := document.Join(root, f)
	a := Attempt{Root: root, Path: path}
	r.logger.Log(core.LevelDebug, "trying candidate", "path", path)

	info, err := r.storage.Stat(path)
	if err != nil {
		if isMissing(err) {
			r.logger.Log(core.LevelDebug, "candidate does not exist", "path", path)
			a.Outcome = OutcomeMissing
			return a
		}
		return r.unreadable(a, err)
	}
	if info.IsDir() {
		return r.unreadable(a, errIsDirectory)
	}

	content, err := r.storage.ReadText(path)
	if err != nil {
		// 確認後に消えた場合も読み込み失敗として扱う
		return r.unreadable(a, err)
	}

	r.logger.Log(core.LevelDebug, "read candidate", "path", path, "bytes", len(content))
	a.Outcome = OutcomeRead
	a.content = content
	return a
}

func (r *Resolver) unreadable(a Attempt, err error) Attempt {
	r.logger.Log(core.LevelDebug, "candidate unreadable", "path", a.Path, "error", err)
	a.Outcome = OutcomeUnreadable
	a.Err = &DocumentError{Kind: KindUnreadable, Path: a.Path, Err: err}
	return a
}
