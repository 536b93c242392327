package resolver

import (
	"path/filepath"

	"github.com/wasya-io/go-guidestore/app/entity/core"
	"github.com/wasya-io/go-guidestore/app/entity/document"
)

// Target は書き込み先1つに対する試行の記録
type Target struct {
	Root string
	Path string
	Err  error // 成功した場合はnil
}

// PersistResult は保存の結果
// 失敗した書き込み先もAttemptsに残るので、部分的な失敗を呼び出し側が確認できる
type PersistResult struct {
	Written  string
	Attempts []Target
}

// Failed は失敗した書き込み先を返す
func (p *PersistResult) Failed() []Target {
	var failed []Target
	for _, t := range p.Attempts {
		if t.Err != nil {
			failed = append(failed, t)
		}
	}
	return failed
}

// Persist はドキュメントを書き込み方針に従って保存する
// 親ディレクトリがなければ作成し、既存のファイルは上書きする
// エラー時もそれまでの試行を含んだ結果を返す
func (r *Resolver) Persist(filename string, content string) (*PersistResult, error) {
	result := &PersistResult{}
	f, err := r.parse(filename)
	if err != nil {
		return result, err
	}

	roots := []string{r.canonical}
	if r.policy == PolicyFirstWritable {
		roots = r.roots.Paths()
	}

	var last error
	for _, root := range roots {
		path := document.Join(root, f)
		r.logger.Log(core.LevelDebug, "trying write target", "path", path)

		if err := r.write(path, content); err != nil {
			err.Filename = filename
			result.Attempts = append(result.Attempts, Target{Root: root, Path: path, Err: err})
			r.logger.Log(core.LevelDebug, "write target failed", "path", path, "error", err.Err)
			last = err
			continue
		}

		result.Attempts = append(result.Attempts, Target{Root: root, Path: path})
		result.Written = path
		r.logger.Log(core.LevelDebug, "wrote document", "path", path, "bytes", len(content))
		return result, nil
	}

	return result, last
}

func (r *Resolver) write(path, content string) *DocumentError {
	dir := filepath.Dir(path)
	if err := r.storage.MkdirAll(dir); err != nil {
		return &DocumentError{Kind: KindDirectoryCreateFailed, Path: dir, Err: err}
	}
	if err := r.storage.WriteText(path, content); err != nil {
		return &DocumentError{Kind: KindWriteFailed, Path: path, Err: err}
	}
	return nil
}
