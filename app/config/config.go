package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPolicy   = "canonical"
	defaultManifest = "ffx_guide_main.json"
)

// DefaultRoots はパッケージ版の実行を優先した候補ルートの既定値
func DefaultRoots() []string {
	return []string{"../public/data/", "public/data/", "./public/data/", "data/"}
}

// Config はドキュメントアクセスの設定を保持する構造体
// 起動時に一度だけ作られ、以後は変更しない
type Config struct {
	Roots          []string `toml:"roots" yaml:"roots"`
	WritePolicy    string   `toml:"write_policy" yaml:"write_policy"`
	CanonicalRoot  string   `toml:"canonical_root" yaml:"canonical_root"`
	AllowTraversal bool     `toml:"allow_traversal" yaml:"allow_traversal"`
	Manifest       string   `toml:"manifest" yaml:"manifest"`
	DebugMode      bool     `toml:"debug" yaml:"debug"`
	LogFile        string   `toml:"log_file" yaml:"log_file"`
}

// Default は既定の設定を返す
// CanonicalRootは空のままにし、読み込みの最後に候補ルートの先頭で埋める
func Default() *Config {
	return &Config{
		Roots:       DefaultRoots(),
		WritePolicy: defaultPolicy,
		Manifest:    defaultManifest,
	}
}

// LoadConfig は設定ファイルと.envファイル、環境変数から設定を読み込む
// 優先順位は 既定値 < 設定ファイル < 環境変数
// pathが空の場合はGUIDE_CONFIGを参照する
func LoadConfig(path string) (*Config, error) {
	// .envファイルを読み込む
	godotenv.Load()

	config := Default()

	if path == "" {
		path = os.Getenv("GUIDE_CONFIG")
	}
	if path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	config.applyEnv()

	// 正規ルートが明示されていなければ、最も優先される候補ルートに書き込む
	if config.CanonicalRoot == "" && len(config.Roots) > 0 {
		config.CanonicalRoot = config.Roots[0]
	}
	return config, nil
}

// loadFile は拡張子に応じてTOMLかYAMLの設定ファイルを読み込む
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
	return nil
}

func (c *Config) applyEnv() {
	// GUIDE_ROOTSはOSのパス区切り文字で区切る
	if roots := os.Getenv("GUIDE_ROOTS"); roots != "" {
		var list []string
		for _, r := range filepath.SplitList(roots) {
			if r = strings.TrimSpace(r); r != "" {
				list = append(list, r)
			}
		}
		if len(list) > 0 {
			c.Roots = list
		}
	}

	if policy := os.Getenv("GUIDE_WRITE_POLICY"); policy != "" {
		c.WritePolicy = policy
	}

	if canonical := os.Getenv("GUIDE_CANONICAL_ROOT"); canonical != "" {
		c.CanonicalRoot = canonical
	}

	if traversal := os.Getenv("GUIDE_ALLOW_TRAVERSAL"); traversal != "" {
		c.AllowTraversal = traversal != "0" && traversal != "false"
	}

	if manifest := os.Getenv("GUIDE_MANIFEST"); manifest != "" {
		c.Manifest = manifest
	}

	// DEBUG環境変数から設定を読み込む
	if debug := os.Getenv("DEBUG"); debug != "" {
		c.DebugMode = debug == "true"
	}

	if logFile := os.Getenv("GUIDE_LOG_FILE"); logFile != "" {
		c.LogFile = logFile
	}
}
