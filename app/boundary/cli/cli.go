// Package cli はドキュメントアクセスをコマンドラインから使うためのホストシェル
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wasya-io/go-guidestore/app/boundary/logger"
	"github.com/wasya-io/go-guidestore/app/boundary/reader"
	"github.com/wasya-io/go-guidestore/app/boundary/storage"
	"github.com/wasya-io/go-guidestore/app/boundary/writer"
	"github.com/wasya-io/go-guidestore/app/config"
	"github.com/wasya-io/go-guidestore/app/entity/core"
	"github.com/wasya-io/go-guidestore/app/entity/document"
	"github.com/wasya-io/go-guidestore/app/usecase/guide"
	"github.com/wasya-io/go-guidestore/app/usecase/resolver"
)

// App はコマンドの実行に必要な依存をまとめる
type App struct {
	configPath     string
	roots          []string
	policy         string
	canonical      string
	debug          bool
	allowTraversal bool

	in       reader.ContentReader
	out      writer.OutputWriter
	logger   core.Logger
	resolver *resolver.Resolver
	guide    *guide.Service
}

// New は新しいAppを作成する
func New(in reader.ContentReader, out writer.OutputWriter) *App {
	return &App{in: in, out: out, logger: core.NopLogger{}}
}

// Close はバッファに残ったログを書き出す
func (a *App) Close() error {
	return a.logger.Flush()
}

// Command はルートコマンドを組み立てる
func (a *App) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "guidestore",
		Short:         "guidestore - locate and persist guide documents across candidate data roots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return a.setup(c)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (.toml or .yaml)")
	flags.StringArrayVar(&a.roots, "root", nil, "candidate root in priority order (repeatable, overrides config)")
	flags.StringVar(&a.policy, "policy", "", "write policy: canonical or first-writable")
	flags.StringVar(&a.canonical, "canonical", "", "canonical write root")
	flags.BoolVar(&a.debug, "debug", false, "log every candidate attempt")
	flags.BoolVar(&a.allowTraversal, "allow-traversal", false, "accept filenames that leave the candidate root")

	cmd.AddCommand(
		a.readCommand(),
		a.writeCommand(),
		a.whichCommand(),
		a.rootsCommand(),
		a.chaptersCommand(),
		a.chapterCommand(),
	)
	return cmd
}

// setup は設定を読み込み、フラグで上書きしてResolverを作る
func (a *App) setup(c *cobra.Command) error {
	conf, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := c.Flags()
	if len(a.roots) > 0 {
		conf.Roots = a.roots
	}
	if flags.Changed("policy") {
		conf.WritePolicy = a.policy
	}
	if flags.Changed("canonical") {
		conf.CanonicalRoot = a.canonical
	} else if len(a.roots) > 0 {
		// ルートを指定した場合は先頭を正規ルートとする
		conf.CanonicalRoot = a.roots[0]
	}
	if a.debug {
		conf.DebugMode = true
	}
	if a.allowTraversal {
		conf.AllowTraversal = true
	}

	a.logger = logger.New(conf.DebugMode, conf.LogFile)

	policy, err := resolver.ParsePolicy(conf.WritePolicy)
	if err != nil {
		return err
	}
	roots, err := document.NewRoots(conf.Roots...)
	if err != nil {
		return err
	}
	a.resolver, err = resolver.New(resolver.Options{
		Roots:          roots,
		Policy:         policy,
		CanonicalRoot:  conf.CanonicalRoot,
		AllowTraversal: conf.AllowTraversal,
	}, storage.NewFileStorage(), a.logger)
	if err != nil {
		return err
	}
	a.guide = guide.NewService(a.resolver, conf.Manifest, a.logger)
	return nil
}

func (a *App) readCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <filename>",
		Short: "Print the first readable copy of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			content, err := a.resolver.Locate(args[0])
			if err != nil {
				return err
			}
			return a.out.Write(content)
		},
	}
}

func (a *App) writeCommand() *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "write <filename>",
		Short: "Persist a document from --content or standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !c.Flags().Changed("content") {
				var err error
				if content, err = a.in.ReadAll(); err != nil {
					return err
				}
			}

			res, err := a.resolver.Persist(args[0], content)
			for _, t := range res.Failed() {
				if werr := a.out.Write(fmt.Sprintf("failed %s: %v\n", t.Path, t.Err)); werr != nil {
					return werr
				}
			}
			if err != nil {
				return err
			}
			return a.out.Write(fmt.Sprintf("wrote %s\n", res.Written))
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "document content")
	return cmd
}

func (a *App) whichCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "which <filename>",
		Short: "Show what every candidate root holds for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			attempts, err := a.resolver.Trace(args[0])
			if err != nil {
				return err
			}

			rows := [][]string{{"", "PRIORITY", "PATH", "OUTCOME"}}
			chosen := false
			for i, at := range attempts {
				mark := ""
				if at.Outcome == resolver.OutcomeRead && !chosen {
					mark = "*"
					chosen = true
				}
				outcome := at.Outcome.String()
				if at.Err != nil {
					outcome = fmt.Sprintf("%s (%v)", outcome, errorCause(at.Err))
				}
				rows = append(rows, []string{mark, strconv.Itoa(i), at.Path, outcome})
			}
			return a.out.Write(renderTable(rows))
		},
	}
}

func (a *App) rootsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "List candidate roots with their state",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			rows := [][]string{{"PRIORITY", "ROOT", "EXISTS", "WRITABLE", "CANONICAL"}}
			for _, s := range a.resolver.Probe() {
				rows = append(rows, []string{
					strconv.Itoa(s.Priority),
					s.Root,
					yesNo(s.Exists && s.IsDir),
					yesNo(s.Writable),
					yesNo(s.Canonical),
				})
			}
			if err := a.out.Write(renderTable(rows)); err != nil {
				return err
			}
			return a.out.Write(fmt.Sprintf("write policy: %s\n", a.resolver.Policy()))
		},
	}
}

func (a *App) chaptersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List chapter files named by the guide manifest",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			chapters, err := a.guide.ListChapters()
			if err != nil {
				return err
			}
			for _, ch := range chapters {
				if err := a.out.Write(guide.ChapterFilename(ch) + "\n"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// chapterCommand は章ファイルを読み込み、必要なら編集して保存し直す
func (a *App) chapterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapter",
		Short: "Load or re-save a chapter file",
	}

	show := &cobra.Command{
		Use:   "show <path>",
		Short: "Print the id, title and file of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ch, err := a.guide.LoadChapter(args[0])
			if err != nil {
				return err
			}
			return a.out.Write(renderTable([][]string{
				{"ID", ch.ID},
				{"TITLE", ch.Title},
				{"FILE", ch.FilePath},
			}))
		},
	}

	var title string
	save := &cobra.Command{
		Use:   "save <path>",
		Short: "Load a chapter and save it back in the editor's format",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ch, err := a.guide.LoadChapter(args[0])
			if err != nil {
				return err
			}
			if c.Flags().Changed("title") {
				ch.Title = title
			}

			res, err := a.guide.SaveChapter(ch)
			if res != nil {
				for _, t := range res.Failed() {
					if werr := a.out.Write(fmt.Sprintf("failed %s: %v\n", t.Path, t.Err)); werr != nil {
						return werr
					}
				}
			}
			if err != nil {
				return err
			}
			return a.out.Write(fmt.Sprintf("wrote %s\n", res.Written))
		},
	}
	save.Flags().StringVar(&title, "title", "", "replace the chapter title")

	cmd.AddCommand(show, save)
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func errorCause(err error) error {
	if de, ok := err.(*resolver.DocumentError); ok && de.Err != nil {
		return de.Err
	}
	return err
}
