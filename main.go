package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/wasya-io/go-guidestore/app/boundary/cli"
	"github.com/wasya-io/go-guidestore/app/boundary/reader"
	"github.com/wasya-io/go-guidestore/app/boundary/writer"
)

func main() {
	// グローバルなパニックハンドラを設定
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "guidestore crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s", debug.Stack())
			os.Exit(1)
		}
	}()

	app := cli.New(reader.NewStandardContentReader(), writer.NewStandardOutputWriter())
	err := app.Command().Execute()
	// ログは成功・失敗どちらでも書き出す
	if cerr := app.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cerr)
	}
	if err != nil {
		die(err)
	}
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
