package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/urfave/cli/v2"

	bmx "github.com/anpydx/bmx-go"
	"github.com/anpydx/bmx-go/shader"
)

func fmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "print files in canonical form",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "rewrite files in place instead of printing"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() == 0 {
				return errors.New("fmt: missing FILE")
			}
			p := parserFrom(cCtx)
			for _, path := range cCtx.Args().Slice() {
				data, err := parseFile(p, path)
				if err != nil {
					return describe(path, err)
				}
				out := bmx.Dump(data)
				if !cCtx.Bool("write") {
					fmt.Fprint(cCtx.App.Writer, out)
					continue
				}
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					return err
				}
				debugf(cCtx, "formatted %s", path)
			}
			return nil
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "report syntax errors in files",
		ArgsUsage: "FILE...",
		Action: func(cCtx *cli.Context) error {
			paths := cCtx.Args().Slice()
			if len(paths) == 0 {
				return errors.New("check: missing FILE")
			}

			results := checkFiles(parserFrom(cCtx), paths, cCtx.Int("workers"))

			failed := 0
			for i, err := range results {
				if err == nil {
					debugf(cCtx, "%s: ok", paths[i])
					continue
				}
				failed++
				fmt.Fprint(cCtx.App.ErrWriter, report(paths[i], err))
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, len(paths)), 1)
			}
			return nil
		},
	}
}

// checkFiles parses every path on a worker pool and returns one result per path.
func checkFiles(p *bmx.Parser, paths []string, workers int) []error {
	pool := worker.NewDynamicWorkerPool(workers, len(paths), time.Second)
	defer pool.Stop()

	results := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: path,
			Do: func() (any, error) {
				defer wg.Done()
				_, err := parseFile(p, path)
				results[i] = err
				return nil, err
			},
		})
	}
	wg.Wait()

	return results
}

func includeCommand() *cli.Command {
	return &cli.Command{
		Name:      "include",
		Usage:     "expand @include directives in text blocks",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "block", Aliases: []string{"b"}, Usage: "text block to expand (repeatable)", Required: true},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return errors.New("include: expected exactly one FILE")
			}
			path := cCtx.Args().First()
			data, err := parseFile(parserFrom(cCtx), path)
			if err != nil {
				return describe(path, err)
			}
			if err := bmx.ApplyIncludes(data, cCtx.StringSlice("block")...); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			_, err = data.WriteTo(cCtx.App.Writer)
			return err
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "print a text block, an attribute block or one attribute value",
		ArgsUsage: "FILE BLOCK [KEY]",
		Action: func(cCtx *cli.Context) error {
			args := cCtx.Args()
			if args.Len() < 2 || args.Len() > 3 {
				return errors.New("get: expected FILE BLOCK [KEY]")
			}
			path, block := args.Get(0), args.Get(1)
			data, err := parseFile(parserFrom(cCtx), path)
			if err != nil {
				return describe(path, err)
			}

			if args.Len() == 3 {
				v, ok := data.Attribute(block, args.Get(2))
				if !ok {
					return fmt.Errorf("%s: attribute %q not found in block %q", path, args.Get(2), block)
				}
				fmt.Fprintln(cCtx.App.Writer, v)
				return nil
			}

			if text, ok := data.Text(block); ok {
				fmt.Fprint(cCtx.App.Writer, text)
				return nil
			}
			if attrs, ok := data.Attributes[block]; ok {
				only := bmx.NewData()
				only.Attributes[block] = attrs
				_, err := only.WriteTo(cCtx.App.Writer)
				return err
			}
			return fmt.Errorf("%s: block %q not found", path, block)
		},
	}
}

func shaderCommand() *cli.Command {
	return &cli.Command{
		Name:      "shader",
		Usage:     "print the expanded stages of a shader file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "stage", Usage: "print only this stage (vertex or fragment)"},
		},
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return errors.New("shader: expected exactly one FILE")
			}
			path := cCtx.Args().First()
			data, err := parseFile(parserFrom(cCtx), path)
			if err != nil {
				return describe(path, err)
			}
			src, err := shader.FromData(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if stage := cCtx.String("stage"); stage != "" {
				code, ok := src.Stage(shader.ShaderType(stage))
				if !ok {
					return fmt.Errorf("unknown stage %q", stage)
				}
				fmt.Fprint(cCtx.App.Writer, code)
				return nil
			}

			stages := bmx.NewData()
			for _, stage := range shader.Stages {
				stages.Texts[string(stage)], _ = src.Stage(stage)
			}
			_, err = stages.WriteTo(cCtx.App.Writer)
			return err
		},
	}
}

func manCommand() *cli.Command {
	return &cli.Command{
		Name:   "man",
		Usage:  "print the man page",
		Hidden: true,
		Action: func(cCtx *cli.Context) error {
			man, err := cCtx.App.ToMan()
			if err != nil {
				return err
			}
			fmt.Fprint(cCtx.App.Writer, man)
			return nil
		},
	}
}

func parserFrom(cCtx *cli.Context) *bmx.Parser {
	return bmx.NewParser().WithMaxLineSize(cCtx.Int("max-line-size"))
}

func parseFile(p *bmx.Parser, path string) (*bmx.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close %s: %v", path, err)
		}
	}()
	return p.Parse(f)
}

// describe prefixes err with path, expanding syntax errors into a caret report.
func describe(path string, err error) error {
	var se *bmx.SyntaxError
	if errors.As(err, &se) {
		return errors.New(strings.TrimSuffix(report(path, err), "\n"))
	}
	return fmt.Errorf("%s: %w", path, err)
}

// report renders err in file:line:column form, with the offending line for syntax errors.
func report(path string, err error) string {
	var se *bmx.SyntaxError
	if !errors.As(err, &se) {
		return fmt.Sprintf("%s: %v\n", path, err)
	}
	return fmt.Sprintf("%s:%d:%d: %s\n%s", path, se.LineNumber, se.Column+1, se.Msg, se.Caret())
}

func debugf(cCtx *cli.Context, format string, args ...any) {
	if !cCtx.Bool("verbose") {
		return
	}
	log.New(cCtx.App.ErrWriter, "", 0).Printf(format, args...)
}
