package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/pyembed/py-runtime/object"
	"github.com/pyembed/py-runtime/runtime"
)

func main() {
	var (
		interpFile  = flag.String("interp", "", "Path to interpreter wasm file")
		execCode    = flag.String("exec", "", "Source to execute in __main__")
		importName  = flag.String("import", "", "Module to import and describe")
		showVersion = flag.Bool("version", false, "Print interpreter version and platform")
		interactive = flag.Bool("i", false, "Interactive REPL with TUI")
	)
	flag.Parse()

	if *interpFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: run -interp <interpreter.wasm> [-exec code] [-import module]")
		fmt.Fprintln(os.Stderr, "       run -interp <interpreter.wasm> -version")
		fmt.Fprintln(os.Stderr, "       run -interp <interpreter.wasm> -i  (interactive REPL)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*interpFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*interpFile, *execCode, *importName, *showVersion); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(interpFile, execCode, importName string, showVersion bool) error {
	ctx := context.Background()

	data, err := os.ReadFile(interpFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt, err := runtime.New(ctx, data)
	if err != nil {
		return fmt.Errorf("create runtime: %w", err)
	}
	defer rt.Close(ctx)

	if err := rt.Start(false); err != nil {
		return fmt.Errorf("start interpreter: %w", err)
	}
	defer rt.Stop()

	if showVersion {
		fmt.Printf("Version:  %s\n", rt.Version())
		fmt.Printf("Platform: %s\n", rt.Platform())
		if path, err := rt.SearchPath(); err == nil {
			fmt.Printf("Path:     %s\n", string(path))
		}
		return nil
	}

	if importName != "" {
		mod, err := rt.Import(importName)
		if err != nil {
			return fmt.Errorf("import %s: %w", importName, err)
		}
		defer mod.Release()

		fmt.Printf("Module: %s\n", importName)
		if fname, err := mod.Filename(); err == nil {
			defer fname.Release()
			if s, err := fname.UTF8(); err == nil {
				fmt.Printf("File:   %s\n", s)
			}
		}
		if doc, err := mod.GetAttr("__doc__"); err == nil {
			defer doc.Release()
			if doc.IsStr() {
				str := object.AsStr(doc)
				defer str.Release()
				if s, err := str.UTF8(); err == nil && s != "" {
					fmt.Printf("Doc:    %s\n", s)
				}
			}
		}
	}

	if execCode != "" {
		if err := rt.Execute(execCode); err != nil {
			return fmt.Errorf("execute: %w", err)
		}
	}

	return nil
}
