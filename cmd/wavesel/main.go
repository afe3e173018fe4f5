package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"tlog.app/go/errors"

	"github.com/wavesel/wavesel"
	"github.com/wavesel/wavesel/gcn"
	"github.com/wavesel/wavesel/internal/testcases"
)

func main() {
	doMain(os.Args[1:], os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("wavesel", flag.ContinueOnError)
	flags.SetOutput(stdErr)

	var help, list, flush32, flush64 bool
	flags.BoolVar(&help, "h", false, "print usage")
	flags.BoolVar(&list, "list", false, "list the shaders that can be compiled")
	flags.BoolVar(&flush32, "flush32", false, "flush 32-bit denormals")
	flags.BoolVar(&flush64, "flush64", false, "flush 16-bit and 64-bit denormals")

	var name, gfx string
	var wave int
	flags.StringVar(&name, "case", "", "name of the shader to compile")
	flags.StringVar(&gfx, "gfx", gcn.GFX9.String(), "hardware generation, gfx6 to gfx10.3")
	flags.IntVar(&wave, "wave", 64, "wave size, 32 or 64")

	if err := flags.Parse(args); err != nil {
		exit(1)
		return
	}

	switch {
	case help:
		printUsage(stdErr, flags)
		exit(0)
		return
	case list:
		for _, tc := range testcases.All {
			fmt.Fprintln(stdOut, tc.Name)
		}
		exit(0)
		return
	case name == "":
		fmt.Fprintln(stdErr, "missing shader name")
		printUsage(stdErr, flags)
		exit(1)
		return
	}

	c := wavesel.NewCompilerConfig().
		WithWaveSize(wave).
		WithDenormFlush32(flush32).
		WithDenormFlush64(flush64)

	out, err := compile(c, name, gfx)
	if err != nil {
		fmt.Fprintf(stdErr, "error compiling %s: %v\n", name, err)
		exit(1)
		return
	}
	fmt.Fprint(stdOut, out)
	exit(0)
}

func compile(c wavesel.CompilerConfig, name, gfx string) (string, error) {
	level, ok := gcn.ParseGfxLevel(gfx)
	if !ok {
		return "", errors.New("invalid hardware generation %q", gfx)
	}
	tc, ok := testcases.Lookup(name)
	if !ok {
		return "", errors.New("unknown shader, see -list")
	}

	p, err := wavesel.NewCompiler(c.WithGfxLevel(level)).Compile(context.Background(), tc.Build()...)
	if err != nil {
		return "", err
	}
	return p.Format(), nil
}

func printUsage(stdErr io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(stdErr, "wavesel CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  wavesel -case <name> <options>\n  wavesel -list")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flags.PrintDefaults()
}
