// Command polygen reads a PEG grammar and writes the Go parser it
// compiles to, mirroring the teacher's stdin/stdout/-o flag shape.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/glebzlat/polygen/charsource"
	"github.com/glebzlat/polygen/codegen"
	"github.com/glebzlat/polygen/metaparser"
	"github.com/glebzlat/polygen/normalize"
)

func main() {
	var (
		shortHelpFlag = flag.Bool("h", false, "show help page")
		longHelpFlag  = flag.Bool("help", false, "show help page")
		outputFlag    = flag.String("o", "", "output file, defaults to stdout")
		packageFlag   = flag.String("package", "main", "package name of the generated parser")
		noBuildFlag   = flag.Bool("x", false, "do not generate, only parse and normalize the grammar")
	)
	flag.Usage = usage
	flag.Parse()

	if *shortHelpFlag || *longHelpFlag {
		flag.Usage()
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		argError(1, "expected one argument, got %q", strings.Join(flag.Args(), " "))
	}

	infile := ""
	if flag.NArg() == 1 {
		infile = flag.Arg(0)
	}
	rc := input(infile)
	defer rc.Close()

	src, err := charsource.NewReader(rc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(2)
	}

	g, err := metaparser.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(3)
	}

	if err := normalize.NewDriver().Run(g); err != nil {
		switch e := err.(type) {
		case *normalize.TreeModifierWarning:
			fmt.Fprintln(os.Stderr, e)
		default:
			fmt.Fprintln(os.Stderr, "normalization error(s):\n", err)
			os.Exit(4)
		}
	}

	if *noBuildFlag {
		return
	}

	out, err := codegen.NewEmitter().Emit(g, *packageFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generation error:", err)
		os.Exit(5)
	}

	w := output(*outputFlag)
	defer w.Close()
	if _, err := io.WriteString(w, out); err != nil {
		fmt.Fprintln(os.Stderr, "write error:", err)
		os.Exit(6)
	}
}

var usagePage = `usage: %s [options] [GRAMMAR_FILE]

polygen reads a PEG grammar and generates a self-contained packrat
parser for it. It doesn't try to format the generated code nor detect
required imports; pipe the output through goimports if that matters.

By default, polygen reads the grammar from stdin and writes the
generated parser to stdout. If GRAMMAR_FILE is specified, the grammar
is read from this file instead. If the -o flag is set, the generated
code is written to this file instead.

	-h -help
		display this help message.
	-o OUTPUT_FILE
		write the generated parser to OUTPUT_FILE. Defaults to stdout.
	-package NAME
		package name of the generated parser. Defaults to "main".
	-x
		do not generate the parser, only parse and normalize the
		grammar (useful to check a grammar for errors).
`

func usage() {
	fmt.Printf(usagePage, os.Args[0])
}

func argError(exit int, msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg, args...)
	fmt.Fprintln(os.Stderr)
	flag.Usage()
	os.Exit(exit)
}

func input(filename string) io.ReadCloser {
	if filename == "" {
		return io.NopCloser(bufio.NewReader(os.Stdin))
	}
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return f
}

func output(filename string) io.WriteCloser {
	if filename == "" {
		return nopWriteCloser{os.Stdout}
	}
	f, err := os.Create(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(4)
	}
	return f
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
