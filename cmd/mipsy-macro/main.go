package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	mipsy_macro "github.com/mcdcam/mipsy-macro"
)

var (
	outFile   = flag.String("o", "", "path of the file to output to (default {sourcefile}.preprocessed{ext})")
	toStdout  = flag.Bool("print", false, "output to stdout instead of a file")
	clobber   = flag.Bool("clobber", false, "allow overwriting the source file")
	keepGoing = flag.Bool("keep-going", false, "write output even if errors were detected; be prepared for incorrect output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mipsy-macro [flags] <sourcefile>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *toStdout && *outFile != "" {
		fmt.Fprintln(os.Stderr, "-print and -o are mutually exclusive")
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	srcPath := flag.Arg(0)
	outPath := *outFile
	if outPath == "" {
		outPath = defaultOutPath(srcPath)
	}
	if !*toStdout && !*clobber && samePath(srcPath, outPath) {
		fmt.Fprintln(os.Stderr, "Source and destination files are the same, use -clobber to allow this.")
		os.Exit(1)
	}

	buf, err := os.ReadFile(srcPath)
	if err != nil {
		log.Fatalf("reading %s: %v", srcPath, err)
	}

	output, diags := mipsy_macro.Process(string(buf))
	for _, d := range diags {
		entry := log.WithField("line", d.Line)
		if d.Col > 0 {
			entry = entry.WithField("col", d.Col)
		}
		if d.Severity == mipsy_macro.SeverityError {
			entry.Error(d.Message)
		} else {
			entry.Warning(d.Message)
		}
	}
	if mipsy_macro.HasErrors(diags) && !*keepGoing {
		os.Exit(1)
	}

	if *toStdout {
		fmt.Print(output)
	} else if err := os.WriteFile(outPath, []byte(output), 0644); err != nil {
		log.Fatalf("writing %s: %v", outPath, err)
	}
}

func defaultOutPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + ".preprocessed" + ext
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
