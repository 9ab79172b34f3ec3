package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultSource = "public/logo.jpg"
	defaultOutDir = "public"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run prints exactly one status line to stdout. Generation failures are
// reported there and still exit 0 unless -strict is given.
func run(args []string, stdout, stderr io.Writer) (code int) {
	fs := flag.NewFlagSet("favicon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		src     = fs.String("src", defaultSource, "source image")
		outDir  = fs.String("out", defaultOutDir, "output directory")
		filter  = fs.String("filter", "lanczos3", "resampling filter")
		stretch = fs.Bool("stretch", false, "ignore aspect ratio when scaling")
		strict  = fs.Bool("strict", false, "exit with status 1 on failure")
		verbose = fs.Bool("v", false, "debug logging")
		logFile = fs.String("log-file", "", "also write logs to this file, rotated")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	setupLogging(stderr, *verbose, *logFile)

	fail := func(err error) int {
		logrus.Errorf("generate %s: %v", *src, err)
		fmt.Fprintf(stdout, "Error creating favicon: %v\n", err)
		if *strict {
			return 1
		}
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("%v: %s", r, debug.Stack())
			code = fail(fmt.Errorf("%v", r))
		}
	}()

	opts := Options{}
	var err error
	if opts.Filter, err = parseFilter(*filter); err != nil {
		return fail(err)
	}
	opts.Stretch = *stretch

	dst, err := Generate(*src, *outDir, opts)
	if err != nil {
		return fail(err)
	}
	logrus.Infof("%s -> %s", *src, dst)
	fmt.Fprintln(stdout, "favicon.ico created successfully!")
	return 0
}

func setupLogging(out io.Writer, verbose bool, logFile string) {
	if logFile != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	logrus.SetFormatter(&logFormatter{})
	logrus.SetOutput(out)
	logrus.SetReportCaller(true)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

type logFormatter struct{}

func (f *logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	buf := bytes.Buffer{}
	switch {
	case entry.Level <= logrus.ErrorLevel:
		buf.WriteString("ERR")
	case entry.Level == logrus.WarnLevel:
		buf.WriteString("WARN")
	case entry.Level == logrus.InfoLevel:
		buf.WriteString("INFO")
	default:
		buf.WriteString("DEBUG")
	}
	buf.WriteString("\t")
	buf.WriteString(entry.Time.UTC().Format("2006-01-02T15:04:05.000\t"))
	if entry.Caller == nil {
		buf.WriteString("internal")
	} else {
		buf.WriteString(filepath.Base(entry.Caller.File))
		buf.WriteString(":")
		buf.WriteString(strconv.Itoa(entry.Caller.Line))
	}
	buf.WriteString("\t")
	buf.WriteString(entry.Message)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
