package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	level := logLevel(slog.LevelWarn)
	flag.Var(&level, "debug", "log level (warn, info, debug)")
	flag.Usage = usage
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{Level: level.slog()},
	))
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Stdout, logger, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: torrent [-debug level] <command> <args>

commands:
  decode <bencoded>       decode a value given on the command line, print JSON
  print <file>            print the value tree of a file
  get <file> <key>...     print the value at a dictionary path
  info <file>             summarize a metafile
  reencode <in> <out>     decode a file and write its encoding back out
  peerid <seed>           derive a peer ID from a seed
`)
	flag.PrintDefaults()
}

type logLevel slog.Level

func (l *logLevel) slog() slog.Level {
	if l == nil {
		return slog.LevelWarn
	}
	return slog.Level(*l)
}

func (l *logLevel) String() string {
	return l.slog().String()
}

func (l *logLevel) Set(s string) error {
	switch s {
	case "debug":
		*l = logLevel(slog.LevelDebug)
	case "info":
		*l = logLevel(slog.LevelInfo)
	case "warning", "warn":
		*l = logLevel(slog.LevelWarn)
	default:
		return fmt.Errorf("invalid log level: %s", s)
	}
	return nil
}
