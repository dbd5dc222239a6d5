package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bsm/hashrange"
	log "github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "", "path of a YAML config file")
	dbPath     = flag.String("path", "", "directory path of the table")
	backend    = flag.String("backend", "", "store backend (goleveldb, memory)")
	logLevel   = flag.String("loglevel", "", "the level of log")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <put|get|del|scan> hash [range] [value|to]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  put  hash [range] value")
		fmt.Fprintln(flag.CommandLine.Output(), "  get  hash [range]")
		fmt.Fprintln(flag.CommandLine.Output(), "  del  hash [range]")
		fmt.Fprintln(flag.CommandLine.Output(), "  scan hash [from to]")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	conf := hashrange.NewDefaultConfig()
	if *configPath != "" {
		if err := conf.LoadFromFile(*configPath); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if *dbPath != "" {
		conf.Path = *dbPath
	}
	if *backend != "" {
		conf.Backend = *backend
	}
	if *logLevel != "" {
		conf.LogLevel = *logLevel
	}
	if err := conf.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	level, _ := log.ParseLevel(conf.LogLevel)
	log.SetLevel(level)

	if err := checkArgs(flag.Args()); err != nil {
		flag.Usage()
		os.Exit(2)
	}

	tbl, err := hashrange.Open[string, string, string](conf.Path, hashrange.String{}, hashrange.String{}, hashrange.String{}, conf.Options())
	if err != nil {
		log.Fatalf("%v", err)
	}

	err = run(tbl, os.Stdout, flag.Args())
	if cerr := tbl.Close(); err == nil {
		err = cerr
	}
	if err == errUsage {
		flag.Usage()
		os.Exit(2)
	} else if err != nil {
		log.Fatalf("%v", err)
	}
}
