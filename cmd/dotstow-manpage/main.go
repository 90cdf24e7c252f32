package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotstow/cmd/dotstow"
	"github.com/arthur-debert/dotstow/internal/version"
)

func main() {
	dir := flag.String("dir", "", "write one page per command into this directory")
	flag.Parse()

	rootCmd := dotstow.NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "DOTSTOW",
		Section: "1",
		Source:  "dotstow " + version.Version,
		Manual:  "dotstow manual",
	}

	var err error
	if *dir != "" {
		err = doc.GenManTree(rootCmd, header, *dir)
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
