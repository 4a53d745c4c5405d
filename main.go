package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"smrload/populate"
	"smrload/prepare"
)

type CmdArgs struct {
	Prepare  *prepare.Config  `arg:"subcommand" help:"Combine SMR credible interval results into a registration CSV"`
	Populate *populate.Config `arg:"subcommand" help:"Populate the ROCKPROPS template with SMR data"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// The following env variables are needed:
	// 1. Populate with '--staging'
	//   - "SMR_STAGING_CONN_STRING"
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println(err)
		return
	}

	args := CmdArgs{}
	parser := arg.MustParse(&args)

	switch {
	case args.Prepare != nil:
		args.Prepare.Execute()
	case args.Populate != nil:
		args.Populate.Execute()
	default:
		fmt.Println("Error: passing a subcommand is required.")
		fmt.Println()
		parser.WriteHelp(os.Stdout)
	}
}
