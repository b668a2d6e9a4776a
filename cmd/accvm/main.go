// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ezrec/accvm/emulator"
	"github.com/ezrec/accvm/internal"
	"github.com/ezrec/accvm/memory"
	"github.com/ezrec/accvm/translate"
)

func main() {
	var program string
	var assemble bool
	var size int
	var save bool
	var output string
	var verbose bool
	var lang string

	flag.StringVar(&program, "f", "executable.g", "Program file, hex image unless -a")
	flag.BoolVar(&assemble, "a", false, "Program file is assembly source")
	flag.IntVar(&size, "n", memory.DEFAULT_SIZE, "Memory size in bytes")
	flag.BoolVar(&save, "s", false, "Write the memory image to output, do not execute")
	flag.StringVar(&output, "o", "-", "Output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Override the output language")
	delay := flag.Duration("d", emulator.DEFAULT_DELAY, "Delay between cycles")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if size <= 0 {
		log.Fatalf("%v: memory size %d", os.Args[0], size)
	}

	if len(lang) != 0 {
		err := translate.SetLanguage(lang)
		if err != nil {
			log.Fatal(err)
		}
	}

	var inf io.Reader = os.Stdin
	if program != "-" {
		file, err := os.Open(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		defer file.Close()
		inf = file
	}

	var ouf io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer file.Close()
		ouf = file
	}

	emu := emulator.NewEmulator(size)
	emu.Verbose = verbose
	emu.Delay = *delay

	if verbose {
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			log.Printf(".equ %v %v", key, value)
		}
	}

	var err error
	if assemble {
		err = emu.Assemble(inf)
	} else {
		err = emu.LoadImage(inf)
	}
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	if save {
		err = memory.WriteImage(ouf, emu.Ram.Bytes())
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("cpu:\n%v", emu.Cpu)
	}

	err = emu.Report(ouf)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
