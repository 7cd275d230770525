// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/ezrec/datapath/bench"
	"github.com/ezrec/datapath/internal"
)

func main() {
	var script string
	var dot string
	var compat bool
	var trace bool
	var defines bool
	var verbose bool

	flag.StringVar(&script, "s", "-", ".star bench script to run")
	flag.StringVar(&dot, "m", "", "Write final bench state as a Graphviz .dot file")
	flag.BoolVar(&compat, "c", false, "Legacy simultaneous push/pop on the stack")
	flag.BoolVar(&trace, "t", false, "Print the edge trace")
	flag.BoolVar(&defines, "d", false, "List script defines, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	b := bench.NewBench()
	b.Verbose = verbose
	b.Stack.Compat = compat

	if defines {
		for key, value := range internal.SortedDefines(maps.Collect(b.Defines())) {
			fmt.Printf("%v = %#x\n", key, value)
		}
		return
	}

	var src []byte
	var err error
	if script == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(script)
	}
	if err != nil {
		log.Fatalf("%v: %v", script, err)
	}

	err = b.Run(script, src, os.Stdout)

	if trace {
		for _, edge := range b.Trace {
			fmt.Println(edge)
		}
	}

	if len(dot) != 0 {
		ouf, ferr := os.Create(dot)
		if ferr != nil {
			log.Fatalf("%v: %v", dot, ferr)
		}
		memviz.Map(ouf, b)
		ouf.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}
