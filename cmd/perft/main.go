package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/slices"

	gm "chess-zobrist/goosemg"
	"chess-zobrist/perft"
	"chess-zobrist/tt"
	"chess-zobrist/zobrist"
)

func main() {
	fen := flag.String("fen", gm.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	ttMB := flag.Int("ttmb", 0, "Subtree cache size in MB (0 disables)")
	seed := flag.Int64("seed", zobrist.DefaultSeed, "Key table seed")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := gm.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	var cache *tt.Table[uint64]
	if *ttMB > 0 {
		cache = tt.New[uint64](*ttMB)
	}
	counter := perft.New(zobrist.NewKeys(*seed), cache)

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	start := time.Now()
	var nodes uint64
	if *divide {
		div := counter.Divide(board, *depth)
		moves := make([]gm.Move, 0, len(div))
		for m := range div {
			moves = append(moves, m)
		}
		// Sort moves for stable output
		slices.SortFunc(moves, func(a, b gm.Move) int {
			switch as, bs := a.String(), b.String(); {
			case as < bs:
				return -1
			case as > bs:
				return 1
			}
			return 0
		})
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			nodes += div[m]
		}
		fmt.Printf("Total: %d\n", nodes)
	} else {
		nodes = counter.Count(board, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("%d \t\t%d \t\t%s \t%.0f nps \t%d cache hits\n", *depth, nodes, elapsed, float64(nodes)/elapsed.Seconds(), counter.Hits)
	if n := len(counter.Mismatches); n > 0 {
		for _, m := range counter.Mismatches {
			fmt.Fprintln(os.Stderr, m)
		}
		fmt.Fprintf(os.Stderr, "%d fingerprint mismatches\n", n)
		os.Exit(1)
	}
}
