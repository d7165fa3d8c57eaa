// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	b, err := fen.Decode(board.DefaultKeys, *position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()

		var nodes uint64
		if *divide && i == *depth {
			for _, e := range b.Divide(i) {
				fmt.Printf("%v: %v\n", e.Move, e.Nodes)
				nodes += e.Nodes
			}
		} else {
			nodes = b.Perft(i)
		}
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, duration.Microseconds())
	}
}
