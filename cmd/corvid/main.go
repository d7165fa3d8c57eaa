package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corvid-engine/corvid/pkg/engine"
	"github.com/corvid-engine/corvid/pkg/engine/console"
	"github.com/corvid-engine/corvid/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero disables it)")
	depth = flag.Uint("depth", 0, "Default search depth limit (zero for unlimited)")
	noise = flag.Uint("noise", 10, "Evaluation noise in centipawns (zero if deterministic)")
	nnue  = flag.String("nnue", "", "Path to an NNUE network file (empty for the classical evaluator)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

CORVID is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corvid", "corvid-engine", engine.WithOptions(engine.Options{
		Depth:     *depth,
		Hash:      *hash,
		Noise:     *noise,
		NNUE_Path: *nnue,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
