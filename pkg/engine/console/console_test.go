package console_test

import (
	"context"
	"strings"
	"testing"

	"github.com/corvid-engine/corvid/pkg/engine"
	"github.com/corvid-engine/corvid/pkg/engine/console"
	"github.com/stretchr/testify/assert"
)

func TestGreetingAndInitialBoard(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	in := make(chan string, 10)

	d, out := console.NewDriver(ctx, e, in)
	defer d.Close()

	greeting := <-out
	assert.True(t, strings.HasPrefix(greeting, "engine corvid-test"))

	fen := readUntilPrefix(t, out, "fen: ")
	assert.Contains(t, fen, "rnbqkbnr")
}

func TestMoveByBareNotationUpdatesBoard(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	in := make(chan string, 10)

	d, out := console.NewDriver(ctx, e, in)
	defer d.Close()

	readUntilPrefix(t, out, "fen: ")

	in <- "e2e4"
	fen := readUntilPrefix(t, out, "fen: ")

	assert.Contains(t, fen, "4P3")
}

func TestInvalidMoveReportsError(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	in := make(chan string, 10)

	d, out := console.NewDriver(ctx, e, in)
	defer d.Close()

	readUntilPrefix(t, out, "fen: ")

	in <- "e2e5"
	assert.Equal(t, "invalid move: 'e2e5'", readUntilPrefix(t, out, "invalid move"))
}

func TestAnalyzeProducesBestmove(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	in := make(chan string, 10)

	d, out := console.NewDriver(ctx, e, in)
	defer d.Close()

	readUntilPrefix(t, out, "fen: ")

	in <- "analyze 1"
	bestmove := readUntilPrefix(t, out, "bestmove")
	assert.True(t, strings.HasPrefix(bestmove, "bestmove "))
}

func TestQuitClosesDriver(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	in := make(chan string, 10)

	d, out := console.NewDriver(ctx, e, in)

	readUntilPrefix(t, out, "fen: ")

	in <- "quit"
	<-d.Closed()
}

func readUntilPrefix(t *testing.T, out <-chan string, prefix string) string {
	t.Helper()
	for i := 0; i < 1000; i++ {
		line, ok := <-out
		if !ok {
			t.Fatalf("output channel closed before %q line", prefix)
		}
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("did not see a %q line", prefix)
	return ""
}
