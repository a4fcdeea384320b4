// Command ampdump decodes a module and prints its header, sample table,
// pattern count, and order table to stdout (decode failures go to the
// diagnostic stream), exercising the Module Decoder in isolation from
// playback.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ampmod/ampmod"
	"github.com/ampmod/ampmod/internal/diag"
)

func main() {
	pflag.Parse()
	logger := diag.New()

	if pflag.NArg() == 0 {
		logger.Failure(fmt.Errorf("%w: no input file given", modplayer.ErrInputUnavailable))
		os.Exit(1)
	}

	data, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		logger.Failure(fmt.Errorf("%w: %v", modplayer.ErrInputUnavailable, err))
		os.Exit(1)
	}

	score, err := modplayer.Decode(data)
	if err != nil {
		logger.Failure(err)
		os.Exit(1)
	}

	fmt.Printf("title: %q  tag: %s\n", score.Title, score.Tag)
	fmt.Printf("song length: %d  restart: %d  patterns: %d\n",
		score.SongLength, score.RestartPos, len(score.Patterns))

	fmt.Println("samples:")
	for i, s := range score.Samples {
		if s.Length == 0 {
			continue
		}
		fmt.Printf("  %02d %-22q len=%-6d vol=%-3d finetune=%-3d loop=[%d,%d)\n",
			i+1, s.Name, s.Length, s.Volume, s.FineTune, s.LoopStart, s.LoopStart+s.LoopLen)
	}

	fmt.Println("order:")
	for i := 0; i < score.SongLength; i++ {
		fmt.Printf("%3d", score.Order[i])
		if (i+1)%16 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()
}
