// Command ampplay plays a four-channel Amiga-style tracker module, either to
// the default audio device or as a raw float32 stream to stdout.
package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/gordonklaus/portaudio"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/ampmod/ampmod"
	"github.com/ampmod/ampmod/internal/diag"
)

var (
	flagPAL   = pflag.Bool("pal", false, "use the PAL Amiga clock instead of NTSC")
	flagSink  = pflag.String("sink", "auto", "output sink: realtime, serial, or auto")
	flagStart = pflag.Int("start", 0, "starting order position; an out-of-range value starts at 0")
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

	start := *flagStart
	if start < 0 || start >= score.SongLength {
		start = 0
	}

	sinkMode := resolveSinkMode(*flagSink)
	sink := modplayer.NewSink()
	transport := modplayer.NewTransport(score, *flagPAL, sink, logger.Position)
	transport.SeekTo(start)
	// A module built to loop via a backward position jump would otherwise
	// never let a piped serial stream end.
	transport.SetSerialMode(sinkMode == "serial")

	logger.Notef(score.Title, "sink", sinkMode, "pal", *flagPAL)

	done := make(chan error, 1)
	go func() { done <- transport.Run() }()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT)

	switch sinkMode {
	case "serial":
		runSerial(sink, sigch)
	default:
		runRealtime(sink, sigch, logger)
	}

	if err := <-done; err != nil && err != modplayer.ErrSinkClosed {
		logger.Failure(err)
		os.Exit(1)
	}
}

func resolveSinkMode(flag string) string {
	switch flag {
	case "realtime", "serial":
		return flag
	default:
		if isatty.IsTerminal(os.Stdout.Fd()) {
			return "realtime"
		}
		return "serial"
	}
}

// runSerial drains the sink and writes raw native-order float32 frames to
// stdout until the sink closes: no container, no header, just samples —
// suitable for piping straight into another audio tool.
func runSerial(sink *modplayer.Sink, sigch chan os.Signal) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	go func() {
		<-sigch
		sink.Close()
	}()

	for {
		f, ok := sink.Dequeue()
		if !ok {
			return
		}
		binary.Write(w, binary.NativeEndian, f.Sample)
	}
}

// runRealtime opens the default audio device and plays the sink through a
// non-blocking callback, with a colorized status line and keyboard quit
// handling, grounded on the teacher's interactive CLI.
func runRealtime(sink *modplayer.Sink, sigch chan os.Signal, logger *diag.Logger) {
	if err := portaudio.Initialize(); err != nil {
		logger.Failure(err)
		return
	}
	defer portaudio.Terminate()

	cb := func(out []float32) {
		for i := range out {
			f, ok := sink.TryDequeue()
			if !ok {
				out[i] = 0
				continue
			}
			out[i] = f.Sample
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(modplayer.OutputHz), portaudio.FramesPerBufferUnspecified, cb)
	if err != nil {
		logger.Failure(err)
		return
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		logger.Failure(err)
		return
	}
	defer stream.Stop()

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Println(cyan("playing — press q or ctrl-c to stop"))

	quit := make(chan struct{})
	go func() {
		keyboard.Listen(func(key keys.Key) (bool, error) {
			if key.Code == keys.CtrlC || key.Code == keys.Escape {
				return true, nil
			}
			if key.Code == keys.RuneKey && key.String() == "q" {
				return true, nil
			}
			return false, nil
		})
		close(quit)
	}()

	select {
	case <-sigch:
	case <-quit:
	}
	sink.Close()
}
