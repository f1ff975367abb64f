package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/core"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/gesture"
	"github.com/touchctl/touchctl/key"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/loop"
	"github.com/touchctl/touchctl/player"
	"github.com/touchctl/touchctl/tui"
	"github.com/touchctl/touchctl/util"
	"github.com/touchctl/touchctl/where"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("input", "i", "", "Read touch events from this file instead of stdin")
	playCmd.Flags().StringP("socket", "s", "", "Attach to an mpv already listening on this IPC socket instead of starting one")
	playCmd.Flags().StringP("title", "t", "", "Window and media title")
	playCmd.Flags().StringSlice("mpv-args", []string{}, "Extra arguments passed to mpv")
	playCmd.Flags().BoolP("tui", "T", false, "Show the live state view")
	playCmd.Flags().BoolP("record", "r", false, "Save the touch stream to the recordings directory")

	playCmd.Flags().Int("width", 0, "Width of the touch surface in pixels")
	playCmd.Flags().Int("height", 0, "Height of the touch surface in pixels")
	lo.Must0(viper.BindPFlag(key.ViewportWidth, playCmd.Flags().Lookup("width")))
	lo.Must0(viper.BindPFlag(key.ViewportHeight, playCmd.Flags().Lookup("height")))

	playCmd.MarkFlagsMutuallyExclusive("socket", "mpv-args")
}

// playCmd drives mpv with touch events.
var playCmd = &cobra.Command{
	Use:   "play [file|url]",
	Short: "Play media in mpv and control it with touch events",
	Long: `Play media in mpv and control it with touch events read from stdin or --input,
one JSON object per line. See "touchctl schema" for the event format.`,
	Example: `  touchctl play movie.mkv < touches.jsonl
  touchctl play --tui --record https://example.com/stream.m3u8 --input /dev/touch-bridge
  touchctl play --socket /tmp/mpvsocket`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !cmd.Flags().Changed("socket") {
			return errors.New("a media target or --socket is required")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		engine := connectEngine(cmd, args)
		defer util.Ignore(engine.Close)

		input, closeInput := openInput(cmd)
		defer closeInput()

		opts := core.LoadOptions()
		l := loop.New(256)

		loopCtx, stopLoop := context.WithCancel(context.Background())
		defer stopLoop()
		go func() {
			_ = l.Run(loopCtx)
		}()

		c := onLoop(l, func() *core.Core {
			return core.New(engine, l, nil, opts)
		})
		engine.OnChange(c.Notify)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		inputDone := make(chan error, 1)
		go func() {
			inputDone <- feed(ctx, gesture.NewDecoder(input), l, c)
		}()

		if lo.Must(cmd.Flags().GetBool("tui")) {
			go func() {
				select {
				case <-engine.Wait():
					cancel()
				case <-ctx.Done():
				}
			}()

			err := tui.Run(ctx, &tui.Options{
				Core:      c,
				Scheduler: l,
				MaxVolume: opts.Control.MaxVolume,
				BoostCap:  opts.Control.BoostCap,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error(err)
				printWarn("state view: %s", err)
			}
		} else {
			select {
			case <-engine.Wait():
			case <-ctx.Done():
			case err := <-inputDone:
				if err != nil {
					printWarn("touch input: %s", err)
				}
				// mpv keeps playing without touch input until it is closed.
				select {
				case <-engine.Wait():
				case <-ctx.Done():
				}
			}
		}

		onLoop(l, func() struct{} {
			c.Close()
			return struct{}{}
		})
	},
}

func connectEngine(cmd *cobra.Command, args []string) player.Engine {
	if socket := lo.Must(cmd.Flags().GetString("socket")); socket != "" {
		mpv, err := player.Connect(socket)
		handleErr(err)
		return mpv
	}

	opts := player.LoadOptions()
	checkDependencies(opts.Binary)

	opts.Title = lo.Must(cmd.Flags().GetString("title"))
	opts.Args = lo.Must(cmd.Flags().GetStringSlice("mpv-args"))

	mpv := player.NewMPV(opts)
	handleErr(mpv.Play(args[0]))
	return mpv
}

// openInput returns the touch stream, teed into a new recording when --record is set.
func openInput(cmd *cobra.Command) (io.Reader, func()) {
	var (
		in      io.Reader = os.Stdin
		closers []func() error
	)

	if path := lo.Must(cmd.Flags().GetString("input")); path != "" {
		f, err := filesystem.API().Open(path)
		handleErr(err)
		in = f
		closers = append(closers, f.Close)
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		printWarn("reading touch events from the terminal, one JSON object per line")
	}

	if lo.Must(cmd.Flags().GetBool("record")) {
		path := filepath.Join(where.Recordings(), time.Now().Format("2006-01-02_15-04-05")+".jsonl")
		f, err := filesystem.API().Create(path)
		handleErr(err)
		in = io.TeeReader(in, f)
		closers = append(closers, f.Close)
		printSuccess("recording touches to %s", path)
	}

	return in, func() {
		for _, c := range closers {
			util.Ignore(c)
		}
	}
}

// feed posts decoded events to the loop until the stream ends.
func feed(ctx context.Context, d *gesture.Decoder, l *loop.Loop, c *core.Core) error {
	for {
		ev, err := d.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read touch event: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		log.Debugf("touch %s", ev)
		l.Post(func() {
			c.Handle(ev)
		})
	}
}

// onLoop runs fn on the loop and waits for its result.
func onLoop[T any](l *loop.Loop, fn func() T) T {
	result := make(chan T, 1)
	l.Post(func() {
		result <- fn()
	})
	return <-result
}
