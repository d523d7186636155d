package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"innertone/internal/bootstrap"
	activitydto "innertone/internal/modules/activity/dto"
	companiondto "innertone/internal/modules/companion/dto"
	"innertone/internal/platform/config"
	"innertone/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const healthTimeout = 3 * time.Second

type globalFlags struct {
	dataDir    string
	configPath string
	mute       bool
	volume     int
	backend    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "innertone",
		Short:         "Calm-down companion: breathing, meditation, ambient sound and journaling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.dataDir, "data-dir", ".", "directory holding settings, journal and practice log")
	pf.StringVar(&flags.configPath, "config", "", "settings file (default <data-dir>/innertone.yaml)")
	pf.BoolVar(&flags.mute, "mute", false, "render sound without opening the audio device")
	pf.IntVar(&flags.volume, "volume", 0, "master volume 0-100")
	pf.StringVar(&flags.backend, "backend", "", "companion backend: http|plugin")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newBreatheCmd(flags))
	root.AddCommand(newMeditateCmd(flags))
	root.AddCommand(newRelaxCmd(flags))
	root.AddCommand(newSoundCmd(flags))
	root.AddCommand(newGratitudeCmd(flags))
	root.AddCommand(newChatCmd(flags))
	root.AddCommand(newVoiceCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	return root
}

func loadConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg, err := config.New(flags.dataDir, flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	changed := cmd.Flags().Changed
	if changed("mute") {
		cfg.Mute = flags.mute
	}
	if changed("volume") {
		cfg.Volume = flags.volume
	}
	if changed("backend") {
		cfg.Backend = flags.backend
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadApp builds the application. The returned cleanup stops playback and
// closes the log file; it must run before the process exits.
func loadApp(cmd *cobra.Command, flags *globalFlags) (*bootstrap.App, func(), error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, nil, err
	}
	log, logFile, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, log)
	if err != nil {
		_ = logFile.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := app.Close(); err != nil {
			log.Error("shutdown failed", "error", err)
		}
		_ = logFile.Close()
	}
	return app, cleanup, nil
}

// signalContext is cancelled on ctrl-c so long-running commands can end an
// exercise cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			return bootstrap.RunTUI(app)
		},
	}
}

func newBreatheCmd(flags *globalFlags) *cobra.Command {
	var cycles int
	c := &cobra.Command{
		Use:   "breathe",
		Short: "Guide box breathing for a number of cycles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cycles <= 0 {
				return fmt.Errorf("cycles must be positive")
			}
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx, cancel := signalContext()
			defer cancel()

			out := cmd.OutOrStdout()
			events, stop := follow(app)
			defer stop()
			app.ActivityCLI.Breathe(ctx)
			for {
				select {
				case <-ctx.Done():
					view := app.ActivityCLI.StopBreathing(context.Background())
					_, _ = fmt.Fprintf(out, "\nstopped after %d cycles\n", view.Cycles)
					return nil
				case ev := <-events:
					if ev.Activity != "breathing" {
						continue
					}
					switch ev.Kind {
					case "phase":
						_, _ = fmt.Fprintln(out, ev.Message)
					case "cycle":
						_, _ = fmt.Fprintf(out, "cycle %d/%d\n", ev.Count, cycles)
						if ev.Count >= cycles {
							app.ActivityCLI.StopBreathing(context.Background())
							return nil
						}
					}
				}
			}
		},
	}
	c.Flags().IntVar(&cycles, "cycles", 4, "number of full cycles")
	return c
}

func newMeditateCmd(flags *globalFlags) *cobra.Command {
	var minutes int
	var quiet bool
	c := &cobra.Command{
		Use:   "meditate",
		Short: "Run a silent meditation countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx, cancel := signalContext()
			defer cancel()

			out := cmd.OutOrStdout()
			events, stop := follow(app)
			defer stop()
			view, err := app.ActivityCLI.Meditate(ctx, minutes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "meditating for %d minutes (%s)\n", minutes, view.Display)
			for {
				select {
				case <-ctx.Done():
					_, _ = fmt.Fprintln(out, "\nmeditation ended early")
					return nil
				case ev := <-events:
					if ev.Activity != "meditation" {
						continue
					}
					switch ev.Kind {
					case "tick":
						if !quiet {
							_, _ = fmt.Fprintf(out, "\r%s ", ev.Message)
						}
					case "completed":
						_, _ = fmt.Fprintf(out, "\n%s\n", ev.Message)
						return nil
					}
				}
			}
		},
	}
	c.Flags().IntVar(&minutes, "minutes", 5, "session length: 1|5|10|15|20")
	c.Flags().BoolVar(&quiet, "quiet", false, "do not print the countdown")
	return c
}

func newRelaxCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "relax",
		Short: "Walk through progressive muscle relaxation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx, cancel := signalContext()
			defer cancel()

			out := cmd.OutOrStdout()
			events, stop := follow(app)
			defer stop()
			view := app.ActivityCLI.Relax(ctx)
			_, _ = fmt.Fprintf(out, "%d. %s: %s\n", view.Highlighted+1, view.Title, view.Instruction)
			for {
				select {
				case <-ctx.Done():
					app.ActivityCLI.StopAll(context.Background())
					_, _ = fmt.Fprintln(out, "relaxation stopped")
					return nil
				case ev := <-events:
					if ev.Activity != "relaxation" {
						continue
					}
					switch ev.Kind {
					case "step":
						_, _ = fmt.Fprintf(out, "%d. %s\n", ev.Count+1, ev.Message)
					case "finishing":
						_, _ = fmt.Fprintln(out, ev.Message)
					case "completed", "stopped":
						return nil
					}
				}
			}
		},
	}
}

func newSoundCmd(flags *globalFlags) *cobra.Command {
	sound := &cobra.Command{Use: "sound", Short: "Ambient sound scenes"}

	sound.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available scenes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			for _, s := range app.AmbientCLI.Scenes(context.Background()) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", s.ID, s.Description)
			}
			return nil
		},
	})

	var duration time.Duration
	play := &cobra.Command{
		Use:   "play <scene>",
		Short: "Play a scene until interrupted or for --duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx, cancel := signalContext()
			defer cancel()
			if duration > 0 {
				var stopTimer context.CancelFunc
				ctx, stopTimer = context.WithTimeout(ctx, duration)
				defer stopTimer()
			}
			status, err := app.AmbientCLI.Play(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "playing %s at %d%% (%d nodes)\n", status.Active, status.Volume, status.ActiveNodes)
			<-ctx.Done()
			app.AmbientCLI.Stop(context.Background())
			return nil
		},
	}
	play.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 plays until ctrl-c)")
	sound.AddCommand(play)
	return sound
}

func newGratitudeCmd(flags *globalFlags) *cobra.Command {
	gratitude := &cobra.Command{Use: "gratitude", Short: "Gratitude journal"}

	gratitude.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Add an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.JournalCLI.Add(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved (%s)\n", out.Date)
			return nil
		},
	})

	gratitude.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the most recent entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			list, err := app.JournalCLI.List(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(list.Entries) == 0 {
				_, _ = fmt.Fprintln(w, "no entries")
				return nil
			}
			for _, e := range list.Entries {
				_, _ = fmt.Fprintf(w, "[%d] %s  %s\n", e.Index, e.Date, e.Text)
			}
			if list.Total > len(list.Entries) {
				_, _ = fmt.Fprintf(w, "(%d entries in total)\n", list.Total)
			}
			return nil
		},
	})

	gratitude.AddCommand(&cobra.Command{
		Use:   "delete <index>",
		Short: "Delete an entry by the index shown in list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.JournalCLI.Delete(context.Background(), idx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", out.Text)
			return nil
		},
	})
	return gratitude
}

func newChatCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Send one message to the companion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			out, err := app.CompanionCLI.Chat(context.Background(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, out.Reply)
			if !out.Fallback {
				_, _ = fmt.Fprintf(w, "mood: %s (%.2f)\n", out.Mood, out.Sentiment)
			}
			return nil
		},
	}
}

func newVoiceCmd(flags *globalFlags) *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:   "voice",
		Short: "Analyse a recorded clip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if file != "" {
				cfg.RecordingFile = file
			}
			log, logFile, err := logging.New(cfg.LogPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logFile.Close()
			app, err := bootstrap.New(cfg, log)
			if err != nil {
				return err
			}
			defer closeQuietly(app)
			res, err := app.CompanionCLI.Voice(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, res.Reply)
			if !res.Fallback {
				_, _ = fmt.Fprintf(w, "%s  energy %.2f  tempo %.0f\n", res.Mood, res.Energy, res.Tempo)
			}
			return nil
		},
	}
	c.Flags().StringVar(&file, "file", "", "audio clip to analyse (overrides recording_file)")
	return c
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recent practice sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			practices, err := app.ActivityCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(practices) == 0 {
				_, _ = fmt.Fprintln(w, "no practice recorded yet")
				return nil
			}
			for _, p := range practices {
				_, _ = fmt.Fprintf(w, "%s  %-10s %8s  %s\n", p.StartedAt.Format("2006-01-02 15:04"), p.Kind, p.Duration.Round(time.Second), practiceDetail(p))
			}
			return nil
		},
	}
	c.Flags().IntVar(&limit, "limit", 10, "number of sessions to show")
	return c
}

func practiceDetail(p activitydto.PracticeOutput) string {
	switch p.Kind {
	case "breathing":
		return fmt.Sprintf("%d cycles", p.Cycles)
	case "meditation":
		if p.Completed {
			return fmt.Sprintf("%d min, completed", p.Minutes)
		}
		return fmt.Sprintf("%d min, ended early", p.Minutes)
	default:
		if p.Completed {
			return "completed"
		}
		return "stopped"
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Settings"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprint(w, out)

			app, cleanup, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer cleanup()
			ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
			defer cancel()
			_, _ = fmt.Fprintln(w, backendLine(app.CompanionCLI.Health(ctx)))
			return nil
		},
	})
	return cfgCmd
}

// backendLine renders the result of a backend health check. An unreachable
// backend is reported, not returned as an error.
func backendLine(h companiondto.HealthOutput, err error) string {
	if err != nil {
		return fmt.Sprintf("backend: unavailable (%v)", err)
	}
	label := h.Name
	if h.Version != "" {
		label += " " + h.Version
	}
	return fmt.Sprintf("backend: %s (%s)", h.Status, label)
}

// follow subscribes to activity events. The channel is buffered and drops
// events rather than block the scheduler.
func follow(app *bootstrap.App) (<-chan activitydto.Event, func()) {
	events := make(chan activitydto.Event, 32)
	cancel := app.ActivityCLI.Subscribe(func(ev activitydto.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	return events, cancel
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		_, _ = fmt.Fprintln(os.Stderr, "shutdown:", err)
	}
}
