package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	activityinadapter "innertone/internal/modules/activity/adapter/in"
	activityoutadapter "innertone/internal/modules/activity/adapter/out"
	activitydto "innertone/internal/modules/activity/dto"
	activityin "innertone/internal/modules/activity/port/in"
	activityservice "innertone/internal/modules/activity/service"
	activityusecase "innertone/internal/modules/activity/usecase"
	ambientinadapter "innertone/internal/modules/ambient/adapter/in"
	ambientoutadapter "innertone/internal/modules/ambient/adapter/out"
	ambientin "innertone/internal/modules/ambient/port/in"
	ambientout "innertone/internal/modules/ambient/port/out"
	ambientservice "innertone/internal/modules/ambient/service"
	ambientusecase "innertone/internal/modules/ambient/usecase"
	companioninadapter "innertone/internal/modules/companion/adapter/in"
	companionoutadapter "innertone/internal/modules/companion/adapter/out"
	companionin "innertone/internal/modules/companion/port/in"
	companionout "innertone/internal/modules/companion/port/out"
	companionservice "innertone/internal/modules/companion/service"
	companionusecase "innertone/internal/modules/companion/usecase"
	journalinadapter "innertone/internal/modules/journal/adapter/in"
	journaloutadapter "innertone/internal/modules/journal/adapter/out"
	journalin "innertone/internal/modules/journal/port/in"
	journalservice "innertone/internal/modules/journal/service"
	journalusecase "innertone/internal/modules/journal/usecase"
	"innertone/internal/platform/clock"
	"innertone/internal/platform/config"
	"innertone/internal/platform/id"
	"innertone/internal/platform/sched"
	uiapp "innertone/internal/ui/app"
)

const (
	backendTimeout = 30 * time.Second
	eventBuffer    = 32
)

type App struct {
	AmbientCLI   ambientinadapter.CLIHandler
	ActivityCLI  activityinadapter.CLIHandler
	JournalCLI   journalinadapter.CLIHandler
	CompanionCLI companioninadapter.CLIHandler

	cfg       config.Config
	log       hclog.Logger
	ambient   ambientin.Usecase
	activity  activityin.Usecase
	journal   journalin.Usecase
	companion companionin.Usecase
	closers   []io.Closer
	loop      *sched.Loop
}

// New wires every module against cfg. Callers must Close the App to stop
// the scheduler and release the audio device and database.
func New(cfg config.Config, log hclog.Logger) (*App, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	loop := sched.NewLoop()
	app := &App{cfg: cfg, log: log, loop: loop}

	graph := newGraph(cfg, app)
	engine := ambientservice.NewEngine(graph, ambientoutadapter.MathRandom{}, loop, log.Named("ambient"), cfg.Volume)
	app.ambient = ambientusecase.NewInteractor(engine, loop)

	practiceLog := activityoutadapter.NewVaultPracticeLog(cfg.PracticeDir)
	activitySvc := activityservice.NewActivityService(loop, clk, ids, practiceLog, log.Named("activity"))
	app.activity = activityusecase.NewInteractor(activitySvc, loop)

	entryStore, err := journaloutadapter.NewSQLiteEntryStore(cfg.DBPath)
	if err != nil {
		loop.Close()
		return nil, fmt.Errorf("new journal store: %w", err)
	}
	app.closers = append(app.closers, entryStore)
	app.journal = journalusecase.NewInteractor(journalservice.NewJournalService(clk, entryStore, log.Named("journal")))

	relay := companionservice.NewRelay(newBackend(cfg, log), companionoutadapter.NewFileRecorder(cfg.RecordingFile), log.Named("companion"))
	app.companion = companionusecase.NewInteractor(relay)

	app.AmbientCLI = ambientinadapter.NewCLIHandler(app.ambient)
	app.ActivityCLI = activityinadapter.NewCLIHandler(app.activity)
	app.JournalCLI = journalinadapter.NewCLIHandler(app.journal)
	app.CompanionCLI = companioninadapter.NewCLIHandler(app.companion)
	return app, nil
}

func newGraph(cfg config.Config, app *App) ambientout.AudioGraph {
	if cfg.Mute {
		return ambientoutadapter.NewSilentGraph(cfg.SampleRate)
	}
	graph := ambientoutadapter.NewOtoGraph(cfg.SampleRate)
	app.closers = append(app.closers, graph)
	return graph
}

func newBackend(cfg config.Config, log hclog.Logger) companionout.Backend {
	if cfg.Backend == config.BackendPlugin {
		return companionoutadapter.NewPluginBackend(cfg.AnalyzerPlugin, log.Named("plugin"))
	}
	return companionoutadapter.NewHTTPBackend(cfg.APIBase, &http.Client{Timeout: backendTimeout})
}

// Close stops any playing scene and running exercise, then releases
// resources in reverse order of acquisition.
func (a *App) Close() error {
	a.AmbientCLI.Stop(context.Background())
	a.activity.StopAll(context.Background())
	a.activity.ResetMeditation(context.Background())
	_ = a.companion.Reset(context.Background())
	a.loop.Close()
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	events := make(chan activitydto.Event, eventBuffer)
	cancel := app.activity.Subscribe(func(ev activitydto.Event) {
		select {
		case events <- ev:
		default:
			app.log.Debug("dropped activity event", "activity", ev.Activity, "kind", ev.Kind)
		}
	})
	defer cancel()

	model := uiapp.NewModel(app.cfg.Brand, app.activity, app.ambient, app.journal, app.companion, events)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
