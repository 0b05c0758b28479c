package update

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/schrosk/internal/config"
	"github.com/sandeepkv93/schrosk/internal/controller"
	"github.com/sandeepkv93/schrosk/internal/model"
	"github.com/sandeepkv93/schrosk/internal/scheduler"
	"github.com/sandeepkv93/schrosk/internal/storage"
	"github.com/sandeepkv93/schrosk/internal/views"
)

const (
	sliderWidth  = 20
	waveWidth    = 54
	waveHeight   = 7
	sphereWidth  = 26
	sphereHeight = 11
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add       string
	Collapse  string
	Reset     string
	Animation string
	Palette   string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type AnimationState struct {
	WaveT       float64
	SphereTheta float64
	gen         int
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Options configures a Model. Zero durations fall back to config.Default.
type Options struct {
	Scheduler         *scheduler.Engine
	CollapseDelay     time.Duration
	Animations        bool
	AnimationInterval time.Duration
	Random            model.RandomSource
	Now               func() time.Time
}

type Model struct {
	Loaded        bool
	Cursor        int
	Rows          map[string]*model.CollapseRow
	Capturing     bool
	Palette       CommandPaletteState
	HelpVisible   bool
	Animations    bool
	Anim          AnimationState
	Scheduler     *scheduler.Engine
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctrl          *controller.Controller
	collapseDelay time.Duration
	animInterval  time.Duration
	random        model.RandomSource
	now           func() time.Time
	spinning      bool

	addInput     textinput.Model
	commandInput textinput.Model
	slider       progress.Model
	spinner      spinner.Model
	helpModel    help.Model
	manual       viewport.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// StateLoadedMsg reports that the controller finished its one-time load.
type StateLoadedMsg struct {
	Result storage.LoadResult
}

type AddTaskMsg struct {
	Text string
}

// CollapseDueMsg fires when a row's collapse delay has elapsed.
type CollapseDueMsg struct {
	TaskID        string
	fromScheduler bool
}

type AnimationTickMsg struct {
	At  time.Time
	gen int
}

func NewModel(ctrl *controller.Controller, opts Options) Model {
	defaults := config.Default()
	if opts.CollapseDelay <= 0 {
		opts.CollapseDelay = defaults.CollapseDelay
	}
	if opts.AnimationInterval <= 0 {
		opts.AnimationInterval = defaults.AnimationInterval()
	}
	if opts.Random == nil {
		opts.Random = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5c4705c))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if ctrl == nil {
		ctrl = controller.New(controller.Options{})
	}

	m := Model{
		Rows:          make(map[string]*model.CollapseRow),
		Animations:    opts.Animations,
		Scheduler:     opts.Scheduler,
		ctrl:          ctrl,
		collapseDelay: opts.CollapseDelay,
		animInterval:  opts.AnimationInterval,
		random:        opts.Random,
		now:           opts.Now,
		Keys: GlobalKeyMap{
			Add:       "i",
			Collapse:  "c",
			Reset:     "r",
			Animation: "v",
			Palette:   "/",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func NewModelWithConfig(ctrl *controller.Controller, engine *scheduler.Engine, cfg config.Config) Model {
	return NewModel(ctrl, Options{
		Scheduler:         engine,
		CollapseDelay:     cfg.CollapseDelay,
		Animations:        cfg.Animations,
		AnimationInterval: cfg.AnimationInterval(),
	})
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "ψ> "
	m.addInput.Placeholder = "Enter quantum state task..."
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.slider = progress.New(
		progress.WithSolidFill("#00F3FF"),
		progress.WithoutPercentage(),
		progress.WithWidth(sliderWidth),
	)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.manual = viewport.New(54, 14)
	m.manual.SetContent(views.RenderMarkdown(views.ManualMarkdown))
}
