package main

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/mattrb/ssc32u/pkg/config"
	"github.com/mattrb/ssc32u/pkg/controller"
	"github.com/mattrb/ssc32u/pkg/joint"
	"github.com/mattrb/ssc32u/pkg/sscbus"
)

type MonitorCommand struct {
	Config string  `long:"config" short:"c" default:"sscjoints.toml" description:"Path to the joint configuration file"`
	Hz     float64 `long:"hz" default:"10" description:"Joint state publication rate"`
	Step   float64 `long:"step" default:"0.1" description:"Angle change per keypress, radians"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Distinct colors assigned to joints in registry order
var palette = []string{"196", "208", "226", "46", "51", "201", "99", "45"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

type monitorModel struct {
	ctrl     *controller.Controller
	joints   []joint.Joint
	targets  map[string]float64
	selected int
	step     float64
	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	logCh    chan string
	quitting bool
}

// chanWriter feeds log lines into the TUI's log box.
type chanWriter struct {
	ch chan string
}

func (w chanWriter) Write(p []byte) (int, error) {
	select {
	case w.ch <- strings.TrimRight(string(p), "\n"):
	default:
		// Drop if channel full
	}
	return len(p), nil
}

type stateMsg sscbus.State
type logMsg string

func waitForState(ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ch chan string) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ch)
	}
}

func (m *monitorModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *monitorModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *monitorModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialMonitorModel(ctrl *controller.Controller, step float64, logCh chan string) monitorModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-math.Pi, math.Pi),
	)

	joints := ctrl.Registry().Joints()
	targets := make(map[string]float64, len(joints))
	for i, j := range joints {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColor(i)))
		chart.SetDataSetStyles(j.Name, runes.ThinLineStyle, style)
		targets[j.Name] = clampAngle(j.DefaultAngle, j)
	}

	return monitorModel{
		ctrl:    ctrl,
		joints:  joints,
		targets: targets,
		step:    step,
		chart:   &chart,
		logCh:   logCh,
	}
}

func jointColor(i int) string {
	return palette[i%len(palette)]
}

func clampAngle(angle float64, j joint.Joint) float64 {
	if angle < j.MinAngle {
		return j.MinAngle
	}
	if angle > j.MaxAngle {
		return j.MaxAngle
	}
	return angle
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.logCh),
	)
}

// nudge moves the selected joint's target by delta and sends it through the
// normal translation path.
func (m *monitorModel) nudge(delta float64) {
	if len(m.joints) == 0 {
		return
	}
	j := m.joints[m.selected]
	target := clampAngle(m.targets[j.Name]+delta, j)
	m.targets[j.Name] = target

	err := m.ctrl.HandleTrajectory(context.Background(), joint.Trajectory{
		JointNames: []string{j.Name},
		Points:     []joint.Point{{Positions: []float64{target}}},
	})
	if err != nil {
		m.addLog(fmt.Sprintf("command failed: %v", err))
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "tab", "right":
			if len(m.joints) > 0 {
				m.selected = (m.selected + 1) % len(m.joints)
			}
		case "shift+tab", "left":
			if len(m.joints) > 0 {
				m.selected = (m.selected + len(m.joints) - 1) % len(m.joints)
			}
		case "up", "+", "=":
			m.nudge(m.step)
		case "down", "-", "_":
			m.nudge(-m.step)
		case "r":
			if err := m.ctrl.RelaxJoints(context.Background()); err != nil {
				m.addLog(fmt.Sprintf("relax failed: %v", err))
			} else {
				m.addLog("all joints relaxed")
			}
		case "i":
			if err := m.ctrl.Initialize(context.Background()); err != nil {
				m.addLog(fmt.Sprintf("initialize failed: %v", err))
			}
		}
		return m, nil

	case stateMsg:
		for i, name := range msg.Names {
			m.chart.PushDataSet(name, msg.Angles[i])
		}
		m.chart.DrawAll()
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.logCh)
	}

	return m, nil
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Monitor stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("SSC-32U Joint Monitor"))
	sb.WriteString(fmt.Sprintf(" - %g Hz", m.ctrl.Rate()))
	sb.WriteString(statusStyle.Render("  tab: select  ↑/↓: move  r: relax  i: init  q: quit"))
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(m.renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("No messages")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m monitorModel) renderLegend() string {
	var items []string
	for i, j := range m.joints {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColor(i))).Bold(true)
		label := fmt.Sprintf("%s %.2f", j.Name, m.targets[j.Name])
		if i == m.selected {
			label = selectedStyle.Render(label)
		}
		items = append(items, colorStyle.Render("━━")+" "+label)
	}
	if len(items) == 0 {
		return statusStyle.Render("no joints configured")
	}
	return strings.Join(items, "  ")
}

func (c *MonitorCommand) Execute(args []string) error {
	cfg, err := config.LoadFrom(c.Config)
	if err != nil {
		return err
	}

	bus := sscbus.NewLoopback()
	logCh := make(chan string, 10)
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        chanWriter{ch: logCh},
		NoColor:    true,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()

	ctrl, err := controller.New(controller.Config{
		Registry:           cfg.Registry(),
		Bus:                controller.Bus{Commands: bus, Discrete: bus, States: bus, Query: bus},
		PublishJointStates: true,
		PublishRate:        c.Hz,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ctrl.Run(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("controller stopped")
		}
	}()

	p := tea.NewProgram(initialMonitorModel(ctrl, c.Step, logCh), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run monitor: %w", err)
	}
	return nil
}
