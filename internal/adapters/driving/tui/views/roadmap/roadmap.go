// Package roadmap provides the learning roadmap view.
package roadmap

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/components/input"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/keymap"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/messages"
	"github.com/postchat-labs/postchat-cli/internal/adapters/driving/tui/styles"
	"github.com/postchat-labs/postchat-cli/internal/core/domain"
	"github.com/postchat-labs/postchat-cli/internal/core/ports/driving"
)

// View represents the roadmap view: generate a learning plan from a
// goal and track stage completion.
type View struct {
	styles *styles.Styles
	keymap keymap.KeyMap
	goal   *input.TextField

	roadmaps driving.RoadmapService
	ctx      context.Context

	roadmap   *domain.Roadmap
	completed map[string]bool

	selected   int
	width      int
	height     int
	loaded     bool
	busy       bool
	focusInput bool
	err        error
}

// NewView creates a new roadmap view.
func NewView(s *styles.Styles, km keymap.KeyMap, roadmaps driving.RoadmapService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:    s,
		keymap:    km,
		goal:      input.NewTextField("Goal", "e.g. become a backend engineer", s),
		roadmaps:  roadmaps,
		ctx:       context.Background(),
		completed: map[string]bool{},
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init triggers the roadmap load.
func (v *View) Init() tea.Cmd {
	return v.loadRoadmap()
}

// Update handles messages for the roadmap view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RoadmapLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.loaded = true
		v.roadmap = msg.Roadmap
		if msg.Completed != nil {
			v.completed = msg.Completed
		}
		if v.roadmap == nil {
			v.focusInput = true
			return v, v.goal.Focus()
		}
		return v, nil

	case messages.RoadmapGenerated:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.roadmap = msg.Roadmap
		v.completed = map[string]bool{}
		v.selected = 0
		v.focusInput = false
		v.goal.Blur()
		return v, nil

	case messages.StageToggled:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.completed = msg.Completed
		return v, nil
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.goal, cmd = v.goal.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.busy {
		return v, nil
	}

	if v.focusInput {
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.generate()
		case tea.KeyEsc:
			if v.roadmap != nil {
				v.focusInput = false
				v.goal.Blur()
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewChat}
			}
		default:
			var cmd tea.Cmd
			v.goal, cmd = v.goal.Update(msg)
			return v, cmd
		}
	}

	key := msg.String()
	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}
	case keymap.Matches(key, v.keymap.Up):
		v.moveSelection(-1)
	case keymap.Matches(key, v.keymap.Down):
		v.moveSelection(1)
	case keymap.Matches(key, v.keymap.Toggle) || msg.Type == tea.KeyEnter:
		return v, v.toggleStage()
	case key == "g":
		v.focusInput = true
		v.goal.Reset()
		return v, v.goal.Focus()
	}
	return v, nil
}

func (v *View) moveSelection(step int) {
	if v.roadmap == nil || len(v.roadmap.Stages) == 0 {
		return
	}
	v.selected += step
	if v.selected < 0 {
		v.selected = 0
	}
	if v.selected >= len(v.roadmap.Stages) {
		v.selected = len(v.roadmap.Stages) - 1
	}
}

// loadRoadmap fetches the saved plan.
func (v *View) loadRoadmap() tea.Cmd {
	return func() tea.Msg {
		roadmap, completed, err := v.roadmaps.Current(v.ctx)
		return messages.RoadmapLoaded{Roadmap: roadmap, Completed: completed, Err: err}
	}
}

// generate builds a new plan, replacing the saved one.
func (v *View) generate() tea.Cmd {
	goal := strings.TrimSpace(v.goal.Value())
	if goal == "" {
		v.err = domain.ErrInvalidInput
		return nil
	}

	v.busy = true
	v.err = nil

	return func() tea.Msg {
		roadmap, err := v.roadmaps.Generate(v.ctx, goal)
		return messages.RoadmapGenerated{Roadmap: roadmap, Err: err}
	}
}

// toggleStage flips the selected stage's completion.
func (v *View) toggleStage() tea.Cmd {
	if v.roadmap == nil || v.selected >= len(v.roadmap.Stages) {
		return nil
	}
	stageID := v.roadmap.Stages[v.selected].ID
	return func() tea.Msg {
		completed, err := v.roadmaps.ToggleStage(v.ctx, stageID)
		return messages.StageToggled{Completed: completed, Err: err}
	}
}

// View renders the roadmap view.
func (v *View) View() string {
	sections := make([]string, 0, 24)

	sections = append(sections, v.styles.Title.Render("Roadmap"), "")

	if v.focusInput || v.roadmap == nil {
		sections = append(sections, v.goal.View(), "")
	}

	if v.busy {
		sections = append(sections, v.styles.Muted.Render("Generating roadmap..."), "")
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.roadmap != nil {
		done, total := v.roadmap.Progress(v.completed)
		sections = append(sections,
			v.styles.Subtitle.Render(v.roadmap.Goal),
			v.styles.Muted.Render(fmt.Sprintf("%d/%d stages complete", done, total)),
			"")
		sections = append(sections, v.renderStages()...)
	} else if v.loaded && !v.busy {
		sections = append(sections,
			v.styles.Muted.Render("No roadmap yet. Type a goal and press enter."), "")
	}

	sections = append(sections, "",
		v.styles.Help.Render("space toggle stage · g new goal · esc back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderStages() []string {
	lines := make([]string, 0, len(v.roadmap.Stages)*3)
	for i, stage := range v.roadmap.Stages {
		mark := "[ ]"
		if v.completed[stage.ID] {
			mark = "[x]"
		}
		header := fmt.Sprintf("%s %d. %s", mark, i+1, stage.Title)
		switch {
		case i == v.selected:
			lines = append(lines, v.styles.Selected.Render(header))
		case v.completed[stage.ID]:
			lines = append(lines, v.styles.Success.Render(header))
		default:
			lines = append(lines, v.styles.Normal.Render(header))
		}

		if i == v.selected {
			if stage.Description != "" {
				lines = append(lines, v.styles.Muted.Width(v.width-6).Render("    "+stage.Description))
			}
			if len(stage.Skills) > 0 {
				lines = append(lines, v.styles.Muted.Render("    Skills: "+strings.Join(stage.Skills, ", ")))
			}
			for _, course := range stage.Courses {
				lines = append(lines, v.styles.Muted.Render("    ↳ "+course.Title))
			}
			for _, post := range stage.Posts {
				label := post.Author
				if label == "" {
					label = post.PostID
				}
				lines = append(lines, v.styles.Muted.Render("    ↳ saved post by "+label))
			}
		}
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.goal.SetWidth(min(width-6, 64))
}

// SetStyles swaps the styling, used when the theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.goal.SetStyles(s)
}

// Roadmap returns the displayed plan, nil when none exists.
func (v *View) Roadmap() *domain.Roadmap {
	return v.roadmap
}

// Completed returns the completed stage ids.
func (v *View) Completed() map[string]bool {
	return v.completed
}

// Selected returns the selected stage index.
func (v *View) Selected() int {
	return v.selected
}

// InputFocused reports whether the goal input is capturing keys.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
