// internal/tui/picker.go
// Package tui provides the interactive model picker for the getllm CLI.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getllm/getllm/internal/catalog"
	"github.com/getllm/getllm/internal/util"
)

// item represents a selectable catalog entry in the picker list.
type item struct {
	title     string
	desc      string
	installed bool
}

// Title returns the entry's model name.
func (i item) Title() string { return i.title }

// Description returns the secondary line under the entry.
func (i item) Description() string {
	if i.installed {
		return "Installed locally"
	}
	return i.desc
}

// FilterValue returns the model name, used for filtering.
func (i item) FilterValue() string { return i.title }

// Picker is the Bubble Tea model behind the default-model chooser. Enter
// records the highlighted entry and quits; q or ctrl+c quits without a
// choice.
type Picker struct {
	list     list.Model
	choice   string
	quitting bool
	width    int
	height   int
}

// NewPicker builds a Picker over the given catalog entries.
func NewPicker(models []catalog.Model) *Picker {
	items := make([]list.Item, len(models))
	for i, m := range models {
		desc := m.Description
		if m.SizeBytes > 0 {
			desc = fmt.Sprintf("%s (%s)", m.Description, util.FormatBytes(m.SizeBytes))
		}
		items[i] = item{title: m.Name, desc: desc, installed: m.Installed}
	}
	modelList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	modelList.Title = "Select a default model"
	return &Picker{list: modelList}
}

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Quit keys stay inert while the list filter input is focused.
		if p.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "ctrl+c", "q":
				p.quitting = true
				return p, tea.Quit
			case "enter":
				if selectedItem, ok := p.list.SelectedItem().(item); ok {
					p.choice = selectedItem.Title()
				}
				return p, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.list.SetSize(msg.Width-2, msg.Height-4)
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p *Picker) View() string {
	if p.width == 0 {
		return "Initializing..."
	}
	if p.quitting || p.choice != "" {
		return ""
	}
	return lipgloss.NewStyle().Margin(1, 2).Render(p.list.View())
}

// Choice returns the selected model name, if any.
func (p *Picker) Choice() (string, bool) {
	if p.choice == "" {
		return "", false
	}
	return p.choice, true
}

// PickModel runs the picker on the terminal and returns the selection. The
// bool is false when the user quit without choosing.
func PickModel(models []catalog.Model) (string, bool, error) {
	if len(models) == 0 {
		return "", false, fmt.Errorf("no models to pick from")
	}

	program := tea.NewProgram(NewPicker(models), tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return "", false, fmt.Errorf("model picker failed: %w", err)
	}

	picker, ok := finalModel.(*Picker)
	if !ok {
		return "", false, fmt.Errorf("unexpected picker model %T", finalModel)
	}
	name, chosen := picker.Choice()
	return name, chosen, nil
}
