package display

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nappingtoad/Cucina/internal/domain"
	"github.com/nappingtoad/Cucina/internal/engine"
)

// CookResult is how an interactive cooking run ended.
type CookResult int

const (
	// ResultLeftActive means the user quit; the session stays resumable.
	ResultLeftActive CookResult = iota
	// ResultCompleted means the session finished and inventory was deducted.
	ResultCompleted
	// ResultCancelled means the session was cancelled without side effects.
	ResultCancelled
)

// CookModel is the interactive checklist for one cooking session. It owns the
// precondition the session engine does not: completion is offered only once
// every ingredient and every step is ticked.
type CookModel struct {
	ctx     context.Context
	eng     *engine.Engine
	data    *domain.AppData
	recipe  *domain.Recipe
	userID  string
	serving float64
	report  []engine.IngredientStatus

	ingChecked  map[int]bool
	stepChecked map[int]bool
	cursor      int
	sizing      bool
	input       textinput.Model

	Result CookResult
	Ledger []engine.LedgerEntry
	Err    error
}

// NewCook builds the checklist model for an already started session.
func NewCook(ctx context.Context, eng *engine.Engine, data *domain.AppData, recipe *domain.Recipe, session *domain.CookingSession, report []engine.IngredientStatus) CookModel {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("%g", session.ServingSize)
	ti.CharLimit = 6
	ti.Width = 8

	m := CookModel{
		ctx:         ctx,
		eng:         eng,
		data:        data,
		recipe:      recipe,
		userID:      session.UserID,
		serving:     session.ServingSize,
		report:      report,
		ingChecked:  make(map[int]bool),
		stepChecked: make(map[int]bool),
		input:       ti,
	}
	for _, i := range session.IngredientsChecked {
		m.ingChecked[i] = true
	}
	for _, i := range session.StepsChecked {
		m.stepChecked[i] = true
	}
	return m
}

// Init implements tea.Model.
func (m CookModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m CookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.sizing {
		return m.updateSizing(key)
	}

	total := len(m.recipe.Ingredients) + len(m.recipe.Instructions)
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < total-1 {
			m.cursor++
		}
	case " ", "enter":
		m.toggle(m.cursor)
	case "s":
		m.sizing = true
		m.input.SetValue("")
		m.input.Focus()
	case "c":
		if m.allChecked() {
			m.Ledger, m.Err = m.eng.CompleteSession(m.ctx, m.recipe.ID, m.userID)
			if m.Err == nil {
				m.Result = ResultCompleted
			}
			return m, tea.Quit
		}
	case "x":
		m.Err = m.eng.CancelSession(m.ctx, m.recipe.ID, m.userID)
		if m.Err == nil {
			m.Result = ResultCancelled
		}
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.Result = ResultLeftActive
		return m, tea.Quit
	}
	return m, nil
}

func (m CookModel) updateSizing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.sizing = false
		size, err := strconv.ParseFloat(strings.TrimSpace(m.input.Value()), 64)
		if err != nil || size <= 0 {
			return m, nil
		}
		if err := m.eng.SetServingSize(m.ctx, m.recipe.ID, m.userID, size); err != nil {
			m.Err = err
			return m, nil
		}
		m.serving = size
		if report, err := m.eng.CheckIngredients(m.ctx, m.recipe.ID, m.userID); err == nil {
			m.report = report
		}
		return m, nil
	case "esc":
		m.sizing = false
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *CookModel) toggle(idx int) {
	if idx < len(m.recipe.Ingredients) {
		if err := m.eng.ToggleIngredient(m.ctx, m.recipe.ID, m.userID, idx); err == nil {
			m.ingChecked[idx] = !m.ingChecked[idx]
		}
		return
	}
	step := idx - len(m.recipe.Ingredients)
	if err := m.eng.ToggleStep(m.ctx, m.recipe.ID, m.userID, step); err == nil {
		m.stepChecked[step] = !m.stepChecked[step]
	}
}

func (m CookModel) allChecked() bool {
	for i := range m.recipe.Ingredients {
		if !m.ingChecked[i] {
			return false
		}
	}
	for i := range m.recipe.Instructions {
		if !m.stepChecked[i] {
			return false
		}
	}
	return true
}

// View implements tea.Model.
func (m CookModel) View() string {
	var b strings.Builder
	factor := m.serving / m.recipe.Servings
	fmt.Fprintf(&b, "%s  %s\n\n",
		titleStyle.Render("Cooking: "+m.recipe.Name),
		dimStyle.Render(fmt.Sprintf("%g servings (x%.3g)", m.serving, factor)))

	b.WriteString(headerStyle.Render("Ingredients") + "\n")
	for i, ing := range m.recipe.Ingredients {
		line := ingredientLine(ing.Quantity*factor, ing.MeasurementID, ing.IngredientID, m.data)
		if i < len(m.report) && !m.report[i].HasEnough {
			line += shortStyle.Render(fmt.Sprintf("  short, have %.3g", m.report[i].Available))
		}
		b.WriteString(m.checklistLine(i, m.ingChecked[i], line))
	}

	b.WriteString("\n" + headerStyle.Render("Steps") + "\n")
	for i, step := range m.recipe.Instructions {
		b.WriteString(m.checklistLine(len(m.recipe.Ingredients)+i, m.stepChecked[i], step))
	}

	if m.sizing {
		b.WriteString("\n" + promptStyle.Render("new serving size: ") + m.input.View() + "\n")
	} else {
		help := "space toggle · s servings · x cancel · q leave"
		if m.allChecked() {
			help = "c complete · " + help
		}
		b.WriteString("\n" + dimStyle.Render(help) + "\n")
	}
	return b.String()
}

func (m CookModel) checklistLine(idx int, checked bool, text string) string {
	mark := "[ ]"
	style := dimStyle
	if checked {
		mark = "[x]"
		style = checkedStyle
	}
	prefix := "  "
	if idx == m.cursor {
		prefix = cursorStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s\n", prefix, mark, style.Render(text))
}
