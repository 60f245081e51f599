package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/catalog"
	"github.com/gravitrone/rxmart/internal/config"
	"github.com/gravitrone/rxmart/internal/isearch"
	"github.com/gravitrone/rxmart/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabProducts   = 0
	tabPharmacies = 1
	tabPartners   = 2
	tabOrders     = 3
	tabFilters    = 4
	tabCount      = 5
)

var tabNames = []string{"Products", "Pharmacies", "Partners", "Orders", "Filters"}

const startupTimeout = 700 * time.Millisecond

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{}
type startupCheckedMsg struct {
	apiErr  error
	authErr error
}

type startupSummary struct {
	API  string
	Auth string
	Done bool
}

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	client *api.Client
	config *config.Config
	logger *zap.Logger

	tab          int
	tabNav       bool
	width        int
	height       int
	err          string
	helpOpen     bool
	confirmClear bool

	startupChecking bool
	startup         startupSummary
	toast           *appToast

	products   PickerModel[api.Product]
	pharmacies PickerModel[api.Pharmacy]
	partners   PickerModel[api.Partner]
	orders     PickerModel[api.Order]
	filters    PickerModel[api.Category]
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, logger *zap.Logger) App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	input := InputModeFor(cfg.Search.ClearOnSelect)

	return App{
		client:          client,
		config:          cfg,
		logger:          logger,
		tab:             tabProducts,
		tabNav:          true,
		startupChecking: client != nil,
		startup:         startupSummary{API: "checking", Auth: "checking"},

		products: newResourcePicker(client, cfg, logger, catalog.Products, "Search products by name", isearch.Settings[api.Product]{
			PageSize:  cfg.Search.PageSize,
			InputMode: input,
		}, describeProduct),
		pharmacies: newResourcePicker(client, cfg, logger, catalog.Pharmacies, "Search pharmacies by name", isearch.Settings[api.Pharmacy]{
			PageSize:  cfg.Search.PageSize,
			InputMode: input,
		}, describePharmacy),
		partners: newResourcePicker(client, cfg, logger, catalog.Partners, "Search partners by name", isearch.Settings[api.Partner]{
			PageSize:  cfg.Search.PageSize,
			InputMode: input,
		}, describePartner),
		orders: newResourcePicker(client, cfg, logger, catalog.Orders, "Search orders by invoice or customer", isearch.Settings[api.Order]{
			PageSize:  cfg.Search.PageSize,
			InputMode: input,
		}, describeOrder),
		filters: newResourcePicker(client, cfg, logger, catalog.Categories, "Filter by category", isearch.Settings[api.Category]{
			PageSize:      cfg.Search.PageSize,
			Multi:         true,
			MaxSelections: cfg.Search.FilterMaxSelections,
			LimitMessage:  fmt.Sprintf("You can pick up to %d filters.", cfg.Search.FilterMaxSelections),
			InputMode:     isearch.InputClear,
			FetchOnOpen:   true,
		}, nil),
	}
}

// InputModeFor maps search.clear_on_select to the input behaviour after a
// selection.
func InputModeFor(clearOnSelect bool) isearch.InputMode {
	if clearOnSelect {
		return isearch.InputClear
	}
	return isearch.InputFill
}

func newResourcePicker[T catalog.Record](
	client *api.Client,
	cfg *config.Config,
	logger *zap.Logger,
	src catalog.Source[T],
	placeholder string,
	settings isearch.Settings[T],
	describe func(T) []components.TableRow,
) PickerModel[T] {
	var fetch isearch.FetchFunc[T]
	if client != nil {
		fetch = src.Fetcher(client)
	}
	return NewPicker(PickerOptions[T]{
		Title:       src.Title,
		Placeholder: placeholder,
		Settings:    settings,
		Debounce:    cfg.Debounce(),
		Fetch:       fetch,
		Detail:      src.Detail,
		Describe:    describe,
		Logger:      logger.With(zap.String("resource", src.Name)),
	})
}

func (a App) Init() tea.Cmd {
	if a.startupChecking {
		return a.runStartupCheckCmd()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.products.SetSize(msg.Width, msg.Height)
		a.pharmacies.SetSize(msg.Width, msg.Height)
		a.partners.SetSize(msg.Width, msg.Height)
		a.orders.SetSize(msg.Width, msg.Height)
		a.filters.SetSize(msg.Width, msg.Height)
		return a, nil

	case errMsg:
		a.err = msg.err.Error()
		return a, nil
	case clearToastMsg:
		a.toast = nil
		return a, nil
	case startupCheckedMsg:
		a.startupChecking = false
		a.startup.Done = true
		a.startup.API = classifyStartupAPI(msg.apiErr)
		if a.startup.API == "ok" {
			a.startup.Auth = classifyStartupAuth(msg.authErr, a.config)
		} else {
			a.startup.Auth = "unknown"
		}
		level, text := startupToastCopy(a.startup)
		return a, a.setToast(level, text)
	case pickerSelectedMsg:
		if msg.multi {
			return a, a.setToast("success", fmt.Sprintf("Filter added: %s (%d selected).", msg.label, msg.count))
		}
		return a, a.setToast("success", "Selected "+msg.label+".")
	case pickerWarningMsg:
		return a, a.setToast("warning", msg.text)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.broadcast(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return a.quit()
	}
	if a.confirmClear {
		switch {
		case key.Matches(msg, keys.Confirm):
			a.filters.Machine().ClearSelection()
			a.confirmClear = false
			return a, a.setToast("info", "Filters cleared.")
		case key.Matches(msg, keys.Cancel, keys.Back):
			a.confirmClear = false
		}
		return a, nil
	}
	if a.helpOpen {
		if key.Matches(msg, keys.Back, keys.Help) {
			a.helpOpen = false
		}
		return a, nil
	}
	a.err = ""

	switch {
	case key.Matches(msg, keys.NextTab):
		return a.switchTab((a.tab + 1) % tabCount)
	case key.Matches(msg, keys.PrevTab):
		return a.switchTab((a.tab - 1 + tabCount) % tabCount)
	case key.Matches(msg, keys.ClearFilters) && a.tab == tabFilters:
		if len(a.filters.Selected()) > 0 {
			a.confirmClear = true
		}
		return a, nil
	}

	// Arrow tab navigation until the user enters content with Down.
	if a.tabNav {
		switch {
		case key.Matches(msg, keys.Quit):
			return a.quit()
		case key.Matches(msg, keys.Help):
			a.helpOpen = true
			return a, nil
		case key.Matches(msg, keys.TabLeft):
			return a.switchTab((a.tab - 1 + tabCount) % tabCount)
		case key.Matches(msg, keys.TabRight):
			return a.switchTab((a.tab + 1) % tabCount)
		case key.Matches(msg, keys.Down, keys.Select):
			return a.enterContent()
		case key.Matches(msg, keys.Back):
			return a, nil
		case key.Matches(msg, keys.TabJump):
			if idx, ok := tabIndexForKey(msg.String()); ok {
				return a.switchTab(idx)
			}
		}
		// Any other key starts typing in the active tab.
		app, cmd := a.enterContent()
		next, keyCmd := app.(App).delegate(msg)
		return next, tea.Batch(cmd, keyCmd)
	}

	if key.Matches(msg, keys.Up) && a.activeAtTop() {
		a.tabNav = true
		a.blurActive()
		return a, nil
	}
	return a.delegate(msg)
}

func (a App) enterContent() (tea.Model, tea.Cmd) {
	a.tabNav = false
	var cmd tea.Cmd
	switch a.tab {
	case tabProducts:
		a.products, cmd = a.products.Focus()
	case tabPharmacies:
		a.pharmacies, cmd = a.pharmacies.Focus()
	case tabPartners:
		a.partners, cmd = a.partners.Focus()
	case tabOrders:
		a.orders, cmd = a.orders.Focus()
	case tabFilters:
		a.filters, cmd = a.filters.Focus()
	}
	return a, cmd
}

func (a *App) blurActive() {
	switch a.tab {
	case tabProducts:
		a.products = a.products.Blur()
	case tabPharmacies:
		a.pharmacies = a.pharmacies.Blur()
	case tabPartners:
		a.partners = a.partners.Blur()
	case tabOrders:
		a.orders = a.orders.Blur()
	case tabFilters:
		a.filters = a.filters.Blur()
	}
}

func (a App) activeAtTop() bool {
	switch a.tab {
	case tabProducts:
		return a.products.AtTop()
	case tabPharmacies:
		return a.pharmacies.AtTop()
	case tabPartners:
		return a.partners.AtTop()
	case tabOrders:
		return a.orders.AtTop()
	case tabFilters:
		return a.filters.AtTop()
	}
	return true
}

// delegate sends a key to the active tab only.
func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.tab {
	case tabProducts:
		a.products, cmd = a.products.Update(msg)
	case tabPharmacies:
		a.pharmacies, cmd = a.pharmacies.Update(msg)
	case tabPartners:
		a.partners, cmd = a.partners.Update(msg)
	case tabOrders:
		a.orders, cmd = a.orders.Update(msg)
	case tabFilters:
		a.filters, cmd = a.filters.Update(msg)
	}
	return a, cmd
}

// broadcast sends a non-key message to every picker; each one drops what
// it does not own.
func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)
	a.products, cmds[0] = a.products.Update(msg)
	a.pharmacies, cmds[1] = a.pharmacies.Update(msg)
	a.partners, cmds[2] = a.partners.Update(msg)
	a.orders, cmds[3] = a.orders.Update(msg)
	a.filters, cmds[4] = a.filters.Update(msg)
	return a, tea.Batch(cmds...)
}

func (a App) switchTab(newTab int) (tea.Model, tea.Cmd) {
	if newTab == a.tab {
		return a, nil
	}
	a.blurActive()
	a.tab = newTab
	if a.tabNav {
		return a, nil
	}
	return a.enterContent()
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.products.cancelFetch()
	a.pharmacies.cancelFetch()
	a.partners.cancelFetch()
	a.orders.cancelFetch()
	a.filters.cancelFetch()
	return a, tea.Quit
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)
	startupPanel := ""
	if a.startupChecking {
		startupPanel = "\n\n" + centerBlockUniform(a.renderStartupPanel(), a.width)
	}

	var content string
	switch a.tab {
	case tabProducts:
		content = a.products.View()
	case tabPharmacies:
		content = a.pharmacies.View()
	case tabPartners:
		content = a.partners.View()
	case tabOrders:
		content = a.orders.View()
	case tabFilters:
		content = a.filters.View()
	}

	if a.confirmClear {
		content = components.Indent(components.ConfirmDialog("Clear filters", fmt.Sprintf("Remove all %d selected filters?", len(a.filters.Selected()))), 1)
	} else if a.helpOpen {
		content = a.renderHelp()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", a.err, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s\n\n\n%s%s", banner, tabs, startupPanel, content, hints, feedback)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := name
		if i == tabFilters {
			if n := len(a.filters.Selected()); n > 0 {
				label = fmt.Sprintf("%s (%d)", name, n)
			}
		}
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) statusHints() []string {
	if a.confirmClear {
		return []string{hint(keys.Confirm), hint(keys.Cancel)}
	}
	if a.helpOpen {
		return []string{hintAs(keys.Back, "Back")}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	if a.tabNav {
		return []string{hint(keys.TabLeft), hint(keys.TabJump), hint(keys.Down), hint(keys.Help), hint(keys.Quit)}
	}
	hints := []string{hint(keys.NextTab), hint(keys.Up), hint(keys.Select), hint(keys.Back), hint(keys.Retry)}
	if a.tab == tabFilters {
		hints = append(hints, hint(keys.RemoveLast), hint(keys.ClearFilters))
	}
	return append(hints, hint(keys.ForceQuit))
}

func (a App) renderHelp() string {
	lines := []string{MutedStyle.Render("esc to close"), ""}
	lines = append(lines, MutedStyle.Render("Results load as you type and more pages load as you scroll."))
	lines = append(lines, "")
	for _, hint := range a.statusHintsForTabContent() {
		lines = append(lines, "  "+hint)
	}
	return components.Indent(components.TitledBox("Help", strings.Join(lines, "\n"), a.width), 1)
}

func (a App) statusHintsForTabContent() []string {
	a.tabNav = false
	return a.statusHintsForTab()
}

func (a App) runStartupCheckCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()

		msg := startupCheckedMsg{}
		if _, err := client.Health(ctx); err != nil {
			msg.apiErr = err
			return msg
		}
		if _, err := client.SearchCategories(ctx, api.ListParams{Limit: 1}); err != nil {
			msg.authErr = err
		}
		return msg
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func (a App) renderStartupPanel() string {
	rows := []components.TableRow{
		{Label: "API", Value: a.startup.API, ValueColor: startupStatusColor(a.startup.API)},
		{Label: "Auth", Value: a.startup.Auth, ValueColor: startupStatusColor(a.startup.Auth)},
	}
	return components.Table("Startup Checks", rows, a.width)
}

func classifyStartupAPI(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return "timeout"
	}
	return "down"
}

func classifyStartupAuth(err error, cfg *config.Config) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
		return "invalid"
	}
	if err != nil {
		return "failed"
	}
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return "anonymous"
	}
	return "ok"
}

func startupToastCopy(summary startupSummary) (string, string) {
	if summary.API != "ok" {
		return "error", fmt.Sprintf("Startup checks failed: API is %s.", summary.API)
	}
	switch summary.Auth {
	case "ok":
		return "success", "Startup checks passed: API and auth are healthy."
	case "anonymous":
		return "info", "API reachable. No API key configured; browsing anonymously."
	default:
		return "warning", fmt.Sprintf("Startup checks: auth=%s.", summary.Auth)
	}
}

func startupStatusColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "ok":
		return string(ColorSuccess)
	case "checking", "unknown":
		return string(ColorMuted)
	case "anonymous", "timeout":
		return string(ColorWarning)
	case "invalid", "down", "failed":
		return string(ColorError)
	default:
		return string(ColorMuted)
	}
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func tabIndexForKey(k string) (int, bool) {
	switch k {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(k[0] - '1')
		if idx >= 0 && idx < tabCount {
			return idx, true
		}
	}
	return 0, false
}
