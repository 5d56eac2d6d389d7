package ui

import (
	"fmt"
	"strings"
	"time"

	uistate "github.com/atomicstack/tmux-bitflags/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	previewMaxDisplayLines = 8   // used by inline (vertical) preview only
	previewPanelMinWidth   = 36  // minimum cols for the preview panel; below this no split
	previewPanelFraction   = 0.5 // fraction of total width given to the preview panel
	itemDetailSeparator    = "  "
	footerText             = "↑/↓ move  enter select  tab actions  ctrl+u clear  esc back  ctrl+c quit"
)

// previewBorder styles used when drawing the preview box.
var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	detailFrom    int // rune offset where the dimmed detail column starts; 0 for none
}

// hasSidePreview reports whether the preview is drawn as a panel on the right
// rather than inline below the items.
func (m *Model) hasSidePreview() bool {
	if m.activePreview() == nil {
		return false
	}
	return m.previewPanelWidth() > 0
}

// previewPanelWidth returns the width in columns for the right-hand preview
// panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	if m.hasSidePreview() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

// itemLines renders the visible window of the current level.
func (m *Model) itemLines(current *level, width int) []styledLine {
	m.syncViewport(current)
	start := 0
	displayItems := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			current.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	if len(current.Items) == 0 {
		return []styledLine{{text: emptyLevelText(current), style: styles.Info}}
	}
	lines := make([]styledLine, 0, len(displayItems))
	for i, item := range displayItems {
		lines = append(lines, m.buildItemLine(item, start+i, current, width))
	}
	return lines
}

func emptyLevelText(l *level) string {
	switch {
	case l.Note != "":
		return l.Note
	case l.Filter != "" && !l.Literal():
		return fmt.Sprintf("No matches for %q", l.Filter)
	}
	return "(no entries)"
}

// viewVertical is the single-column layout with an inline preview block
// below the items, used when the terminal is too narrow for side-by-side.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	if current := m.currentLevel(); current != nil {
		lines = append(lines, m.itemLines(current, m.width)...)
	}
	if preview := m.activePreview(); preview != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: previewTitleText(preview), style: styles.PreviewTitle})
		if preview.err != "" {
			lines = append(lines, styledLine{text: preview.err, style: styles.PreviewError})
		} else {
			for _, line := range previewDisplayLines(preview) {
				lines = append(lines, styledLine{text: line, style: styles.PreviewBody})
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, m.bottomBar()...)
	return renderLines(lines)
}

// viewSideBySide renders the menu on the left and a preview panel on the right.
func (m *Model) viewSideBySide(header string) string {
	menuW := m.menuColumnWidth()
	prevW := m.previewPanelWidth()
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	if current := m.currentLevel(); current != nil {
		contentLines = append(contentLines, m.itemLines(current, menuW)...)
	}
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: footerText, style: styles.Footer})
	}

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, menuW)
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	leftStr := strings.Join(leftRows, "\n")
	rightStr := m.renderPreviewPanel(m.activePreview(), prevW, panelH)
	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)
	return topSection + "\n" + renderLines(m.bottomBar())
}

// bottomBar holds the error line and the prompt, spanning the full width.
func (m *Model) bottomBar() []styledLine {
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	return applyWidth([]styledLine{statusLine, {text: m.filterPrompt()}}, m.width)
}

// buildItemLine constructs a single styledLine for a menu item. When width
// is positive the text is padded so the selected row's background spans the
// whole column.
func (m *Model) buildItemLine(item uistate.Item, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + item.Label
	detailFrom := 0
	if item.Detail != "" {
		fullText += itemDetailSeparator
		detailFrom = len([]rune(fullText))
		fullText += item.Detail
	}
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
		detailFrom:    detailFrom,
	}
}

// renderPreviewPanel builds the bordered preview box as a string with exactly
// height rows and totalWidth columns.
func (m *Model) renderPreviewPanel(preview *previewData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "Preview"
	scrollInfo := ""
	var contentLines []string
	var errLine string
	if preview != nil {
		if lbl := strings.TrimSpace(preview.label); lbl != "" {
			titleLabel = "Preview: " + lbl
		}
		if preview.err != "" {
			errLine = preview.err
		} else if len(preview.lines) > 0 {
			maxOffset := len(preview.lines) - innerH
			if maxOffset < 0 {
				maxOffset = 0
			}
			if preview.scrollOffset > maxOffset {
				preview.scrollOffset = maxOffset
			}
			if preview.scrollOffset < 0 {
				preview.scrollOffset = 0
			}
			end := preview.scrollOffset + innerH
			if end > len(preview.lines) {
				end = len(preview.lines)
			}
			contentLines = preview.lines[preview.scrollOffset:end]
			if len(preview.lines) > innerH {
				scrollInfo = fmt.Sprintf(" %d/%d ", preview.scrollOffset+len(contentLines), len(preview.lines))
			}
		}
	}

	titleSeg := " " + titleLabel + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - len([]rune(titleSeg)) - len([]rune(scrollSeg))
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := previewBorderStyle.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)) +
		previewScrollStyle.Render(scrollSeg) +
		previewBorderStyle.Render(hz+trc)
	bottomLine := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	bodyStyle := styles.PreviewBody
	if errLine != "" {
		bodyStyle = styles.PreviewError
		contentLines = []string{errLine}
	}

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		if bodyStyle != nil {
			content = bodyStyle.Render(content)
		}
		rows = append(rows, previewBorderStyle.Render(vt)+content+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	if len(m.stack) == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	segments := []string{root}
	for _, l := range m.stack[1:] {
		if segment := strings.TrimSpace(l.Title); segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func previewTitleText(data *previewData) string {
	label := strings.TrimSpace(data.label)
	if label == "" {
		label = "(unknown)"
	}
	return "Preview: " + label
}

func previewDisplayLines(data *previewData) []string {
	if len(data.lines) > previewMaxDisplayLines {
		return data.lines[:previewMaxDisplayLines]
	}
	return data.lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	if header := m.menuHeader(); header != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if !m.hasSidePreview() {
		if preview := m.activePreview(); preview != nil {
			used += 2 // blank separator + title line
			if preview.err != "" {
				used++
			} else {
				used += len(previewDisplayLines(preview))
			}
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = line
		if strings.Contains(line.text, "\x1b") {
			if lipgloss.Width(line.text) > width {
				result[i].text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
			continue
		}
		result[i].text = truncateText(line.text, width)
		if n := len([]rune(result[i].text)); result[i].detailFrom >= n {
			result[i].detailFrom = 0
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		runes := []rune(line.text)
		if line.highlightFrom <= 0 || line.highlightFrom >= len(runes) {
			out[i] = render(line.style, line.text)
			continue
		}
		head := render(line.prefixStyle, string(runes[:line.highlightFrom]))
		body := runes[line.highlightFrom:]
		split := line.detailFrom - line.highlightFrom
		if split <= 0 || split >= len(body) {
			out[i] = head + render(line.style, string(body))
			continue
		}
		detailStyle := line.style
		if styles.ItemDetail != nil {
			combined := styles.ItemDetail.Copy()
			if line.style != nil {
				combined = combined.Inherit(*line.style)
			}
			detailStyle = &combined
		}
		out[i] = head + render(line.style, string(body[:split])) + render(detailStyle, string(body[split:]))
	}
	return strings.Join(out, "\n")
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
