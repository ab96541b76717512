package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dhleesep9/mentor-engine/pkg/chat"
	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

const (
	AgentName       = "서아"
	PlaceHolderText = "메시지를 입력하세요..."
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *progress.Progress
	history      []chat.ChatMessage
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type chatResponseMsg struct {
	response *chat.ChatResponse
	err      error
}

type sessionMsg struct {
	session *progress.Progress
	err     error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	mentorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, session *progress.Progress) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		session:      session,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
}

func writeMetadata(p *progress.Progress) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("진행 상황") + "\n\n")

	content.WriteString("세션 ID:\n")
	content.WriteString(p.ID.String()[:8] + "...\n\n")

	content.WriteString(fmt.Sprintf("%d주차  %s\n", p.Week, p.GameDate))
	content.WriteString(fmt.Sprintf("상태: %s\n\n", p.State))

	content.WriteString(fmt.Sprintf("호감도: %d\n", p.Affection))
	content.WriteString(fmt.Sprintf("체력: %d\n", p.Stamina))
	content.WriteString(fmt.Sprintf("멘탈: %d\n", p.Mental))
	content.WriteString(fmt.Sprintf("자신감: %d\n\n", p.Confidence))

	if len(p.SelectedSubjects) > 0 {
		content.WriteString("탐구 과목:\n")
		for _, s := range p.SelectedSubjects {
			content.WriteString("• " + s + "\n")
		}
		content.WriteString("\n")
	}

	if len(p.Schedule) > 0 {
		content.WriteString("주간 시간표:\n")
		names := make([]string, 0, len(p.Schedule))
		for name := range p.Schedule {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			content.WriteString(fmt.Sprintf("• %s: %d시간\n", name, p.Schedule[name]))
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+Y: Copy reply\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

// writeChatContent rebuilds the chat log for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("MENTOR ENGINE") + "\n\n")
	content.WriteString("재수 생활이 시작됐다. 멘토와 대화하며 일 년을 함께 보내자.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, msg := range m.history {
		switch msg.Role {
		case chat.ChatRoleAgent:
			content.WriteString(mentorStyle.Render(AgentName+": ") +
				wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
		case chat.ChatRoleSystem:
			content.WriteString(narrationStyle.Render(wordwrap.String(msg.Content, chatWidth-6)) + "\n\n")
		case chat.ChatRoleUser:
			content.WriteString(userStyle.Render("나: ") +
				wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.session))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if reply := m.lastMentorReply(); reply != "" {
				_ = clipboard.WriteAll(reply)
			}
			return m, nil

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			// /help is local; other slash commands go to the server,
			// which may treat them as debug commands.
			if input == "/help" {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			m.history = append(m.history, chat.ChatMessage{
				Role:    chat.ChatRoleUser,
				Content: input,
			})
			m.writeChatContent()

			return m, tea.Batch(m.sendChatMessage(input), progressTick())
		}

	case chatResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.writeChatContent()
			currentContent := m.chatViewport.View()
			errorMsg := errorStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.chatViewport.SetContent(currentContent + errorMsg)
		} else {
			if msg.response.Narration != "" {
				m.history = append(m.history, chat.ChatMessage{
					Role:    chat.ChatRoleSystem,
					Content: msg.response.Narration,
				})
			}
			if msg.response.Message != "" {
				m.history = append(m.history, chat.ChatMessage{
					Role:    chat.ChatRoleAgent,
					Content: msg.response.Message,
				})
			}
			m.writeChatContent()
		}
		m.chatViewport.GotoBottom()
		return m, m.refreshSession()

	case sessionMsg:
		if msg.err == nil && msg.session != nil {
			m.session = msg.session
			m.metaViewport.SetContent(writeMetadata(m.session))
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// lastMentorReply returns the newest assistant message, if any.
func (m ConsoleUI) lastMentorReply() string {
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].Role == chat.ChatRoleAgent {
			return m.history[i].Content
		}
	}
	return ""
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	if cmd == "/help" {
		helpText := `
Commands:
• /help - Show this help
• Ctrl+Y - Copy the last mentor reply
• Ctrl+C - Quit

How to play:
• 멘토와 대화하며 호감도를 쌓으세요
• "학습 시간표 관리" - 주간 시간표 짜기
• "사설모의고사 응시" - 실력 점검
• "멘토링 종료" - 한 주 마무리
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) sendChatMessage(message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendChat(m.client, m.config.APIBaseURL, m.session.ID, message)
		return chatResponseMsg{resp, err}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		p, err := getProgress(m.client, m.config.APIBaseURL, m.session.ID)
		return sessionMsg{p, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("게임을 종료할까요?"))
	content.WriteString("\n\n")
	content.WriteString("진행 상황은 서버에 저장됩니다.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Y: 종료  N: 계속  Ctrl+C: 강제 종료"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar draws the animated loading bar under the chat log.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
