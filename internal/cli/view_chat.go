package cli

import (
	"context"
	"io"
	"strings"

	"github.com/alexanderramin/agribot/internal/cli/formatter"
	"github.com/alexanderramin/agribot/internal/intelligence"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chatView is the full-terminal chat. Replies are computed off the update
// loop; input is ignored until the pending reply arrives. While busy, only the
// reply command touches the session; View renders from fields copied out of
// replyMsg.
type chatView struct {
	ctx     context.Context
	session *intelligence.Session
	input   textinput.Model
	spin    spinner.Model
	keys    chatKeyMap

	messages []string
	userName string
	busy     bool
}

type chatKeyMap struct {
	Send key.Binding
	Quit key.Binding
}

// replyMsg carries a finished reply back to the update loop.
type replyMsg struct {
	reply    string
	warnings []string
	userName string
}

func newChatView(ctx context.Context, session *intelligence.Session) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "Ask about crops, pests, diseases, weather..."
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	v := &chatView{
		ctx:      ctx,
		session:  session,
		userName: session.UserName(),
		input:    ti,
		spin:     sp,
		keys: chatKeyMap{
			Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		},
	}
	v.messages = append(v.messages,
		formatter.FormatChatWelcome(),
		formatter.FormatReply(session.Greet()),
	)
	return v
}

func runChatTUI(ctx context.Context, session *intelligence.Session, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newChatView(ctx, session), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Quit) {
			return v, tea.Quit
		}
		if v.busy {
			return v, nil
		}
		if key.Matches(msg, v.keys.Send) {
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}

	case replyMsg:
		v.busy = false
		v.userName = msg.userName
		for _, w := range msg.warnings {
			v.messages = append(v.messages, formatter.FormatWarning(w))
		}
		v.messages = append(v.messages, formatter.FormatReply(msg.reply))
		return v, nil

	case spinner.TickMsg:
		if !v.busy {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder

	for _, msg := range v.messages {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if name := formatter.FormatUserName(v.userName); name != "" {
		b.WriteString(name + "\n")
	}
	if v.busy {
		b.WriteString(v.spin.View() + " " + formatter.Dim("Thinking..."))
	} else {
		b.WriteString(formatter.FormatUserTurn(v.input.View()))
	}
	b.WriteString("\n" + formatter.Dim(v.helpLine()))

	return b.String()
}

func (v *chatView) helpLine() string {
	parts := make([]string, 0, 2)
	for _, k := range []key.Binding{v.keys.Send, v.keys.Quit} {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ") + " · /tip · /history"
}

// ── input handling ───────────────────────────────────────────────────────────

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q":
		return v, tea.Quit
	case "/tip":
		v.messages = append(v.messages, formatter.FormatReply(v.session.Tip()))
		return v, nil
	case "/history":
		v.messages = append(v.messages, formatter.FormatHistory(v.session.History()))
		return v, nil
	}

	v.messages = append(v.messages, formatter.FormatUserTurn(input))
	v.busy = true
	// The reply command precedes the first spinner tick.
	return v, tea.Batch(v.respond(input), v.spin.Tick)
}

func (v *chatView) respond(input string) tea.Cmd {
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		reply := session.ProcessMessage(ctx, input)
		return replyMsg{reply: reply, warnings: session.Warnings(), userName: session.UserName()}
	}
}
