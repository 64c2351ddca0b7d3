package terminal

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/TermBridge/internal/session"
	"github.com/GriffinCanCode/TermBridge/internal/types"
)

const (
	defaultOutputLines = 100
	maxOutputLines     = 1000
)

// Provider exposes visible terminal windows as service tools
type Provider struct {
	sessions *session.Manager
	maxLines int
}

// NewProvider creates a terminal provider on top of a session manager.
// maxLines caps a single transcript read; zero or negative selects the
// default cap.
func NewProvider(sessions *session.Manager, maxLines int) *Provider {
	if maxLines <= 0 {
		maxLines = maxOutputLines
	}
	return &Provider{sessions: sessions, maxLines: maxLines}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "terminal",
		Name:        "Terminal Service",
		Description: "Drives visible terminal windows the user can watch and type into",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"visible-window",
			"shell",
			"sessions",
			"transcript",
		},
		Tools: p.getTools(),
	}
}

// Execute routes to appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "terminal.create_or_get":
		return p.createOrGet(params)
	case "terminal.send_input":
		return p.sendInput(params)
	case "terminal.get_output":
		return p.getOutput(params)
	case "terminal.list":
		return p.list()
	case "terminal.close":
		return p.close(params)
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "terminal.create_or_get",
			Name:        "Create or Get Terminal",
			Description: "Open a visible terminal window, or return the live one already holding the given name",
			Parameters: []types.Parameter{
				{
					Name:        "name",
					Type:        "string",
					Description: "Optional terminal name. A live terminal with this name is reused instead of opening a new window",
					Required:    false,
				},
				{
					Name:        "working_dir",
					Type:        "string",
					Description: "Initial working directory. Defaults to the server's current directory",
					Required:    false,
				},
			},
			Returns: "session_info",
		},
		{
			ID:          "terminal.send_input",
			Name:        "Send Input to Terminal",
			Description: "Send a command to the visible terminal window. Execution is asynchronous; read results with terminal.get_output",
			Parameters: []types.Parameter{
				{
					Name:        "session_id",
					Type:        "string",
					Description: "Terminal session ID",
					Required:    true,
				},
				{
					Name:        "text",
					Type:        "string",
					Description: "Text to execute as a shell command",
					Required:    true,
				},
			},
			Returns: "success",
		},
		{
			ID:          "terminal.get_output",
			Name:        "Get Terminal Output",
			Description: "Read the trailing lines of the terminal transcript, commands and their output interleaved",
			Parameters: []types.Parameter{
				{
					Name:        "session_id",
					Type:        "string",
					Description: "Terminal session ID",
					Required:    true,
				},
				{
					Name:        "lines",
					Type:        "number",
					Description: "Trailing lines to return (default 100, max 1000)",
					Required:    false,
				},
			},
			Returns: "output_data",
		},
		{
			ID:          "terminal.list",
			Name:        "List Terminals",
			Description: "List all terminal sessions whose windows are still open",
			Parameters:  []types.Parameter{},
			Returns:     "sessions_list",
		},
		{
			ID:          "terminal.close",
			Name:        "Close Terminal",
			Description: "Close the terminal window and remove its session artifacts",
			Parameters: []types.Parameter{
				{
					Name:        "session_id",
					Type:        "string",
					Description: "Terminal session ID",
					Required:    true,
				},
			},
			Returns: "success",
		},
	}
}

func (p *Provider) createOrGet(params map[string]interface{}) (*types.Result, error) {
	name, _ := params["name"].(string)
	workingDir, _ := params["working_dir"].(string)

	sess, err := p.sessions.CreateOrGet(name, workingDir)
	if err != nil {
		return nil, err
	}

	return &types.Result{
		Success: true,
		Data: map[string]interface{}{
			"session_id": sess.ID,
			"name":       sess.Name,
			"platform":   string(sess.Platform),
			"message":    fmt.Sprintf("Terminal '%s' is ready (session: %s)", sess.Name, sess.ID),
		},
	}, nil
}

func (p *Provider) sendInput(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}

	text, ok := params["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text is required")
	}

	sess := p.sessions.Get(sessionID)
	if sess == nil {
		return notFoundResult(sessionID), nil
	}

	if !p.sessions.SendInput(sessionID, text) {
		msg := "Failed to send input. The terminal may have been closed."
		return &types.Result{
			Success: false,
			Data:    map[string]interface{}{"session_id": sessionID},
			Error:   &msg,
		}, nil
	}

	return &types.Result{
		Success: true,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"sent_text":  text,
			"message":    fmt.Sprintf("Command sent to terminal '%s'", sess.Name),
		},
	}, nil
}

func (p *Provider) getOutput(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}

	lines := defaultOutputLines
	if l, ok := params["lines"].(float64); ok {
		lines = int(l)
	}
	if lines < 1 {
		lines = 1
	}
	if lines > p.maxLines {
		lines = p.maxLines
	}

	sess := p.sessions.Get(sessionID)
	if sess == nil {
		return notFoundResult(sessionID), nil
	}

	output := p.sessions.Output(sessionID, lines)

	return &types.Result{
		Success: true,
		Data: map[string]interface{}{
			"session_id":      sessionID,
			"terminal_name":   sess.Name,
			"output":          output,
			"lines_requested": lines,
		},
	}, nil
}

func (p *Provider) list() (*types.Result, error) {
	live := p.sessions.List()

	terminals := make([]map[string]interface{}, 0, len(live))
	for _, sess := range live {
		terminals = append(terminals, map[string]interface{}{
			"session_id": sess.ID,
			"name":       sess.Name,
			"platform":   string(sess.Platform),
		})
	}

	return &types.Result{
		Success: true,
		Data: map[string]interface{}{
			"count":     len(terminals),
			"terminals": terminals,
		},
	}, nil
}

func (p *Provider) close(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}

	if !p.sessions.Close(sessionID) {
		msg := fmt.Sprintf("Session '%s' not found or already closed.", sessionID)
		return &types.Result{
			Success: false,
			Error:   &msg,
		}, nil
	}

	return &types.Result{
		Success: true,
		Data: map[string]interface{}{
			"message": fmt.Sprintf("Terminal session '%s' has been closed.", sessionID),
		},
	}, nil
}

func notFoundResult(sessionID string) *types.Result {
	msg := fmt.Sprintf("Session '%s' not found. It may have been closed or never existed.", sessionID)
	return &types.Result{
		Success: false,
		Data: map[string]interface{}{
			"suggestion": "Use terminal.create_or_get to create a new terminal.",
		},
		Error: &msg,
	}
}
