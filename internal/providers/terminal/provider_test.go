package terminal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/GriffinCanCode/TermBridge/internal/logging"
	"github.com/GriffinCanCode/TermBridge/internal/session"
	term "github.com/GriffinCanCode/TermBridge/internal/terminal"
	"github.com/GriffinCanCode/TermBridge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDriver struct {
	seq     int
	alive   map[string]bool
	inputs  map[string][]string
	outputs map[string]string
	lastN   int
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		alive:   make(map[string]bool),
		inputs:  make(map[string][]string),
		outputs: make(map[string]string),
	}
}

func (d *stubDriver) Platform() term.Platform { return term.PlatformLinux }

func (d *stubDriver) Create(name, workingDir string) (*term.Session, error) {
	d.seq++
	sid := fmt.Sprintf("term_stub_%04d", d.seq)
	if name == "" {
		name = "Terminal-" + sid
	}
	d.alive[sid] = true
	return &term.Session{
		ID:        sid,
		Name:      name,
		Platform:  term.PlatformLinux,
		CreatedAt: time.Now(),
	}, nil
}

func (d *stubDriver) SendInput(sess *term.Session, text string) bool {
	if !d.alive[sess.ID] {
		return false
	}
	d.inputs[sess.ID] = append(d.inputs[sess.ID], text)
	return true
}

func (d *stubDriver) Output(sess *term.Session, lines int) string {
	d.lastN = lines
	return d.outputs[sess.ID]
}

func (d *stubDriver) Alive(sess *term.Session) bool { return d.alive[sess.ID] }
func (d *stubDriver) Close(sess *term.Session)      { delete(d.alive, sess.ID) }
func (d *stubDriver) Cleanup()                      {}

func newTestProvider() (*Provider, *stubDriver) {
	driver := newStubDriver()
	mgr := session.NewManager(driver, logging.NewNop())
	return NewProvider(mgr, 0), driver
}

func execute(t *testing.T, p *Provider, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestDefinition(t *testing.T) {
	p, _ := newTestProvider()
	def := p.Definition()

	assert.Equal(t, "terminal", def.ID)
	assert.Len(t, def.Tools, 5)
	for _, tool := range def.Tools {
		assert.Contains(t, tool.ID, "terminal.")
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	p, _ := newTestProvider()

	result, err := p.Execute(context.Background(), "terminal.bogus", map[string]interface{}{}, nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCreateOrGet(t *testing.T) {
	p, _ := newTestProvider()

	result := execute(t, p, "terminal.create_or_get", map[string]interface{}{"name": "dev"})
	require.True(t, result.Success)

	assert.Equal(t, "dev", result.Data["name"])
	assert.Equal(t, "linux", result.Data["platform"])
	assert.Contains(t, result.Data["message"], "is ready")

	sid := result.Data["session_id"].(string)
	again := execute(t, p, "terminal.create_or_get", map[string]interface{}{"name": "dev"})
	assert.Equal(t, sid, again.Data["session_id"], "same name reuses the live session")
}

func TestSendInput(t *testing.T) {
	p, driver := newTestProvider()

	created := execute(t, p, "terminal.create_or_get", map[string]interface{}{})
	sid := created.Data["session_id"].(string)

	result := execute(t, p, "terminal.send_input", map[string]interface{}{
		"session_id": sid,
		"text":       "echo hi",
	})
	require.True(t, result.Success)
	assert.Equal(t, "echo hi", result.Data["sent_text"])
	assert.Equal(t, []string{"echo hi"}, driver.inputs[sid])
}

func TestSendInputMissingParams(t *testing.T) {
	p, _ := newTestProvider()

	_, err := p.Execute(context.Background(), "terminal.send_input", map[string]interface{}{}, nil)
	assert.Error(t, err)

	_, err = p.Execute(context.Background(), "terminal.send_input", map[string]interface{}{
		"session_id": "term_x",
	}, nil)
	assert.Error(t, err)
}

func TestSendInputUnknownSession(t *testing.T) {
	p, _ := newTestProvider()

	result := execute(t, p, "terminal.send_input", map[string]interface{}{
		"session_id": "term_missing",
		"text":       "echo hi",
	})
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "not found")
	assert.Contains(t, result.Data["suggestion"], "terminal.create_or_get")
}

func TestGetOutput(t *testing.T) {
	p, driver := newTestProvider()

	created := execute(t, p, "terminal.create_or_get", map[string]interface{}{"name": "dev"})
	sid := created.Data["session_id"].(string)
	driver.outputs[sid] = "$ echo hi\nhi\n"

	result := execute(t, p, "terminal.get_output", map[string]interface{}{"session_id": sid})
	require.True(t, result.Success)
	assert.Equal(t, "$ echo hi\nhi\n", result.Data["output"])
	assert.Equal(t, "dev", result.Data["terminal_name"])
	assert.Equal(t, 100, result.Data["lines_requested"], "default line count")
}

func TestGetOutputClampsLines(t *testing.T) {
	p, driver := newTestProvider()

	created := execute(t, p, "terminal.create_or_get", map[string]interface{}{})
	sid := created.Data["session_id"].(string)

	result := execute(t, p, "terminal.get_output", map[string]interface{}{
		"session_id": sid,
		"lines":      float64(5000),
	})
	assert.Equal(t, 1000, result.Data["lines_requested"])
	assert.Equal(t, 1000, driver.lastN)

	result = execute(t, p, "terminal.get_output", map[string]interface{}{
		"session_id": sid,
		"lines":      float64(-3),
	})
	assert.Equal(t, 1, result.Data["lines_requested"])
	assert.Equal(t, 1, driver.lastN)
}

func TestGetOutputConfiguredCap(t *testing.T) {
	driver := newStubDriver()
	mgr := session.NewManager(driver, logging.NewNop())
	p := NewProvider(mgr, 200)

	created := execute(t, p, "terminal.create_or_get", map[string]interface{}{})
	sid := created.Data["session_id"].(string)

	result := execute(t, p, "terminal.get_output", map[string]interface{}{
		"session_id": sid,
		"lines":      float64(5000),
	})
	assert.Equal(t, 200, result.Data["lines_requested"])
}

func TestGetOutputUnknownSession(t *testing.T) {
	p, _ := newTestProvider()

	result := execute(t, p, "terminal.get_output", map[string]interface{}{
		"session_id": "term_missing",
	})
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "not found")
}

func TestList(t *testing.T) {
	p, driver := newTestProvider()

	a := execute(t, p, "terminal.create_or_get", map[string]interface{}{"name": "a"})
	execute(t, p, "terminal.create_or_get", map[string]interface{}{"name": "b"})

	driver.alive[a.Data["session_id"].(string)] = false

	result := execute(t, p, "terminal.list", map[string]interface{}{})
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Data["count"])

	terminals := result.Data["terminals"].([]map[string]interface{})
	require.Len(t, terminals, 1)
	assert.Equal(t, "b", terminals[0]["name"])
}

func TestClose(t *testing.T) {
	p, _ := newTestProvider()

	created := execute(t, p, "terminal.create_or_get", map[string]interface{}{})
	sid := created.Data["session_id"].(string)

	result := execute(t, p, "terminal.close", map[string]interface{}{"session_id": sid})
	require.True(t, result.Success)
	assert.Contains(t, result.Data["message"], "has been closed")

	again := execute(t, p, "terminal.close", map[string]interface{}{"session_id": sid})
	assert.False(t, again.Success)
	require.NotNil(t, again.Error)
	assert.Contains(t, *again.Error, "not found or already closed")
}
