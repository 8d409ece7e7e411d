package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/pixelbot/pixelbot/internal/bot"
	"github.com/pixelbot/pixelbot/internal/platform"
	"github.com/pixelbot/pixelbot/internal/version"
	"github.com/pixelbot/pixelbot/internal/vision"
)

// mcpServer wraps one bot session behind the MCP tool surface. The bot
// is stateful (selected and activated window persist across tool calls)
// and single-owner, so every handler takes botMu.
type mcpServer struct {
	bot      *bot.Bot
	provider *platform.Provider
	botMu    sync.Mutex
	mcp      *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all pixelbot tools.
func newMCPServer() (*mcpServer, error) {
	b, provider, err := newBot()
	if err != nil {
		return nil, err
	}

	s := &mcpServer{
		bot:      b,
		provider: provider,
	}

	s.mcp = mcpserver.NewMCPServer(
		"pixelbot",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// list_windows
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List on-screen windows front-to-back with their id, title, and owning application"),
		),
		s.handleListWindows,
	)

	// select_window
	s.mcp.AddTool(
		mcp.NewTool("select_window",
			mcp.WithDescription("Select the window subsequent tools operate on, by title or id"),
			mcp.WithString("window", mcp.Description("Window title substring (prefix with ~ for regexp)")),
			mcp.WithNumber("id", mcp.Description("Window id")),
		),
		s.handleSelectWindow,
	)

	// activate_window
	s.mcp.AddTool(
		mcp.NewTool("activate_window",
			mcp.WithDescription("Bring the selected window to the front so it can receive input"),
			mcp.WithString("window", mcp.Description("Window title substring (prefix with ~ for regexp)")),
			mcp.WithNumber("id", mcp.Description("Window id")),
		),
		s.handleActivateWindow,
	)

	// find_image
	s.mcp.AddTool(
		mcp.NewTool("find_image",
			mcp.WithDescription("Search the selected window for a template image and return the match rectangle and confidence"),
			mcp.WithString("template", mcp.Description("Path to the template PNG or BMP"), mcp.Required()),
			mcp.WithNumber("threshold", mcp.Description("Minimum confidence 0-1 (default from config)")),
		),
		s.handleFindImage,
	)

	// wait_for_image
	s.mcp.AddTool(
		mcp.NewTool("wait_for_image",
			mcp.WithDescription("Repeatedly search the selected window until the template appears or the timeout elapses"),
			mcp.WithString("template", mcp.Description("Path to the template PNG or BMP"), mcp.Required()),
			mcp.WithNumber("threshold", mcp.Description("Minimum confidence 0-1 (default from config)")),
			mcp.WithNumber("timeout-ms", mcp.Description("Give up after this many milliseconds (default 5000)")),
		),
		s.handleWaitForImage,
	)

	// click_image
	s.mcp.AddTool(
		mcp.NewTool("click_image",
			mcp.WithDescription("Locate a template image in the activated window and click its center"),
			mcp.WithString("template", mcp.Description("Path to the template PNG or BMP"), mcp.Required()),
			mcp.WithNumber("threshold", mcp.Description("Minimum confidence 0-1 (default from config)")),
		),
		s.handleClickImage,
	)

	// type_text
	s.mcp.AddTool(
		mcp.NewTool("type_text",
			mcp.WithDescription("Type text into the activated window, honoring the active keyboard layout"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithBoolean("enter", mcp.Description("Press Return after typing")),
		),
		s.handleTypeText,
	)

	// press_key
	s.mcp.AddTool(
		mcp.NewTool("press_key",
			mcp.WithDescription("Press and release a key in the activated window (e.g. return, tab, escape, up, a)"),
			mcp.WithString("key", mcp.Description("Key name"), mcp.Required()),
		),
		s.handlePressKey,
	)
}

// selectFromParams applies window/id params to the bot when present.
// With neither present the current selection is kept.
func (s *mcpServer) selectFromParams(params map[string]interface{}) error {
	window := stringParam(params, "window", "")
	id := intParam(params, "id", 0)
	switch {
	case window != "":
		return s.bot.SetWindow(bot.ParseNameSelector(window))
	case id != 0:
		return s.bot.SetWindow(bot.ByID(id))
	default:
		return nil
	}
}

func yamlResult(v interface{}) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(b))
}

func (s *mcpServer) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.botMu.Lock()
	defer s.botMu.Unlock()

	windows, err := s.provider.Registry.Enumerate()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(windows), nil
}

func (s *mcpServer) handleSelectWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.botMu.Lock()
	defer s.botMu.Unlock()

	if err := s.selectFromParams(params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	win, ok := s.bot.Window()
	if !ok {
		return mcp.NewToolResultError("no window selected (pass window or id)"), nil
	}
	return yamlResult(win), nil
}

func (s *mcpServer) handleActivateWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.botMu.Lock()
	defer s.botMu.Unlock()

	if err := s.selectFromParams(params); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.bot.ActivateWindow(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	win, _ := s.bot.Window()
	return yamlResult(win), nil
}

func (s *mcpServer) handleFindImage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	tpl, err := vision.LoadTemplate(stringParam(params, "template", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.botMu.Lock()
	defer s.botMu.Unlock()

	m, err := s.bot.Find(tpl)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(m), nil
}

func (s *mcpServer) handleWaitForImage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	tpl, err := vision.LoadTemplate(stringParam(params, "template", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	threshold := float64Param(params, "threshold", 0)
	timeout := time.Duration(intParam(params, "timeout-ms", 5000)) * time.Millisecond

	s.botMu.Lock()
	defer s.botMu.Unlock()

	m, err := s.bot.WaitForImage(ctx, tpl, threshold, timeout)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(m), nil
}

func (s *mcpServer) handleClickImage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	tpl, err := vision.LoadTemplate(stringParam(params, "template", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	threshold := float64Param(params, "threshold", 0)

	s.botMu.Lock()
	defer s.botMu.Unlock()

	p, err := s.bot.ClickOnImage(tpl, threshold)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(map[string]int{"x": p.X, "y": p.Y}), nil
}

func (s *mcpServer) handleTypeText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")

	s.botMu.Lock()
	defer s.botMu.Unlock()

	var err error
	if boolParam(params, "enter", false) {
		err = s.bot.Writeln(text)
	} else {
		err = s.bot.TypeText(text)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("ok"), nil
}

func (s *mcpServer) handlePressKey(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	key, err := platform.ParseKey(stringParam(params, "key", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.botMu.Lock()
	defer s.botMu.Unlock()

	if err := s.bot.KeyClick(key); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("ok"), nil
}

// Param helpers tolerate the loose typing of MCP JSON arguments.

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

func float64Param(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := params[key].(float64); ok {
		return v
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
