package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/JaimeStill/porcus-tools/internal/tools"
)

// maxMessageSize bounds a single inbound line.
const maxMessageSize = 4 * 1024 * 1024

// Info identifies the server in the initialize handshake.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Server answers protocol requests using a tools.System.
type Server struct {
	sys    tools.System
	info   Info
	logger *slog.Logger

	writeMu sync.Mutex
	enc     *json.Encoder
	calls   sync.WaitGroup
}

// New creates a Server.
func New(sys tools.System, info Info, logger *slog.Logger) *Server {
	return &Server{
		sys:    sys,
		info:   info,
		logger: logger.With("system", "mcp"),
	}
}

// Run reads requests from r until EOF and writes responses to w.
// Each tools/call runs on its own goroutine, so responses may arrive out of
// request order; Run waits for in-flight calls before returning. A tools/call
// sent as a notification still runs but gets no response.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	s.enc = json.NewEncoder(w)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	s.logger.Info("server started", "name", s.info.Name, "version", s.info.Version)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			s.write(failure(nil, CodeParseError, "Parse error", err.Error()))
			continue
		}

		if req.Method == "" {
			s.write(failure(req.ID, CodeInvalidRequest, "Invalid Request", "method required"))
			continue
		}

		if req.Method == "tools/call" {
			s.calls.Go(func() {
				resp := s.handleToolsCall(ctx, &req)
				if req.ID != nil {
					s.write(resp)
				}
			})
			continue
		}

		if resp := s.handle(&req); resp != nil {
			s.write(resp)
		}
	}

	s.calls.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	s.logger.Info("input closed")
	return nil
}

func (s *Server) write(resp *Response) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.enc.Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// handle routes every method except tools/call. Notifications return nil.
func (s *Server) handle(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return result(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]any{
				"tools":   map[string]any{},
				"prompts": map[string]any{},
			},
			"serverInfo": s.info,
		})
	case "notifications/initialized":
		return nil
	case "ping":
		return result(req.ID, map[string]any{})
	case "tools/list":
		return result(req.ID, map[string]any{"tools": Tools()})
	case "prompts/list":
		return result(req.ID, map[string]any{"prompts": Prompts()})
	case "prompts/get":
		return s.handlePromptsGet(req)
	default:
		if req.ID == nil {
			return nil
		}
		return failure(req.ID, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return failure(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	tool, ok := lookupTool(params.Name)
	if !ok {
		return failure(req.ID, CodeInvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name), nil)
	}

	s.logger.Debug("tool call", "tool", params.Name, "id", req.ID)

	env, err := tool.run(ctx, s.sys, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err, "kind", tools.KindOf(err))
		env = tools.ErrorEnvelope(err)
	}

	text, err := json.Marshal(env)
	if err != nil {
		return failure(req.ID, CodeInternalError, "Tool execution failed", err.Error())
	}

	return result(req.ID, ToolResult{
		Content: []Content{{Type: "text", Text: string(text)}},
		IsError: !env.Success(),
	})
}

func (s *Server) handlePromptsGet(req *Request) *Response {
	var params promptGetParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return failure(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	prompt, ok := lookupPrompt(params.Name)
	if !ok {
		return failure(req.ID, CodeInvalidParams, fmt.Sprintf("Unknown prompt: %s", params.Name), nil)
	}

	text, err := prompt.render(params.Arguments)
	if err != nil {
		return failure(req.ID, CodeInvalidParams, "Invalid prompt arguments", err.Error())
	}

	return result(req.ID, PromptResult{
		Description: prompt.Description,
		Messages: []PromptMessage{
			{Role: "user", Content: Content{Type: "text", Text: text}},
		},
	})
}
