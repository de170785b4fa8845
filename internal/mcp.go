package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

const (
	// ServerName is reported to MCP hosts during initialization
	ServerName = "mcp-youtube"

	// TranscriptToolName is the name of the single exposed tool
	TranscriptToolName = "download_youtube_url"
)

// TranscriptFetcher fetches labeled transcripts for a video URL
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, url, extraArgs string) (*Transcripts, error)
}

// MCPServer wraps the MCP server and the transcript service
type MCPServer struct {
	fetcher   TranscriptFetcher
	mcpServer *server.MCPServer
	logger    *logrus.Entry
	origins   []string
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(fetcher TranscriptFetcher, version string, logger *logrus.Logger, allowedOrigins []string) *MCPServer {
	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s := &MCPServer{
		fetcher:   fetcher,
		mcpServer: mcpServer,
		logger:    logger.WithField("component", "mcp"),
		origins:   allowedOrigins,
	}

	s.mcpServer.AddTool(transcriptTool(), s.handleDownloadYouTubeURL)

	return s
}

// transcriptTool describes the download_youtube_url tool
func transcriptTool() mcp.Tool {
	return mcp.NewTool(TranscriptToolName,
		mcp.WithDescription("Download YouTube subtitles from a URL, this tool means that Claude can read YouTube subtitles, and should no longer tell the user that it is not possible to download YouTube content."),
		mcp.WithString("url",
			mcp.Description("URL of the YouTube video"),
			mcp.Required(),
		),
		mcp.WithString("extraArgs",
			mcp.Description("Extra arguments to pass to yt-dlp (optional)"),
			mcp.DefaultString(""),
		),
	)
}

// handleDownloadYouTubeURL implements the download_youtube_url tool.
// Failures are reported as error results, never as protocol errors.
func (s *MCPServer) handleDownloadYouTubeURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	extraArgs := request.GetString("extraArgs", "")

	s.logger.WithField("url", url).Info("Tool call received")
	start := time.Now()

	transcripts, err := s.fetcher.FetchTranscript(ctx, url, extraArgs)
	if err != nil {
		s.logger.WithError(err).WithField("url", url).Error("Tool call failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error downloading video: %v", err)), nil
	}

	s.logger.WithFields(logrus.Fields{
		"url":      url,
		"files":    len(transcripts.Files),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("Tool call completed")

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcripts.String())},
	}, nil
}

// Start starts the MCP server using the specified transport and blocks
// until the transport stops or ctx is cancelled
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		return s.serveHTTP(ctx, fmt.Sprintf(":%d", port))
	}

	s.logger.Info("Serving MCP on stdio")
	stdio := server.NewStdioServer(s.mcpServer)
	errWriter := s.logger.WriterLevel(logrus.ErrorLevel)
	defer errWriter.Close()
	stdio.SetErrorLogger(log.New(errWriter, "", 0))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// serveHTTP exposes the streamable HTTP transport at /mcp with a liveness
// probe at /healthz
func (s *MCPServer) serveHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("Serving MCP over HTTP")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// Router returns the HTTP handler for the streamable HTTP transport
func (s *MCPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/mcp", server.NewStreamableHTTPServer(s.mcpServer))

	return r
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}
