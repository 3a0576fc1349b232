package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-client/internal/auth"
	"chat-client/internal/config"
	"chat-client/internal/handlers"
	"chat-client/internal/services"
	"chat-client/internal/store"
	"chat-client/internal/view"
	"chat-client/internal/websocket"
	"chat-client/pkg/logger"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "chat-client",
	Short:        "Terminal client for rooms, broadcasts and private messages",
	SilenceUsage: true,
	RunE:         runClient,
}

var (
	flagUsername       string
	flagServerURL      string
	flagLogLevel       string
	flagClearStaleRoom bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagUsername, "username", "u", os.Getenv("CHAT_USERNAME"), "username to log in as (env CHAT_USERNAME)")
	flags.StringVar(&flagServerURL, "server", "", "chat server base URL (overrides SERVER_URL)")
	flags.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	flags.BoolVar(&flagClearStaleRoom, "clear-stale-room", false, "forget the current room once the server stops listing it")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runClient(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	logger.SetGlobal(logger.NewConsole(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Login
	authService := auth.NewService(cfg)
	session, err := authService.Login(ctx, flagUsername)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := auth.CheckExpiry(session, time.Now()); err != nil {
		return err
	}
	logger.Info("logged in as %s (%s)", session.Username(), session.Role())

	// Connect
	client, err := websocket.Dial(ctx, cfg.Transport, session.Token())
	if err != nil {
		return err
	}
	defer client.Close()

	// Stores
	policy := store.KeepStale
	if cfg.Rooms.ClearStaleRoom {
		policy = store.ClearStale
	}
	rooms := store.NewRoomState(policy)
	presence := store.NewPresence()
	messages := store.NewMessageLog()

	// Services and router
	router := websocket.NewRouter(client, rooms, presence, messages)
	roomService := services.NewRoomService(rooms, client)
	messageService := services.NewMessageService(rooms, client)

	out := cmd.OutOrStdout()
	format := view.NewFormatter(lipgloss.NewRenderer(out), session.Username())
	commands := handlers.NewCommandHandlers(router, rooms, presence, messages, roomService, messageService, format, out)
	router.OnApplied(commands.OnApplied)

	sessionCtx, logout := context.WithCancel(ctx)
	defer logout()
	if err := router.Start(sessionCtx); err != nil {
		return err
	}
	fmt.Fprintln(out, "type /help for commands")

	go readInput(sessionCtx, cmd.InOrStdin(), commands, logout)

	<-router.Done()
	if err := client.Err(); err != nil {
		return err
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("server") {
		wsURL, err := config.WebSocketURL(flagServerURL)
		if err != nil {
			return err
		}
		cfg.Server.URL = flagServerURL
		cfg.Transport.URL = wsURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("clear-stale-room") {
		cfg.Rooms.ClearStaleRoom = flagClearStaleRoom
	}
	return nil
}

// readInput feeds stdin lines to the command handlers until /quit or EOF,
// then ends the session.
func readInput(ctx context.Context, in io.Reader, commands *handlers.CommandHandlers, logout context.CancelFunc) {
	defer logout()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := commands.Handle(ctx, scanner.Text())
		if errors.Is(err, handlers.ErrQuit) {
			return
		}
		if err != nil {
			commands.PrintError(err)
		}
	}
}
