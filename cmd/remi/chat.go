package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"remi/internal/delivery"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold).SprintFunc()
	replyColor  = color.New(color.FgGreen).SprintFunc()
	dimColor    = color.New(color.FgHiBlack).SprintFunc()
)

func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newChatCmd() *cobra.Command {
	var ownerID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to remi in an interactive terminal session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(ownerID)
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "local", "owner id for this session")
	return cmd
}

// runChat is the terminal loop. Reminders fire into the same terminal through
// the console sink; the REPL itself stays synchronous.
func runChat(ownerID string) error {
	rt, err := buildRuntime(delivery.NewConsoleSink(os.Stdout))
	if err != nil {
		return err
	}
	defer rt.shutdown()

	if !isTTY() {
		return runPipedChat(rt, ownerID)
	}

	fmt.Println(promptColor("remi") + " — reminders, tasks, habits, and focus sessions")
	fmt.Println(dimColor("Try: 'remind me to stretch in 20 minutes' or 'start focus'. Type 'exit' to quit."))
	fmt.Println()

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".remi-history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptColor("> "),
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	ctx := context.Background()
	for {
		input, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(input) == 0 {
				fmt.Println(dimColor("Bye."))
				return nil
			}
			continue
		}
		if err == io.EOF {
			fmt.Println(dimColor("Bye."))
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" || input == "q" {
			fmt.Println(dimColor("Bye."))
			return nil
		}

		reply := rt.engine.HandleTurn(ctx, ownerID, input)
		fmt.Printf("%s\n\n", replyColor(reply.Text))
	}
}

// runPipedChat handles non-TTY stdin: one utterance per line, plain output.
func runPipedChat(rt *runtime, ownerID string) error {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply := rt.engine.HandleTurn(ctx, ownerID, line)
		fmt.Println(reply.Text)
	}
	return scanner.Err()
}
