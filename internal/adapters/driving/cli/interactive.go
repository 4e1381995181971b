package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gichul/internal/core/domain"
)

// isInteractive reports whether stdin is a terminal. Replaced in tests.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

const interactiveHelp = `Commands:
  <keyword>           generate practice questions (e.g. SQL, 정규화, OSI)
  <category>:<keyword> restrict references to one category (e.g. 데이터베이스:정규화)
  /setup              collect and index questions
  /count              show the number of indexed documents
  /categories         list categories
  /help               show this help
  /quit               exit`

func runInteractive(cmd *cobra.Command, _ []string) error {
	if practiceService == nil {
		return errors.New("practice service not configured")
	}

	cmd.Println("정보처리기사 실기 practice question generator")
	cmd.Println()
	cmd.Println(interactiveHelp)
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	if count, err := practiceService.Count(cmd.Context()); err == nil && count == 0 {
		cmd.Println("The index is empty.")
		if isInteractive() && confirm(cmd, reader, "Run setup now? (y/n): ") {
			if err := runSetupPipeline(cmd, domain.SetupRequest{}); err != nil {
				cmd.Printf("Error: %v\n", err)
			}
		} else {
			cmd.Println("Use /setup to build it later.")
		}
	}

	for {
		cmd.Print("\nKeyword> ")
		line, err := reader.ReadString('\n')
		input := strings.TrimSpace(line)
		if input == "" {
			if err != nil {
				cmd.Println()
				cmd.Println("Bye.")
				return nil
			}
			continue
		}

		if quit := handleInput(cmd, reader, input); quit {
			cmd.Println("Bye.")
			return nil
		}
		if err != nil {
			cmd.Println()
			cmd.Println("Bye.")
			return nil
		}
	}
}

// handleInput executes one line of the interactive session and reports
// whether the session should end.
func handleInput(cmd *cobra.Command, reader *bufio.Reader, input string) bool {
	switch input {
	case "/quit", "/exit":
		return true
	case "/setup":
		if err := runSetupPipeline(cmd, domain.SetupRequest{}); err != nil {
			cmd.Printf("Error: %v\n", err)
		}
	case "/count":
		if err := runCount(cmd, nil); err != nil {
			cmd.Printf("Error: %v\n", err)
		}
	case "/categories":
		printCategories(cmd)
	case "/help":
		cmd.Println(interactiveHelp)
	default:
		category, keyword := parseQuery(input)
		if keyword == "" {
			cmd.Println("Enter a keyword after the category, e.g. 데이터베이스:정규화")
			return false
		}
		req := domain.PracticeRequest{Keyword: keyword, Category: category}
		if err := searchAndGenerate(cmd, reader, req); err != nil {
			cmd.Printf("Error: %v\n", err)
		}
	}
	return false
}

// parseQuery splits "category:keyword" at the first colon. Input without
// a colon is a bare keyword.
func parseQuery(input string) (category, keyword string) {
	before, after, found := strings.Cut(input, ":")
	if !found {
		return "", strings.TrimSpace(input)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// confirm asks a yes/no question. y, yes and ㅛ (y on a Korean keyboard)
// count as yes.
func confirm(cmd *cobra.Command, reader *bufio.Reader, prompt string) bool {
	cmd.Print(prompt)
	switch strings.ToLower(readLine(reader)) {
	case "y", "yes", "ㅛ":
		return true
	default:
		return false
	}
}
