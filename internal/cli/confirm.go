package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/agentsync/internal/ui"
)

// promptInput is where prompts read answers from.
var promptInput io.Reader = os.Stdin

// shouldPrompt reports whether questions can be asked: text output with a
// terminal on both ends.
var shouldPrompt = func() bool {
	if isJSONOutput() {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

// promptForConfirm asks a yes/no question. Without a terminal the answer is no.
func promptForConfirm(message string) bool {
	if !shouldPrompt() {
		return false
	}
	if message == "" {
		message = "Apply changes?"
	}
	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	response, _ := bufio.NewReader(promptInput).ReadString('\n')
	return parseConfirm(response)
}

func parseConfirm(response string) bool {
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// promptForChoice asks the user to pick one of options by number or name.
// An empty answer, or no terminal, picks nothing.
func promptForChoice(message string, options []string) (string, bool) {
	if !shouldPrompt() || len(options) == 0 {
		return "", false
	}
	fmt.Println(message)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	fmt.Printf("%s ", ui.Hint("Choice (empty to skip):"))
	response, _ := bufio.NewReader(promptInput).ReadString('\n')
	return parseChoice(response, options)
}

func parseChoice(response string, options []string) (string, bool) {
	response = strings.TrimSpace(strings.ToLower(response))
	if response == "" {
		return "", false
	}
	if n, err := strconv.Atoi(response); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(opt, response) {
			return opt, true
		}
	}
	return "", false
}
