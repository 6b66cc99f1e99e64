package prompter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// PromptString prompts the user for a line of input
func PromptString(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// PromptPassword prompts the user for a password without echoing
func PromptPassword(label string) (string, error) {
	fmt.Print(label)

	bytepw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}

	fmt.Println()

	return string(bytepw), nil
}

// PromptConfirm prompts the user for a yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	fmt.Print(label + " (y/n) ")
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response := strings.TrimSpace(strings.ToLower(input))
	return response == "y" || response == "yes", nil
}

// PromptMultilineString reads lines until the first empty line
func PromptMultilineString(label string, maxLines int) (string, error) {
	fmt.Printf("%s (empty line to finish):\n", label)

	reader := bufio.NewReader(os.Stdin)
	var lines []string

	for i := 0; i < maxLines; i++ {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}

		trimmed := strings.TrimRight(line, "\n")
		if trimmed == "" {
			break
		}
		lines = append(lines, trimmed)
	}

	return strings.Join(lines, "\n"), nil
}
