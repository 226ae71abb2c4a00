package importer

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/term"
)

const (
	affirmativeShortResponseConstant = "y"
	affirmativeLongResponseConstant  = "yes"
	lineTerminatorConstant           = "\n"
)

// TerminalDetector reports whether a file descriptor is attached to a terminal.
type TerminalDetector func(fileDescriptor int) bool

// SecretReader reads a line from a terminal without echoing it.
type SecretReader func(fileDescriptor int) ([]byte, error)

type fileDescriptorProvider interface {
	Fd() uintptr
}

type flushableWriter interface {
	Flush() error
}

// ConsolePrompter asks questions on an output stream and reads answers from an input stream.
type ConsolePrompter struct {
	input            io.Reader
	reader           *bufio.Reader
	writer           io.Writer
	terminalDetector TerminalDetector
	secretReader     SecretReader
}

// NewConsolePrompter constructs a prompter reading from input and writing prompts to output.
func NewConsolePrompter(input io.Reader, output io.Writer) *ConsolePrompter {
	return NewConsolePrompterWithTerminal(input, output, term.IsTerminal, term.ReadPassword)
}

// NewConsolePrompterWithTerminal constructs a prompter with explicit terminal capabilities.
func NewConsolePrompterWithTerminal(input io.Reader, output io.Writer, terminalDetector TerminalDetector, secretReader SecretReader) *ConsolePrompter {
	return &ConsolePrompter{
		input:            input,
		reader:           bufio.NewReader(input),
		writer:           output,
		terminalDetector: terminalDetector,
		secretReader:     secretReader,
	}
}

// Confirm writes the prompt and interprets affirmative responses (y/yes). Anything else declines.
func (prompter *ConsolePrompter) Confirm(prompt string) (bool, error) {
	response, readError := prompter.ReadLine(prompt)
	if readError != nil {
		return false, readError
	}

	switch strings.ToLower(response) {
	case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
		return true, nil
	default:
		return false, nil
	}
}

// ReadLine writes the prompt and returns the trimmed answer. End of input yields an empty answer.
func (prompter *ConsolePrompter) ReadLine(prompt string) (string, error) {
	if writeError := prompter.writePrompt(prompt); writeError != nil {
		return "", writeError
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return "", readError
	}
	return strings.TrimSpace(response), nil
}

// ReadSecret writes the prompt and reads the answer without echo when the input is a terminal.
func (prompter *ConsolePrompter) ReadSecret(prompt string) (string, error) {
	fileDescriptor, interactive := prompter.terminalDescriptor()
	if !interactive {
		return prompter.ReadLine(prompt)
	}

	if writeError := prompter.writePrompt(prompt); writeError != nil {
		return "", writeError
	}
	secret, readError := prompter.secretReader(fileDescriptor)
	if writeError := prompter.writePrompt(lineTerminatorConstant); writeError != nil {
		return "", writeError
	}
	if readError != nil {
		return "", readError
	}
	return strings.TrimSpace(string(secret)), nil
}

func (prompter *ConsolePrompter) terminalDescriptor() (int, bool) {
	if prompter.terminalDetector == nil || prompter.secretReader == nil {
		return 0, false
	}
	provider, hasDescriptor := prompter.input.(fileDescriptorProvider)
	if !hasDescriptor {
		return 0, false
	}
	fileDescriptor := int(provider.Fd())
	return fileDescriptor, prompter.terminalDetector(fileDescriptor)
}

func (prompter *ConsolePrompter) writePrompt(prompt string) error {
	if prompter.writer == nil {
		return nil
	}
	if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
		return writeError
	}
	if flushable, canFlush := prompter.writer.(flushableWriter); canFlush {
		return flushable.Flush()
	}
	return nil
}
