package script

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrUnknownAction is returned for script lines with an unsupported action.
var ErrUnknownAction = errors.New("unknown script action")

// defaultBufferSize is the longest script line accepted by default.
const defaultBufferSize = 1024 * 1024

// Parser turns a JSON-lines script into a stream of actions.
//
// The channel returned by Parse is closed when the reader is exhausted or a
// read error occurs. Blank lines are skipped. A line that does not parse is
// still emitted, with [Action.Err] set, so the consumer can stop on it.
type Parser interface {
	Parse(reader io.Reader) <-chan Action
}

// DefaultParser implements [Parser] with a line scanner.
//
// Create instances using [NewParser] to get the default buffer size.
type DefaultParser struct {
	// BufferSize is the maximum size in bytes for a single line.
	// Defaults to 1MB if not set or <= 0.
	BufferSize int
}

// NewParser creates a [DefaultParser] with default settings.
func NewParser() *DefaultParser {
	return &DefaultParser{BufferSize: defaultBufferSize}
}

// Parse reads the script on a goroutine and emits one [Action] per non-blank
// line. Lines rejected by [ParseSingle], and a read error such as an
// over-long line, arrive as an Action with Err set.
//
// The goroutine exits once the reader is exhausted, so callers that stop
// early must keep draining the channel (see [Play]).
func (p *DefaultParser) Parse(reader io.Reader) <-chan Action {
	actions := make(chan Action)

	go func() {
		defer close(actions)

		scanner := bufio.NewScanner(reader)
		bufSize := p.BufferSize
		if bufSize <= 0 {
			bufSize = defaultBufferSize
		}
		// The scanner accepts tokens up to the larger of cap(buf) and max.
		scanner.Buffer(make([]byte, 0, min(64*1024, bufSize)), bufSize)

		line := 0
		for scanner.Scan() {
			line++
			text := scanner.Text()
			if text == "" {
				continue
			}

			a, err := ParseSingle(text)
			if err != nil {
				a = Action{Err: err}
			}
			a.Line = line
			actions <- a
		}
		if err := scanner.Err(); err != nil {
			actions <- Action{Line: line + 1, Err: fmt.Errorf("failed to read script: %w", err)}
		}
	}()

	return actions
}

// ParseSingle parses one script line.
//
// Unlike [Parser.Parse], it reports malformed JSON, unknown actions and set
// actions without a field as errors.
func ParseSingle(line string) (Action, error) {
	var a Action
	if err := json.Unmarshal([]byte(line), &a); err != nil {
		return Action{}, fmt.Errorf("failed to parse script line: %w", err)
	}
	if !a.Type.IsValid() {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	if a.Type == ActionSet && a.Field == "" {
		return Action{}, errors.New("set action requires a field")
	}
	return a, nil
}
