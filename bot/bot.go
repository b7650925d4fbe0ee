/* bot.go
 * Contains the Bot struct and the helpers shared by the command handlers. The Discord session itself is only
 * touched in bot_runtime.go; handlers.go works against the DiscordSession interface.
 */

package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-andiamo/splitter"
	"go.uber.org/zap"

	"bracket-bot/api/api"
)

// DefaultTimeout bounds the work done for a single command
const DefaultTimeout = 2 * time.Minute

// maxMessageLength is Discord's limit on the length of a message
const maxMessageLength = 2000

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Log      *zap.SugaredLogger
	Timeout  time.Duration
}

func NewBot(botToken string, apiPtr *api.API, logger *zap.SugaredLogger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("api is required but none was provided")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Log:      logger,
		Timeout:  DefaultTimeout,
	}, nil
}

// startsWith reports whether the message is the given command, either alone or followed by arguments
func startsWith(inputString string, command string) bool {
	if !strings.HasPrefix(inputString, command) {
		return false
	}
	rest := inputString[len(command):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\n'
}

var quotes = "\"“”"

// splitArgs splits a command message into its arguments, keeping quoted names such as "North Carolina" together
// Preconditions: Receives the full message content, including the command
// Postconditions: Returns the arguments after the command with quotes removed
func splitArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	var args []string
	for _, part := range parts[1:] {
		part = strings.Trim(strings.TrimSpace(part), quotes)
		if part != "" {
			args = append(args, part)
		}
	}
	return args, nil
}

// chunk splits a response into messages that fit Discord's length limit, breaking between lines where possible
func chunk(content string) []string {
	if len(content) <= maxMessageLength {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(content, "\n") {
		for len(line) > maxMessageLength {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, line[:maxMessageLength])
			line = line[maxMessageLength:]
		}
		if current.Len()+len(line) > maxMessageLength {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
