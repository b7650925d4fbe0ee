/* handlers.go
 * Contains the command handlers. Each accepts the DiscordSession interface so it can be tested without Discord.
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"bracket-bot/api/api"
	"bracket-bot/api/shared"
)

// send posts a response, split over several messages if it is too long
func (b *Bot) send(session DiscordSession, channelID string, content string) {
	for _, part := range chunk(content) {
		if _, err := session.ChannelMessageSend(channelID, part); err != nil {
			b.Log.Errorw("failed to send message", "channel", channelID, "error", err)
			return
		}
	}
}

func (b *Bot) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.Timeout)
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Bracket Bot v1.0\n")
	res.WriteString("`$details`: shows the pool, where its results come from and how far the tournament has progressed\n")
	res.WriteString("`$set <entry id or entry link>`: sets your bracket from your bracket challenge entry\n")
	res.WriteString("`$check`: shows your points round by round and the best score you can still reach\n")
	res.WriteString("`$leaderboard`: shows the pool's standings, each user's best possible score and in how many of the remaining scenarios they finish first\n")
	res.WriteString("`$teams`: shows every team in the first round\n")
	res.WriteString("`$whatif <team>`: shows the best score each user can reach if that team wins the tournament. Names with spaces need to be wrapped in \" (e.g. \"North Carolina\")\n")
	b.send(session, message.ChannelID, res.String())
}

// detailsHandler handles the $details command
func (b *Bot) detailsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := b.commandContext()
	defer cancel()

	info, err := b.APIPtr.GetPoolInfo(ctx)
	if err != nil {
		b.send(session, message.ChannelID, b.errorResponse(err, "An unexpected error occurred"))
		return
	}
	b.send(session, message.ChannelID, info)
}

// setBracketHandler handles the $set command
func (b *Bot) setBracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := b.commandContext()
	defer cancel()

	user := shared.User{UserId: message.Author.ID, Username: message.Author.Username}
	args, err := splitArgs(message.Content)
	if err != nil || len(args) != 1 {
		b.send(session, message.ChannelID, "Usage: `$set <entry id or entry link>`")
		return
	}

	res := fmt.Sprintf("%s's bracket has been updated", user.Username)
	err = b.APIPtr.SetUserBracket(ctx, user, args[0])
	if err != nil {
		res = fmt.Sprintf("An error occurred setting %s's bracket: %s", user.Username, b.errorResponse(err, err.Error()))
	}
	b.send(session, message.ChannelID, res)
}

// checkBracketHandler handles the $check command
func (b *Bot) checkBracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := b.commandContext()
	defer cancel()

	user := shared.User{UserId: message.Author.ID, Username: message.Author.Username}
	res, err := b.APIPtr.CheckBracket(ctx, user)
	if errors.Is(err, api.ErrNoEntry) {
		res = fmt.Sprintf("%s does not have a bracket stored. Use $set to set your bracket", user.Username)
	} else if err != nil {
		res = b.errorResponse(err, fmt.Sprintf("An error occurred checking %s's bracket", user.Username))
	}
	b.send(session, message.ChannelID, res)
}

// leaderboardHandler handles the $leaderboard command, generating the leaderboard first if none is stored
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.APIPtr.GetLeaderboard()
	if errors.Is(err, api.ErrNoLeaderboard) {
		ctx, cancel := b.commandContext()
		defer cancel()
		if _, err = b.APIPtr.GenerateLeaderboard(ctx); err == nil {
			res, err = b.APIPtr.GetLeaderboard()
		}
	}
	if err != nil {
		res = b.errorResponse(err, "An error occurred getting the leaderboard")
	}
	b.send(session, message.ChannelID, res)
}

// teamsHandler handles the $teams command
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := b.commandContext()
	defer cancel()

	teams, err := b.APIPtr.GetTeams(ctx)
	if err != nil {
		b.send(session, message.ChannelID, b.errorResponse(err, "An error occurred getting the teams list"))
		return
	}

	var res strings.Builder
	res.WriteString("Teams in this pool are:\n")
	for _, team := range teams {
		fmt.Fprintf(&res, "- %s\n", team)
	}
	b.send(session, message.ChannelID, res.String())
}

// whatIfHandler handles the $whatif command
func (b *Bot) whatIfHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) != 1 {
		b.send(session, message.ChannelID, "Usage: `$whatif <team>`, e.g. `$whatif \"North Carolina\"`")
		return
	}

	ctx, cancel := b.commandContext()
	defer cancel()

	res, err := b.APIPtr.WhatIf(ctx, args[0])
	if errors.Is(err, api.ErrUnknownTeam) {
		res = fmt.Sprintf("%s is not a team that can still win the tournament. Use $teams to see every team", args[0])
	} else if errors.Is(err, api.ErrTooEarly) {
		res = fmt.Sprintf("%s can still win, but it is too early to work out its scenarios. Try again after the next round", args[0])
	} else if err != nil {
		res = b.errorResponse(err, "An error occurred working out the scenarios")
	}
	b.send(session, message.ChannelID, res)
}

// errorResponse maps errors users can act on to a message and logs everything else
func (b *Bot) errorResponse(err error, fallback string) string {
	switch {
	case errors.Is(err, api.ErrNoResults):
		return "No results are available for this pool yet"
	case errors.Is(err, api.ErrDifferentBracket):
		return "that bracket was not drawn from this pool's first round"
	case errors.Is(err, context.DeadlineExceeded):
		return "the request took too long, try again later"
	}
	b.Log.Errorw("command failed", "error", err)
	return fallback
}

// newMessageHandler routes messages to the matching handler
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$details"):
		b.detailsHandler(session, message)

	case startsWith(message.Content, "$set"):
		b.setBracketHandler(session, message)

	case startsWith(message.Content, "$check"):
		b.checkBracketHandler(session, message)

	case startsWith(message.Content, "$leaderboard"):
		b.leaderboardHandler(session, message)

	case startsWith(message.Content, "$teams"):
		b.teamsHandler(session, message)

	case startsWith(message.Content, "$whatif"):
		b.whatIfHandler(session, message)
	}
}
