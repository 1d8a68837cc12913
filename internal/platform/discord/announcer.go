package discord

import (
	"fmt"
	"time"

	"runboard/internal/platform/config"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const colorApproved = 0x2ecc71

// Announcer posts community announcements to a Discord channel over REST.
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

// NewAnnouncer returns nil when either the bot token or channel is unset.
func NewAnnouncer(cfg *config.Config) (*Announcer, error) {
	if cfg.DiscordBotToken == "" || cfg.DiscordAnnounceChannelID == "" {
		return nil, nil
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &Announcer{session: session, channelID: cfg.DiscordAnnounceChannelID}, nil
}

// RunApproved announces an approval. It never blocks the caller.
func (a *Announcer) RunApproved(username, challenge, videoURL string) {
	embed := &discordgo.MessageEmbed{
		Title:     "Run approved",
		Color:     colorApproved,
		URL:       videoURL,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Runner", Value: username, Inline: true},
			{Name: "Challenge", Value: challenge, Inline: true},
		},
	}
	go func() {
		if _, err := a.session.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
			logrus.WithError(err).WithField("channel", a.channelID).Warn("discord: announcement failed")
		}
	}()
}
