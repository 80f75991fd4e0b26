package cmd

import (
	"database/sql"
	"log"

	"github.com/spf13/cobra"

	"github.com/elliottsj/botbot-web/internal/application/config"
	"github.com/elliottsj/botbot-web/internal/domain/models"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres/repository"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

var (
	seedServer   string
	seedBotNick  string
	seedChannel  string
	seedUsername string
	seedPassword string
	seedEmail    string
)

// seedCmd bootstraps a fresh database: one chatbot, one public channel owned
// by a superuser account. Bots and channels are otherwise managed outside
// this service.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create an initial chatbot, channel and superuser",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := config.New()
		if err != nil {
			log.Fatalf("could not load config: %v", err)
		}

		dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			log.Fatalf("could not connect to postgres: %v", err)
		}
		defer dbConn.Close()

		userRepo := repository.NewUserRepo(dbConn)
		chatBotRepo := repository.NewChatBotRepo(dbConn)
		channelRepo := repository.NewChannelRepo(dbConn)
		membershipRepo := repository.NewMembershipRepo(dbConn)

		accountUsecase := usecase.NewAccountUsecase(userRepo)

		user, err := accountUsecase.CreateUser(ctx, seedUsername, seedEmail, seedPassword)
		if err != nil {
			log.Fatalf("could not create user: %v", err)
		}
		user.IsStaff = true
		user.IsSuperuser = true
		if err := userRepo.Update(ctx, user); err != nil {
			log.Fatalf("could not promote user: %v", err)
		}

		bot := models.NewChatBot(seedServer, seedBotNick)
		if err := chatBotRepo.Create(ctx, bot); err != nil {
			log.Fatalf("could not create chatbot: %v", err)
		}

		channel := models.NewChannel(bot.ID, seedChannel, true)
		channel.Slug = sql.NullString{String: slugify(seedChannel), Valid: true}
		if err := channelRepo.Create(ctx, channel); err != nil {
			log.Fatalf("could not create channel: %v", err)
		}

		membership := models.NewMembership(user.ID, channel.ID)
		membership.IsOwner = true
		membership.IsAdmin = true
		if err := membershipRepo.Create(ctx, membership); err != nil {
			log.Fatalf("could not create membership: %v", err)
		}

		log.Printf("seeded bot %s on %s with channel %s owned by %s", bot.Nick, bot.Server, channel.Name, user.Username)
	},
}

func slugify(channel string) string {
	slug := make([]rune, 0, len(channel))
	for _, r := range channel {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			slug = append(slug, r)
		case r >= 'A' && r <= 'Z':
			slug = append(slug, r+('a'-'A'))
		}
	}
	return string(slug)
}

func init() {
	seedCmd.Flags().StringVar(&seedServer, "server", "irc.libera.chat:6697", "IRC server the bot connects to")
	seedCmd.Flags().StringVar(&seedBotNick, "bot-nick", "botbot", "nick of the chatbot")
	seedCmd.Flags().StringVar(&seedChannel, "channel", "#botbot", "name of the initial public channel")
	seedCmd.Flags().StringVar(&seedUsername, "username", "admin", "username of the superuser")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "password of the superuser")
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "email of the superuser")

	_ = seedCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(seedCmd)
}
