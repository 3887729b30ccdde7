package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"community-bot/bot"
	"community-bot/command"
	"community-bot/config"
	"community-bot/database"
	"community-bot/gateway"
	"community-bot/handlers"
	"community-bot/ledger"
	"community-bot/replygen"
	"community-bot/router"
	"community-bot/utils"

	"github.com/spf13/viper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		log.Fatal("No bot token provided. Please set BOT_TOKEN in your .env or config file.")
	}

	db, err := database.InitDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer db.Close()

	b, err := bot.New(token)
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}
	utils.InitLogger(b.Session, cfg.Bot.AdminChannelID)

	gw := gateway.NewDiscord(b.Session)
	rt := router.New(db, gw, cfg)
	lg := ledger.New(db, cfg)

	// Without an API key the bot still answers, just with the fixed line.
	var gen replygen.Generator = replygen.Static{}
	if key := viper.GetString("GEMINI_API_KEY"); key != "" {
		g, gerr := replygen.NewGemini(key, cfg.Persona.Model)
		if gerr != nil {
			log.Printf("Persona replies disabled: %v", gerr)
		} else {
			gen = g
		}
	}

	commandsCfg, err := config.Commands()
	if err != nil {
		log.Fatalf("Error loading commands configuration: %v", err)
	}
	auth := utils.NewAuth(commandsCfg)

	b.RegisterCommands([]bot.Command{
		&command.FaucetCommand{Ledger: lg, Cfg: cfg},
		&command.BalanceCommand{Ledger: lg},
		&command.TierCommand{Ledger: lg, Cfg: cfg},
		&command.GrantCommand{Ledger: lg, Auth: auth},
		&command.AuntieCommand{Gen: gen},
		&command.PingCommand{},
	})

	deps := &handlers.Deps{Router: rt, Ledger: lg, Gen: gen, Gw: gw, Cfg: cfg}

	if err := b.Start(func(b *bot.Bot) { handlers.Register(b, deps) }); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}
	b.StartScheduler(db, cfg)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
}
