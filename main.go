package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/database"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	for _, l := range words.Levels() {
		log.Debug().Int("level", l.Number).Int("size", l.Size).Strs("words", l.Words).Msg("level loaded")
	}

	db, err := database.Open(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	srv := httpserver.New(store.NewMemoryStore(), db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting wordsearch server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
