package main

import (
	"context"

	"github.com/rs/zerolog/log"

	historyx "github.com/naruebet/shopchat/agent/history"
	llmx "github.com/naruebet/shopchat/agent/llm"
	orchestratorx "github.com/naruebet/shopchat/agent/orchestrator"
	toolx "github.com/naruebet/shopchat/agent/tool"
	configx "github.com/naruebet/shopchat/pkg/config"
	_ "github.com/naruebet/shopchat/pkg/logger/autoload"
	openrouterx "github.com/naruebet/shopchat/pkg/openrouter"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	chatModel, err := llmx.NewChatModel(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize chat model")
	}

	// Out-of-band connectivity probe so a bad key or endpoint surfaces
	// at startup, not on the first customer turn.
	if client := openrouterx.NewClient(llmCfg.OpenRouter()); client != nil {
		if _, err := client.Models.List(ctx); err != nil {
			log.Warn().Err(err).Msg("model gateway probe failed")
		}
	}

	historyCfg := configx.MustNew[historyx.Config]("HISTORY")
	db, err := historyx.NewDB(*historyCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open history database")
	}
	defer db.Close()

	store := historyx.NewStore(db)
	if err := store.CreateTables(ctx); err != nil {
		log.Fatal().Err(err).Msg("provision history schema")
	}

	engineCfg := configx.MustNew[orchestratorx.Config]("ENGINE")
	engine, err := orchestratorx.New(store, chatModel, toolx.NewRunner, *engineCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build conversation engine")
	}
	_ = engine

	log.Info().
		Str("model", llmCfg.Model).
		Str("ecom_base_url", engineCfg.EcomBaseURL).
		Msg("shopping assistant engine ready")
}
