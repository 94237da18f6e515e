package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Nephro-Postcare-Assistant/agent/agents/responders"
	llmx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/llm"
	patientx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/patient"
	ragx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/rag"
	routerx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/router"
	statex "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/state"
	configx "github.com/tanpawarit/Nephro-Postcare-Assistant/pkg/config"
	groqx "github.com/tanpawarit/Nephro-Postcare-Assistant/pkg/groq"
	_ "github.com/tanpawarit/Nephro-Postcare-Assistant/pkg/logger/autoload"
	tavilyx "github.com/tanpawarit/Nephro-Postcare-Assistant/pkg/tavily"
)

const greeting = "Hello! I'm your post-discharge care assistant. What's your full name?"

type AppConfig struct {
	SessionStore string        `envconfig:"SESSION_STORE" split_words:"true" default:"memory"`
	TurnTimeout  time.Duration `envconfig:"TURN_TIMEOUT" split_words:"true" default:"60s"`
}

func main() {
	ingestPDF := flag.String("ingest", "", "build the knowledge index from the given PDF and exit")

	appCfg := configx.MustNew[AppConfig]("APP")
	llmCfg := configx.MustNew[llmx.Config]("GROQ")
	ragCfg := configx.MustNew[ragx.Config]("RAG")

	ctx := context.Background()

	embedClient := groqx.NewClient(groqx.Config{
		BaseURL: llmCfg.BaseURL,
		APIKey:  llmCfg.APIKey,
		Model:   llmCfg.Model,
	})
	if embedClient == nil {
		log.Fatal().Msg("failed to initialize embeddings client")
	}
	embedder := ragx.OpenAIEmbedder(embedClient, ragCfg.EmbeddingModel)

	if *ingestPDF != "" {
		n, err := ragx.BuildIndex(ctx, *ragCfg, *ingestPDF, embedder)
		if err != nil {
			log.Fatal().Err(err).Str("pdf", *ingestPDF).Msg("index build failed")
		}
		fmt.Printf("indexed %d chunks from %s\n", n, *ingestPDF)
		return
	}

	retriever, err := ragx.OpenRetriever(*ragCfg, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open knowledge index")
	}

	patientCfg := configx.MustNew[patientx.Config]("PATIENT")
	directory := patientx.NewDirectory(*patientCfg)

	tavilyCfg := configx.MustNew[tavilyx.Config]("TAVILY")
	searchClient := tavilyx.MustNew(*tavilyCfg)

	registry, err := responders.NewRegistry(ctx, *llmCfg, responders.Deps{
		Directory: directory,
		Retriever: retriever,
		Search:    searchClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build responder registry")
	}

	store, err := newSessionStore(ctx, appCfg.SessionStore)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session store")
	}

	turnRouter, err := routerx.New(store, registry, routerx.Config{
		TurnTimeout: appCfg.TurnTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	runSessionLoop(ctx, turnRouter)
}

func newSessionStore(ctx context.Context, kind string) (statex.Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "memory":
		return statex.NewInMemoryStore(), nil
	case "postgres":
		pgCfg := configx.MustNew[statex.PostgresConfig]("POSTGRES")
		store, err := statex.NewPostgresStore(*pgCfg)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store kind: %s", kind)
	}
}

// runSessionLoop is the conversational surface: one session per process,
// turn-based text in and out, history owned by the session store.
func runSessionLoop(ctx context.Context, turnRouter *routerx.Router) {
	sessionID := uuid.NewString()
	log.Info().Str("session_id", sessionID).Msg("session started")

	fmt.Println(greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		reply, err := turnRouter.HandleTurn(ctx, sessionID, text)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Println("Something went wrong on our side. Please try again.")
			continue
		}
		fmt.Println(reply)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("input scanner failed")
	}
	log.Info().Str("session_id", sessionID).Msg("session ended")
}
