package main

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-agent-server/api"
	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/config"
	"github.com/carson-networks/finance-agent-server/internal/conversation"
	"github.com/carson-networks/finance-agent-server/internal/extract"
	"github.com/carson-networks/finance-agent-server/internal/gemini"
	"github.com/carson-networks/finance-agent-server/internal/intent"
	"github.com/carson-networks/finance-agent-server/internal/logging"
	"github.com/carson-networks/finance-agent-server/internal/operator"
	"github.com/carson-networks/finance-agent-server/internal/service"
	"github.com/carson-networks/finance-agent-server/internal/storage"
)

const numOperatorWorkers = 4

func main() {
	logger := logging.SetupLogging()
	logrus.Info("finance-agent-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	geminiClient, err := gemini.NewClient(context.Background(), envConfig.GeminiAPIKey, envConfig.GeminiModel)
	if err != nil {
		logrus.WithError(err).Fatal("gemini.NewClient")
		return
	}
	defer geminiClient.Close()

	authClient := auth.NewClient(envConfig.AuthURL, envConfig.AuthAnonKey, logger)
	classifier := intent.NewClassifier(geminiClient, logger)
	docParser := extract.NewDocParserClient(envConfig.DocParserURL, envConfig.DocParserAPIKey)
	extractor := extract.NewAdapter(docParser, geminiClient, logger)
	proposals := conversation.NewStore()

	delegator := operator.NewOperatorDelegator(dbStorage, numOperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator, logger)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:     logger,
			Port:       envConfig.Port,
			Service:    svc,
			Auth:       authClient,
			Classifier: classifier,
			Extractor:  extractor,
			Proposals:  proposals,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
