package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-agent-server/internal/auth"
	"github.com/carson-networks/finance-agent-server/internal/conversation"
	"github.com/carson-networks/finance-agent-server/internal/extract"
	"github.com/carson-networks/finance-agent-server/internal/handlers/v1/agent"
	"github.com/carson-networks/finance-agent-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-agent-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-agent-server/internal/intent"
	"github.com/carson-networks/finance-agent-server/internal/logging"
	"github.com/carson-networks/finance-agent-server/internal/service"
)

type Rest struct {
	Logger     *logrus.Logger
	Port       string
	Service    *service.Service
	Auth       *auth.Client
	Classifier *intent.Classifier
	Extractor  *extract.Adapter
	Proposals  *conversation.Store
}

// apiError is the error body shape for every failed request: a machine
// "error" field and a human-readable "message".
type apiError struct {
	status  int
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (e *apiError) GetStatus() int {
	return e.status
}

func (e *apiError) Error() string {
	return e.Message
}

func newAPIError(status int, msg string, _ ...error) huma.StatusError {
	return &apiError{
		status:  status,
		Code:    http.StatusText(status),
		Message: msg,
	}
}

func (r *Rest) Serve() {
	huma.NewError = newAPIError

	mux := http.NewServeMux()
	humaAPI := humago.New(mux, huma.DefaultConfig("finance-agent-server", "1.0.0"))

	agent.NewDetectIntentHandler(r.Classifier).Register(humaAPI)
	agent.NewAddTransactionHandler(r.Auth, r.Service.Ingest, r.Proposals).Register(humaAPI)
	agent.NewConfirmTransactionHandler(r.Auth, r.Service.Ingest, r.Proposals).Register(humaAPI)
	agent.NewConfirmBulkUploadHandler(r.Auth, r.Service.Ingest, r.Proposals).Register(humaAPI)
	agent.NewCancelProposalHandler(r.Auth, r.Proposals).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Auth, r.Service.Transaction).Register(humaAPI)
	transaction.NewFiltersHandler(r.Auth, r.Service.Transaction).Register(humaAPI)

	// Multipart and health endpoints stay plain handlers.
	bulkUploadHandler := agent.NewBulkUploadHandler(r.Auth, r.Extractor, r.Proposals)
	mux.HandleFunc("/v1/agent/bulk-upload", logging.LoggingWrapper("BulkUpload", r.Logger, bulkUploadHandler.Handler))

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           logging.Middleware(r.Logger, mux),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
