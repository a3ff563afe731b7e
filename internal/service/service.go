package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-agent-server/internal/operator"
	"github.com/carson-networks/finance-agent-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Ingest      *IngestService
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, delegator *operator.OperatorDelegator, logger *logrus.Logger) *Service {
	return &Service{
		Ingest:      NewIngestService(store, delegator, logger),
		Transaction: NewTransactionService(store),
	}
}
