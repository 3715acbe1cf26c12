package handler

import (
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/migration"
	"github.com/joana-nicolaasponder/backlog-explorer-sub001/internal/provider"

	"go.uber.org/zap"
)

// Shared collaborators, wired once at startup from main.
var (
	migrator *migration.Service
	search   provider.Client
	legacy   provider.Client
	log      *zap.Logger
)

// Setup wires the migration service, the provider search clients and the
// logger into the handler package.
func Setup(m *migration.Service, current, legacyClient provider.Client, l *zap.Logger) {
	migrator = m
	search = current
	legacy = legacyClient
	log = l
}
