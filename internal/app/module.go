package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/grupomv/mapaventas/internal/app/api/server"
	"github.com/grupomv/mapaventas/internal/app/service/inventory"
	"github.com/grupomv/mapaventas/internal/app/service/snapshot"
	"github.com/grupomv/mapaventas/internal/platform/db"
	"github.com/grupomv/mapaventas/pkg/config"
	"github.com/grupomv/mapaventas/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	inventory.Module,
	snapshot.Module,
)
