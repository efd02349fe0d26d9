//go:build wireinject
// +build wireinject

package app

import (
	"kjob/internal/adapters/container_orchestrator"
	"kjob/internal/adapters/filesystem"
	"kjob/internal/adapters/logging"
	"kjob/internal/core"
	"kjob/internal/core/handler"
	"kjob/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	logging.ProvideLogger,
)

// ClusterSet provides the adapters that talk to the Kubernetes API
var ClusterSet = wire.NewSet(
	container_orchestrator.ProvideKubernetes,
	wire.Bind(new(ports.JobRunner), new(*container_orchestrator.Kubernetes)),
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvideFileSystemJobTemplateRepository,
	wire.Bind(new(core.JobTemplateRepository), new(*core.FileSystemJobTemplateRepository)),
	core.ProvideTemplateDiffer,
	core.ProvideComplianceChecker,
	core.ProvideCustomizationEngine,
	core.ProvideDefaultsResolver,
	core.ProvideManifestBuilder,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectConfigRepo() (core.ConfigRepository, error) {
	wire.Build(
		filesystem.ProvideOsFileSystem,
		wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
		core.ProvideFileSystemConfigRepository,
		wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	)
	return &core.FileSystemConfigRepository{}, nil
}

func InjectInitializeCommandHandler() (handler.InitializeCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideInitializeCommandHandler,
	)
	return handler.InitializeCommandHandler{}, nil
}

func InjectCheckCommandHandler() (handler.CheckCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideCheckCommandHandler,
	)
	return handler.CheckCommandHandler{}, nil
}

func InjectRenderCommandHandler() (handler.RenderCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideRenderCommandHandler,
	)
	return handler.RenderCommandHandler{}, nil
}

func InjectRunCommandHandler() (handler.RunCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		ClusterSet,
		handler.ProvideRunCommandHandler,
	)
	return handler.RunCommandHandler{}, nil
}
