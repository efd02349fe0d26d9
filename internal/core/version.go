package core

// Version is set at build time with -ldflags "-X kjob/internal/core.Version=...".
var Version = "dev"
