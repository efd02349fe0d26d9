package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"kjob/internal/core"
	"kjob/internal/core/domain"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type RenderCommandHandler struct {
	resolver jobResolver
}

func ProvideRenderCommandHandler(
	builder *core.ManifestBuilder,
	templateRepository core.JobTemplateRepository,
	engine *core.CustomizationEngine,
) RenderCommandHandler {
	return RenderCommandHandler{
		resolver: jobResolver{
			builder:            builder,
			templateRepository: templateRepository,
			engine:             engine,
		},
	}
}

// Handle writes the resolved manifest to w in the requested format.
func (h *RenderCommandHandler) Handle(opts JobOptions, format string, w io.Writer) error {
	manifest, err := h.resolver.resolve(opts)
	if err != nil {
		return err
	}
	out, err := encodeManifest(manifest, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func encodeManifest(manifest domain.Document, format string) ([]byte, error) {
	switch format {
	case "", FormatYAML:
		return domain.EncodeYAML(manifest)
	case FormatJSON:
		compact, err := manifest.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var indented bytes.Buffer
		if err := json.Indent(&indented, compact, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to format manifest: %w", err)
		}
		indented.WriteByte('\n')
		return indented.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s', must be %s or %s", format, FormatYAML, FormatJSON)
	}
}
