package docs

import "embed"

// FS contains long-form Markdown guides bundled with the agentsync binary.
//
//go:embed guide
var FS embed.FS
