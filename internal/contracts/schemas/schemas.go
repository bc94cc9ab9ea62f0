package schemas

import "embed"

// FS contiene los JSON Schema de los payloads de entrada, uno por request y versión:
// requests/<nombre>/v<N>.json
//
//go:embed requests
var FS embed.FS
