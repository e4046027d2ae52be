// Package schemas embeds the JSON Schema files and registers them with the
// config package on import. CLI entry points should import this package with
// a blank identifier: import _ "github.com/kjourdan1/egressctl/schemas"
package schemas

import (
	"embed"

	"github.com/kjourdan1/egressctl/internal/config"
)

//go:embed egressctl-v1.schema.json
var fs embed.FS

func init() {
	data, err := fs.ReadFile("egressctl-v1.schema.json")
	if err != nil {
		panic("schemas: failed to read embedded egressctl-v1.schema.json: " + err.Error())
	}
	config.SetSchema(data)
}
