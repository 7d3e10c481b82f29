// Package swagger embeds the OpenAPI document served at /swagger/doc.json.
package swagger

import _ "embed"

//go:embed users.swagger.json
var Doc []byte
