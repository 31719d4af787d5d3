// Package docs provides generated OpenAPI documentation.
//
// lpnmatch API
//
//	@title			lpnmatch API
//	@version		1.0
//	@description	Matches receiving-report PACKAGEIDs against LPNs printed in receipt PDFs.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/lpnmatch
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/lpnmatch/serve.go -o ./swagger --parseDependency --parseInternal --outputTypes go,json
